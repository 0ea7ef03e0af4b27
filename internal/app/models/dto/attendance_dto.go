package dto

import "github.com/eokonkwo/campuscore/internal/app/models"

// CreateAttendanceSessionRequest opens an attendance session for one held
// class of an allocated course. Dates use YYYY-MM-DD; one session exists
// per allocation and date.
type CreateAttendanceSessionRequest struct {
	AllocationID int64  `json:"allocationId" binding:"required,min=1"`
	Date         string `json:"date" binding:"required,datetime=2006-01-02"`
	TopicCovered string `json:"topicCovered" binding:"required,max=200"`
}

// AttendanceMark is one student's mark in a marking request
type AttendanceMark struct {
	StudentID int64  `json:"studentId" binding:"required,min=1"`
	Status    string `json:"status" binding:"required,oneof=present absent late"`
}

// MarkAttendanceRequest records or corrects student marks for a session.
// Re-marking a student replaces their previous mark.
type MarkAttendanceRequest struct {
	Records []AttendanceMark `json:"records" binding:"required,min=1,dive"`
}

// AttendanceSessionDetail is a session with its marks and aggregate stats
type AttendanceSessionDetail struct {
	Session *models.AttendanceSession `json:"session"`
	Stats   models.AttendanceStats    `json:"stats"`
}
