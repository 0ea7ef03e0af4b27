package models

import (
	"time"

	"github.com/eokonkwo/campuscore/internal/pkg/grading"
)

// AttendanceStatus is how a student was marked for one held class
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// AttendanceSession is one held class of an allocated course. At most one
// session exists per (allocation, date); the lecturer of record opens it
// and marks the students afterwards.
type AttendanceSession struct {
	ID           int64     `json:"id" db:"id"`
	AllocationID int64     `json:"allocationId" db:"allocation_id"`
	Date         time.Time `json:"date" db:"date"`
	TopicCovered string    `json:"topicCovered" db:"topic_covered"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Allocation *CourseAllocation   `json:"allocation,omitempty"`
	Records    []*AttendanceRecord `json:"records,omitempty"`
}

// AttendanceRecord marks one student in one class session. Unique per
// (session, student); re-marking a student updates the existing record.
type AttendanceRecord struct {
	ID           int64            `json:"id" db:"id"`
	AttendanceID int64            `json:"attendanceId" db:"attendance_id"`
	StudentID    int64            `json:"studentId" db:"student_id"`
	Status       AttendanceStatus `json:"status" db:"status"`
	MarkedAt     time.Time        `json:"markedAt" db:"marked_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
}

// AttendanceStats aggregates the marks of one class session
type AttendanceStats struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	Percentage float64 `json:"percentage"`
}

// NewAttendanceStats derives the attendance rate from the raw counts. An
// unmarked session has a rate of 0, not a division by zero.
func NewAttendanceStats(present, absent, late int) AttendanceStats {
	stats := AttendanceStats{
		Total:   present + absent + late,
		Present: present,
		Absent:  absent,
		Late:    late,
	}
	if stats.Total > 0 {
		stats.Percentage = grading.Round2(float64(present) / float64(stats.Total) * 100)
	}
	return stats
}
