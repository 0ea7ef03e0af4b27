package dto

import (
	"time"

	"github.com/eokonkwo/campuscore/internal/app/models"
)

// RegisterCoursesRequest registers the current student for one or more
// courses in the given term. Registrations start out pending approval.
type RegisterCoursesRequest struct {
	CourseIDs  []int64 `json:"courseIds" binding:"required,min=1,dive,min=1"`
	SessionID  int64   `json:"sessionId" binding:"required,min=1"`
	SemesterID int64   `json:"semesterId" binding:"required,min=1"`
}

// RegistrationResponse represents one course registration
type RegistrationResponse struct {
	ID           int64     `json:"id"`
	StudentID    int64     `json:"studentId"`
	MatricNumber string    `json:"matricNumber,omitempty"`
	CourseID     int64     `json:"courseId"`
	CourseCode   string    `json:"courseCode,omitempty"`
	SessionID    int64     `json:"sessionId"`
	SemesterID   int64     `json:"semesterId"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// FromRegistration converts a models.CourseRegistration to a RegistrationResponse
func FromRegistration(r *models.CourseRegistration) RegistrationResponse {
	if r == nil {
		return RegistrationResponse{}
	}

	resp := RegistrationResponse{
		ID:           r.ID,
		StudentID:    r.StudentID,
		CourseID:     r.CourseID,
		SessionID:    r.SessionID,
		SemesterID:   r.SemesterID,
		Status:       string(r.Status),
		RegisteredAt: r.RegisteredAt,
	}

	if r.Student != nil {
		resp.MatricNumber = r.Student.MatricNumber
	}
	if r.Course != nil {
		resp.CourseCode = r.Course.Code
	}

	return resp
}

// RosterEntry is one eligible student on a course-term roster
type RosterEntry struct {
	StudentID    int64  `json:"studentId"`
	MatricNumber string `json:"matricNumber"`
	FullName     string `json:"fullName"`
}

// RosterResponse lists the students eligible for grading in a course-term
type RosterResponse struct {
	CourseID   int64         `json:"courseId"`
	SessionID  int64         `json:"sessionId"`
	SemesterID int64         `json:"semesterId"`
	Students   []RosterEntry `json:"students"`
}
