package dto

import "time"

// CreateSessionRequest creates an academic session
type CreateSessionRequest struct {
	Name      string    `json:"name" binding:"required"` // e.g. "2024/2025"
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// CreateSemesterRequest creates a semester within a session
type CreateSemesterRequest struct {
	SessionID         int64      `json:"sessionId" binding:"required,min=1"`
	Name              string     `json:"name" binding:"required,oneof=first second"`
	StartDate         time.Time  `json:"startDate" binding:"required"`
	EndDate           time.Time  `json:"endDate" binding:"required"`
	RegistrationStart *time.Time `json:"registrationStart"`
	RegistrationEnd   *time.Time `json:"registrationEnd"`
}

// ActiveTermResponse reports the currently active session and semester
type ActiveTermResponse struct {
	SessionID    int64  `json:"sessionId"`
	SessionName  string `json:"sessionName"`
	SemesterID   int64  `json:"semesterId"`
	SemesterName string `json:"semesterName"`
}
