package models

import "time"

// Semester represents one semester of a session. A session has at most one
// first and one second semester; activating a semester deactivates its
// siblings within the same session.
type Semester struct {
	ID                int64        `json:"id" db:"id"`
	SessionID         int64        `json:"sessionId" db:"session_id"`
	Name              SemesterName `json:"name" db:"name"`
	StartDate         time.Time    `json:"startDate" db:"start_date"`
	EndDate           time.Time    `json:"endDate" db:"end_date"`
	IsActive          bool         `json:"isActive" db:"is_active"`
	RegistrationStart *time.Time   `json:"registrationStart,omitempty" db:"registration_start"` // Nullable
	RegistrationEnd   *time.Time   `json:"registrationEnd,omitempty" db:"registration_end"`     // Nullable
	CreatedAt         time.Time    `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Session *Session `json:"session,omitempty"`
}
