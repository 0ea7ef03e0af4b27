package models

import "time"

// Session represents an academic session, e.g. "2024/2025". At most one
// session is active at a time; activating one deactivates the rest.
type Session struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" example:"2024/2025"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
