package models

// Department represents a department in a faculty
type Department struct {
	ID        int64    `json:"id" db:"id"`
	FacultyID int64    `json:"facultyId" db:"faculty_id"`
	Name      string   `json:"name" db:"name"`
	Code      string   `json:"code" db:"code"` // e.g. CSC, used in matric numbers
	Faculty   *Faculty `json:"faculty,omitempty"`
}
