package models

// Course represents a course offered by a department.
type Course struct {
	ID              int64           `json:"id" db:"id"`
	DepartmentID    int64           `json:"departmentId" db:"department_id"`
	Code            string          `json:"code" db:"code"` // e.g. CSC 101
	Title           string          `json:"title" db:"title"`
	Description     *string         `json:"description,omitempty" db:"description"` // Nullable
	CreditUnits     int             `json:"creditUnits" db:"credit_units"`          // GPA weight, always >= 1
	Level           int             `json:"level" db:"level"`                       // 100, 200, ...
	SemesterOffered SemesterOffered `json:"semesterOffered" db:"semester_offered"`
	IsElective      bool            `json:"isElective" db:"is_elective"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
