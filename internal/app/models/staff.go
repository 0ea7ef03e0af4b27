package models

// Staff defines the staff model based on the 'staff' table. Lecturers,
// heads of department and administrative officers are all staff; what they
// may do is decided by the role on the linked user account.
type Staff struct {
	ID           int64  `json:"id" db:"id" example:"1"`                      // Unique identifier for the staff record
	UserID       int64  `json:"userId" db:"user_id" example:"5"`             // ID of the associated user account
	StaffID      string `json:"staffId" db:"staff_id" example:"STAFF/2025/0007"` // Auto-generated staff identifier
	DepartmentID int64  `json:"departmentId" db:"department_id" example:"2"` // Department the staff belongs to
	Designation  string `json:"designation" db:"designation" example:"Lecturer I"` // Academic or administrative designation

	// Relations (populated when needed)
	User       *User       `json:"user,omitempty"`       // Associated user information
	Department *Department `json:"department,omitempty"` // Associated department
}
