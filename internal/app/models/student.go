package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID                 int64  `json:"id" db:"id" example:"1"`                                     // Unique identifier for the student record
	UserID             int64  `json:"userId" db:"user_id" example:"5"`                            // ID of the associated user account
	MatricNumber       string `json:"matricNumber" db:"matric_number" example:"COE/2024/CSC/0042"` // Auto-generated matriculation number
	DepartmentID       int64  `json:"departmentId" db:"department_id" example:"2"`                // Department the student belongs to
	AdmissionSessionID int64  `json:"admissionSessionId" db:"admission_session_id" example:"1"`   // Session the student was admitted in
	CurrentLevel       int    `json:"currentLevel" db:"current_level" example:"200"`              // Current level (100, 200, ...)

	// Relations (populated when needed)
	User             *User       `json:"user,omitempty"`             // Associated user information
	Department       *Department `json:"department,omitempty"`       // Associated department
	AdmissionSession *Session    `json:"admissionSession,omitempty"` // Session of admission
}
