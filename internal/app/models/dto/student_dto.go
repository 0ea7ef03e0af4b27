package dto

// CreateStudentRequest admits a new student. The matric number and the
// initial password are generated server side; the password is emailed to
// the student.
type CreateStudentRequest struct {
	Email              string `json:"email" binding:"required,email"`
	FirstName          string `json:"firstName" binding:"required"`
	LastName           string `json:"lastName" binding:"required"`
	DepartmentID       int64  `json:"departmentId" binding:"required,min=1"`
	AdmissionSessionID int64  `json:"admissionSessionId" binding:"required,min=1"`
	CurrentLevel       int    `json:"currentLevel" binding:"required,oneof=100 200 300 400 500 600"`
}

// UpdateStudentLevelRequest moves a student to a new level
type UpdateStudentLevelRequest struct {
	Level int `json:"level" binding:"required,oneof=100 200 300 400 500 600"`
}

// UpdateStudentStatusRequest enables or disables a student's account.
// Disabled accounts cannot log in; the academic record stays intact.
type UpdateStudentStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// CreateStaffRequest creates a staff member. The staff ID and initial
// password are generated server side.
type CreateStaffRequest struct {
	Email        string `json:"email" binding:"required,email"`
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	DepartmentID int64  `json:"departmentId" binding:"required,min=1"`
	Designation  string `json:"designation" binding:"required"`
	IsAdmin      bool   `json:"isAdmin"`
}
