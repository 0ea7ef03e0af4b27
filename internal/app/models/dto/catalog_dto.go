package dto

// CreateFacultyRequest creates a faculty
type CreateFacultyRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// CreateDepartmentRequest creates a department within a faculty
type CreateDepartmentRequest struct {
	FacultyID int64  `json:"facultyId" binding:"required,min=1"`
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
}

// CreateCourseRequest creates a course
type CreateCourseRequest struct {
	DepartmentID    int64   `json:"departmentId" binding:"required,min=1"`
	Code            string  `json:"code" binding:"required"`
	Title           string  `json:"title" binding:"required"`
	Description     *string `json:"description"`
	CreditUnits     int     `json:"creditUnits" binding:"required,min=1,max=12"`
	Level           int     `json:"level" binding:"required,min=100"`
	SemesterOffered string  `json:"semesterOffered" binding:"required,oneof=first second both"`
	IsElective      bool    `json:"isElective"`
}

// UpdateCourseRequest updates a course's mutable fields
type UpdateCourseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	CreditUnits int     `json:"creditUnits" binding:"required,min=1,max=12"`
	IsElective  bool    `json:"isElective"`
}

// CreateAllocationRequest assigns a lecturer to a course-term
type CreateAllocationRequest struct {
	CourseID   int64 `json:"courseId" binding:"required,min=1"`
	LecturerID int64 `json:"lecturerId" binding:"required,min=1"`
	SessionID  int64 `json:"sessionId" binding:"required,min=1"`
	SemesterID int64 `json:"semesterId" binding:"required,min=1"`
}
