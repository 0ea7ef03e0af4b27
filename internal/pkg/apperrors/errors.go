package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Result errors
var (
	ErrResultNotFound         = errors.New("result not found")
	ErrResultVerified         = errors.New("verified result cannot be modified")
	ErrResultNotPending       = errors.New("result is not pending verification")
	ErrIncompleteSubmission   = errors.New("results not entered for all registered students")
	ErrStudentNotRegistered   = errors.New("student has no approved registration for this course-term")
	ErrNotLecturerOfRecord    = errors.New("staff is not the lecturer allocated to this course-term")
	ErrScoreOutOfRange        = errors.New("score out of range")
)

// Registration errors
var (
	ErrRegistrationNotFound = errors.New("course registration not found")
	ErrAlreadyRegistered    = errors.New("student already registered for this course-term")
	ErrRegistrationClosed   = errors.New("registration window is closed for this semester")
	ErrRegistrationDecided  = errors.New("course registration has already been decided")
)

// Student / staff errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrStaffNotFound        = errors.New("staff not found")
	ErrMatricNumberExists   = errors.New("matriculation number already exists")
)

// Catalog errors
var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseCodeExists     = errors.New("course with this code already exists")
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrFacultyNotFound      = errors.New("faculty not found")
	ErrAllocationNotFound   = errors.New("course allocation not found")
	ErrAllocationExists     = errors.New("course already allocated for this course-term")
	ErrMaterialNotFound     = errors.New("course material not found")
)

// Attendance errors
var (
	ErrAttendanceNotFound = errors.New("attendance session not found")
	ErrAttendanceExists   = errors.New("attendance already opened for this class date")
)

// Term errors
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSemesterNotFound    = errors.New("semester not found")
	ErrSessionNameExists   = errors.New("session with this name already exists")
	ErrSemesterExists      = errors.New("semester already exists for this session")
	ErrInvalidTermDates    = errors.New("end date must be after start date")
	ErrNoActiveTerm        = errors.New("no active session/semester configured")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a field-level validation error. The offending
// field and the reason land in Details so the web layer can show them
// against the right input.
func NewValidationError(field, reason string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: field + ": " + reason,
		Details: map[string]interface{}{field: reason},
	}
}

// NewIncompleteSubmissionError creates the error returned when a lecturer
// submits a course-term for verification before entering a result for every
// approved-registration student.
func NewIncompleteSubmissionError(missingCount int) error {
	return &CustomError{
		Err:     ErrIncompleteSubmission,
		Message: "results not entered for all registered students",
		Details: map[string]interface{}{"missingCount": missingCount},
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
