package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
)

// errorMapping binds a sentinel error to its HTTP status and error code
type errorMapping struct {
	sentinel error
	status   int
	code     dto.ErrorCode
}

// apiErrorMappings is consulted in order; the first errors.Is match wins.
var apiErrorMappings = []errorMapping{
	// Authentication
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeForbidden},

	// Authorization
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
	{apperrors.ErrNotLecturerOfRecord, http.StatusForbidden, dto.ErrorCodeForbidden},

	// Result lifecycle
	{apperrors.ErrResultVerified, http.StatusConflict, dto.ErrorCodeResultImmutable},
	{apperrors.ErrResultNotPending, http.StatusConflict, dto.ErrorCodeResultNotPending},
	{apperrors.ErrIncompleteSubmission, http.StatusUnprocessableEntity, dto.ErrorCodeIncompleteSubmission},
	{apperrors.ErrStudentNotRegistered, http.StatusUnprocessableEntity, dto.ErrorCodeNotRegistered},
	{apperrors.ErrScoreOutOfRange, http.StatusBadRequest, dto.ErrorCodeScoreOutOfRange},

	// Registration
	{apperrors.ErrAlreadyRegistered, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrRegistrationClosed, http.StatusUnprocessableEntity, dto.ErrorCodeValidationFailed},
	{apperrors.ErrRegistrationDecided, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},

	// Uniqueness conflicts
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrMatricNumberExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrCourseCodeExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrAllocationExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrAttendanceExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrSessionNameExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrSemesterExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},

	// Not found
	{apperrors.ErrResultNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrRegistrationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrStaffNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrDepartmentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrFacultyNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrAllocationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrMaterialNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrAttendanceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrSessionNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrSemesterNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrNoActiveTerm, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},

	// Validation
	{apperrors.ErrInvalidTermDates, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
}

// HandleAPIError maps service errors onto HTTP responses. Sentinel errors
// carry the status and code; a wrapping apperrors.CustomError contributes
// the message and field details.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range apiErrorMappings {
		if errors.Is(err, m.sentinel) {
			detail := dto.NewErrorDetail(m.code, m.sentinel.Error())

			var custom *apperrors.CustomError
			if errors.As(err, &custom) {
				if custom.Message != "" {
					detail.Message = custom.Message
				}
				if custom.Details != nil {
					detail = detail.WithDetails(custom.Details)
				}
			}

			c.JSON(m.status, dto.NewErrorResponse(detail))
			return
		}
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
		WithSeverity(dto.ErrorSeverityCritical)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
}
