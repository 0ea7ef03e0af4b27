package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/app/services"
	"github.com/eokonkwo/campuscore/internal/middleware"
)

// TranscriptController exposes GPA, CGPA and transcript reads over a
// student's verified results
type TranscriptController struct {
	transcriptService *services.TranscriptService
	studentService    *services.StudentService
}

// NewTranscriptController creates a new TranscriptController
func NewTranscriptController(transcriptService *services.TranscriptService, studentService *services.StudentService) *TranscriptController {
	return &TranscriptController{
		transcriptService: transcriptService,
		studentService:    studentService,
	}
}

// authorizeStudentAccess allows staff and admins through unconditionally
// and students only for their own record. On failure it writes the error
// response and returns false.
func (c *TranscriptController) authorizeStudentAccess(ctx *gin.Context, studentID int64) bool {
	role, _ := middleware.CurrentRole(ctx)
	if role != string(models.RoleStudent) {
		return true
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return false
	}

	student, err := c.studentService.GetStudentByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return false
	}

	if student.ID != studentID {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("Students can only view their own academic records")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return false
	}

	return true
}

// GetGPA computes a student's GPA for one term
// @Summary Get term GPA
// @Description Computes the credit-weighted GPA over the student's verified results in one session and semester
// @Tags transcripts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param sessionId query int true "Session ID"
// @Param semesterId query int true "Semester ID"
// @Success 200 {object} dto.APIResponse{data=dto.GPAResponse} "GPA computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid or missing parameters"
// @Failure 403 {object} dto.ErrorResponse "Students can only view their own records"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/gpa [get]
func (c *TranscriptController) GetGPA(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !c.authorizeStudentAccess(ctx, studentID) {
		return
	}

	sessionID := queryInt64(ctx, "sessionId")
	semesterID := queryInt64(ctx, "semesterId")
	if sessionID < 1 || semesterID < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing term parameters")
		errorDetail = errorDetail.WithDetails("sessionId and semesterId query parameters are required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	gpa, err := c.transcriptService.ComputeGPA(ctx.Request.Context(), studentID, sessionID, semesterID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gpa,
		Timestamp: time.Now(),
	})
}

// GetCGPA computes a student's cumulative GPA
// @Summary Get CGPA
// @Description Computes the cumulative GPA over all of the student's verified results
// @Tags transcripts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.GPAResponse} "CGPA computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 403 {object} dto.ErrorResponse "Students can only view their own records"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/cgpa [get]
func (c *TranscriptController) GetCGPA(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !c.authorizeStudentAccess(ctx, studentID) {
		return
	}

	cgpa, err := c.transcriptService.ComputeCGPA(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      cgpa,
		Timestamp: time.Now(),
	})
}

// GetTranscript builds a student's full transcript
// @Summary Get transcript
// @Description Builds the student's transcript grouped by term, with term GPA, running CGPA and degree classification
// @Tags transcripts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.TranscriptResponse} "Transcript built"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 403 {object} dto.ErrorResponse "Students can only view their own records"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/transcript [get]
func (c *TranscriptController) GetTranscript(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !c.authorizeStudentAccess(ctx, studentID) {
		return
	}

	transcript, err := c.transcriptService.Transcript(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      transcript,
		Timestamp: time.Now(),
	})
}
