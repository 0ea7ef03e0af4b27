package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/app/repositories"
	"github.com/eokonkwo/campuscore/internal/app/services"
	"github.com/eokonkwo/campuscore/internal/middleware"
	"github.com/eokonkwo/campuscore/internal/pkg/helpers"
)

// ResultController handles score entry and the result verification lifecycle
type ResultController struct {
	resultService *services.ResultService
	staffService  *services.StaffService
}

// NewResultController creates a new ResultController
func NewResultController(resultService *services.ResultService, staffService *services.StaffService) *ResultController {
	return &ResultController{
		resultService: resultService,
		staffService:  staffService,
	}
}

// currentStaff resolves the staff record of the authenticated user. On
// failure it writes the error response and returns false.
func (c *ResultController) currentStaff(ctx *gin.Context) (*models.Staff, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	staff, err := c.staffService.GetStaffByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return staff, true
}

// UpsertScore enters or corrects a student's scores for a course-term
// @Summary Enter or correct scores
// @Description Records CA and exam scores for one student in a course-term. The grade is derived server side. Re-entering scores for the same student and course-term overwrites the draft; verified results cannot be changed.
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertScoreRequest true "Score entry"
// @Success 200 {object} dto.APIResponse{data=dto.ResultResponse} "Scores recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or score out of range"
// @Failure 403 {object} dto.ErrorResponse "Not the lecturer allocated to this course-term"
// @Failure 409 {object} dto.ErrorResponse "Result already verified"
// @Failure 422 {object} dto.ErrorResponse "Student has no approved registration for this course-term"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results/scores [post]
func (c *ResultController) UpsertScore(ctx *gin.Context) {
	staff, ok := c.currentStaff(ctx)
	if !ok {
		return
	}

	var req dto.UpsertScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.resultService.UpsertScore(ctx.Request.Context(), staff.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromResult(result),
		Timestamp: time.Now(),
	})
}

// SubmitResults moves a course-term's draft results to pending verification
// @Summary Submit results for verification
// @Description Moves every draft result the lecturer entered for the course-term to pending. Fails when scores are missing for registered students.
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitResultsRequest true "Course-term to submit"
// @Success 200 {object} dto.APIResponse{data=dto.SubmitResponse} "Results submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Not the lecturer allocated to this course-term"
// @Failure 422 {object} dto.ErrorResponse "Scores missing for registered students"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results/submit [post]
func (c *ResultController) SubmitResults(ctx *gin.Context) {
	staff, ok := c.currentStaff(ctx)
	if !ok {
		return
	}

	var req dto.SubmitResultsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	count, err := c.resultService.SubmitForVerification(ctx.Request.Context(), staff.ID, req.CourseID, req.SessionID, req.SemesterID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SubmitResponse{SubmittedCount: count},
		Timestamp: time.Now(),
	})
}

// VerifyResult verifies a pending result
// @Summary Verify a result
// @Description Marks a pending result as verified. Verified results are final and feed GPA computation.
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Result ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.ResultResponse} "Result verified"
// @Failure 400 {object} dto.ErrorResponse "Invalid result ID"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Failure 409 {object} dto.ErrorResponse "Result is not pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results/{id}/verify [post]
func (c *ResultController) VerifyResult(ctx *gin.Context) {
	staff, ok := c.currentStaff(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.resultService.VerifyResult(ctx.Request.Context(), staff.ID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromResult(result),
		Timestamp: time.Now(),
	})
}

// RejectResult rejects a pending result
// @Summary Reject a result
// @Description Rejects a pending result with a reason. The result returns to the lecturer for correction.
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Result ID" Format(int64) minimum(1)
// @Param request body dto.RejectResultRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.ResultResponse} "Result rejected"
// @Failure 400 {object} dto.ErrorResponse "Invalid result ID or missing reason"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Failure 409 {object} dto.ErrorResponse "Result is not pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results/{id}/reject [post]
func (c *ResultController) RejectResult(ctx *gin.Context) {
	staff, ok := c.currentStaff(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.resultService.RejectResult(ctx.Request.Context(), staff.ID, id, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromResult(result),
		Timestamp: time.Now(),
	})
}

// BulkVerify verifies a batch of pending results
// @Summary Verify results in bulk
// @Description Verifies the listed pending results in one batch. Results that are missing or not pending are reported as skipped without failing the batch.
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkVerifyRequest true "Result IDs to verify"
// @Success 200 {object} dto.APIResponse{data=dto.BulkVerifyResponse} "Batch processed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results/bulk-verify [post]
func (c *ResultController) BulkVerify(ctx *gin.Context) {
	staff, ok := c.currentStaff(ctx)
	if !ok {
		return
	}

	var req dto.BulkVerifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	summary, err := c.resultService.BulkVerify(ctx.Request.Context(), staff.ID, req.ResultIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      summary,
		Timestamp: time.Now(),
	})
}

// GetResult retrieves one result
// @Summary Get result details
// @Description Retrieves one result record by ID
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Result ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.ResultResponse} "Result retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid result ID"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results/{id} [get]
func (c *ResultController) GetResult(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.resultService.GetResult(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromResult(result),
		Timestamp: time.Now(),
	})
}

// ListResults lists results with filters and pagination
// @Summary List results
// @Description Lists results filtered by student, course, term, submitter or status, newest first
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student ID"
// @Param courseId query int false "Filter by course ID"
// @Param sessionId query int false "Filter by session ID"
// @Param semesterId query int false "Filter by semester ID"
// @Param submittedBy query int false "Filter by submitting lecturer's staff ID"
// @Param status query string false "Filter by status" Enums(draft, pending, verified, rejected)
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.ResultListResponse} "Results retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	filter := repositories.ResultFilter{
		StudentID:   queryInt64(ctx, "studentId"),
		CourseID:    queryInt64(ctx, "courseId"),
		SessionID:   queryInt64(ctx, "sessionId"),
		SemesterID:  queryInt64(ctx, "semesterId"),
		SubmittedBy: queryInt64(ctx, "submittedBy"),
		Status:      models.ResultStatus(ctx.Query("status")),
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	results, total, err := c.resultService.ListResults(ctx.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.ResultResponse, 0, len(results))
	for _, r := range results {
		items = append(items, dto.FromResult(r))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ResultListResponse{
			Results:    items,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}
