package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/app/services"
	"github.com/eokonkwo/campuscore/internal/middleware"
	"github.com/eokonkwo/campuscore/internal/pkg/helpers"
)

// RegistrationController handles course registration and the approval queue
type RegistrationController struct {
	registrationService *services.RegistrationService
	studentService      *services.StudentService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService *services.RegistrationService, studentService *services.StudentService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
		studentService:      studentService,
	}
}

// currentStudent resolves the student record of the authenticated user. On
// failure it writes the error response and returns false.
func (c *RegistrationController) currentStudent(ctx *gin.Context) (*models.Student, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	student, err := c.studentService.GetStudentByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return student, true
}

// RegisterCourses registers the current student for courses in a term
// @Summary Register for courses
// @Description Registers the current student for the listed courses in the given term. Registrations start out pending approval and only count toward grading once approved. Fails outside the semester's registration window.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterCoursesRequest true "Courses and term"
// @Success 201 {object} dto.APIResponse{data=[]dto.RegistrationResponse} "Courses registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or course not offered this semester"
// @Failure 409 {object} dto.ErrorResponse "Already registered for a listed course"
// @Failure 422 {object} dto.ErrorResponse "Registration window is closed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations [post]
func (c *RegistrationController) RegisterCourses(ctx *gin.Context) {
	student, ok := c.currentStudent(ctx)
	if !ok {
		return
	}

	var req dto.RegisterCoursesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	registrations, err := c.registrationService.RegisterCourses(ctx.Request.Context(), student.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.RegistrationResponse, 0, len(registrations))
	for _, r := range registrations {
		items = append(items, dto.FromRegistration(r))
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// ListMyRegistrations lists the current student's registrations
// @Summary List own registrations
// @Description Lists the current student's course registrations, optionally narrowed to one term
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param sessionId query int false "Filter by session ID"
// @Param semesterId query int false "Filter by semester ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.RegistrationResponse} "Registrations retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/mine [get]
func (c *RegistrationController) ListMyRegistrations(ctx *gin.Context) {
	student, ok := c.currentStudent(ctx)
	if !ok {
		return
	}

	registrations, err := c.registrationService.ListStudentRegistrations(
		ctx.Request.Context(), student.ID, queryInt64(ctx, "sessionId"), queryInt64(ctx, "semesterId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.RegistrationResponse, 0, len(registrations))
	for _, r := range registrations {
		items = append(items, dto.FromRegistration(r))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// ApproveRegistration approves a pending registration
// @Summary Approve a registration
// @Description Approves a pending course registration, making the student eligible for grading in that course-term
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Registration approved"
// @Failure 400 {object} dto.ErrorResponse "Invalid registration ID"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Failure 409 {object} dto.ErrorResponse "Registration already decided"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/{id}/approve [post]
func (c *RegistrationController) ApproveRegistration(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.registrationService.ApproveRegistration(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      map[string]string{"message": "Registration approved"},
		Timestamp: time.Now(),
	})
}

// RejectRegistration rejects a pending registration
// @Summary Reject a registration
// @Description Rejects a pending course registration
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Registration rejected"
// @Failure 400 {object} dto.ErrorResponse "Invalid registration ID"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Failure 409 {object} dto.ErrorResponse "Registration already decided"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/{id}/reject [post]
func (c *RegistrationController) RejectRegistration(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.registrationService.RejectRegistration(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      map[string]string{"message": "Registration rejected"},
		Timestamp: time.Now(),
	})
}

// ListPendingRegistrations lists registrations awaiting approval
// @Summary List pending registrations
// @Description Lists course registrations awaiting approval, oldest first, optionally narrowed to one term
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param sessionId query int false "Filter by session ID"
// @Param semesterId query int false "Filter by semester ID"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Pending registrations retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/pending [get]
func (c *RegistrationController) ListPendingRegistrations(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	registrations, total, err := c.registrationService.ListPendingRegistrations(
		ctx.Request.Context(), queryInt64(ctx, "sessionId"), queryInt64(ctx, "semesterId"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.RegistrationResponse, 0, len(registrations))
	for _, r := range registrations {
		items = append(items, dto.FromRegistration(r))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      items,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// GetRoster lists the students eligible for grading in a course-term
// @Summary Get course roster
// @Description Lists the students with approved registrations for a course-term, the set a lecturer enters scores against
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param sessionId query int true "Session ID"
// @Param semesterId query int true "Semester ID"
// @Success 200 {object} dto.APIResponse{data=dto.RosterResponse} "Roster retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid or missing parameters"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/roster [get]
func (c *RegistrationController) GetRoster(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
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

	roster, err := c.registrationService.GetRoster(ctx.Request.Context(), courseID, sessionID, semesterID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      roster,
		Timestamp: time.Now(),
	})
}
