package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/app/services"
	"github.com/eokonkwo/campuscore/internal/middleware"
)

// TermController manages academic sessions and semesters
type TermController struct {
	termService *services.TermService
}

// NewTermController creates a new TermController
func NewTermController(termService *services.TermService) *TermController {
	return &TermController{
		termService: termService,
	}
}

// CreateSession creates an academic session
// @Summary Create a session
// @Description Creates an academic session, e.g. 2024/2025
// @Tags terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSessionRequest true "Session information"
// @Success 201 {object} dto.APIResponse{data=models.Session} "Session created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or end date before start date"
// @Failure 409 {object} dto.ErrorResponse "Session name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions [post]
func (c *TermController) CreateSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.termService.CreateSession(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      session,
		Timestamp: time.Now(),
	})
}

// GetSession retrieves a session by ID
// @Summary Get session details
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Session} "Session retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions/{id} [get]
func (c *TermController) GetSession(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	session, err := c.termService.GetSession(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      session,
		Timestamp: time.Now(),
	})
}

// ListSessions lists all sessions
// @Summary List sessions
// @Description Lists all academic sessions, newest first
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Session} "Sessions retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions [get]
func (c *TermController) ListSessions(ctx *gin.Context) {
	sessions, err := c.termService.ListSessions(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sessions,
		Timestamp: time.Now(),
	})
}

// ActivateSession marks a session as the active one
// @Summary Activate a session
// @Description Marks the session as active and deactivates every other session
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Session activated"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions/{id}/activate [post]
func (c *TermController) ActivateSession(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.termService.ActivateSession(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      map[string]string{"message": "Session activated"},
		Timestamp: time.Now(),
	})
}

// CreateSemester creates a semester within a session
// @Summary Create a semester
// @Description Creates a first or second semester within a session, with an optional registration window
// @Tags terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSemesterRequest true "Semester information"
// @Success 201 {object} dto.APIResponse{data=models.Semester} "Semester created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or end date before start date"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Semester already exists in this session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters [post]
func (c *TermController) CreateSemester(ctx *gin.Context) {
	var req dto.CreateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	semester, err := c.termService.CreateSemester(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      semester,
		Timestamp: time.Now(),
	})
}

// GetSemester retrieves a semester by ID
// @Summary Get semester details
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Semester ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Semester} "Semester retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid semester ID"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters/{id} [get]
func (c *TermController) GetSemester(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	semester, err := c.termService.GetSemester(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      semester,
		Timestamp: time.Now(),
	})
}

// ListSemesters lists the semesters of a session
// @Summary List semesters
// @Description Lists the semesters of one session
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Param sessionId query int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Semester} "Semesters retrieved"
// @Failure 400 {object} dto.ErrorResponse "Missing session ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters [get]
func (c *TermController) ListSemesters(ctx *gin.Context) {
	sessionID := queryInt64(ctx, "sessionId")
	if sessionID < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing session ID")
		errorDetail = errorDetail.WithDetails("sessionId query parameter is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	semesters, err := c.termService.ListSemesters(ctx.Request.Context(), sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      semesters,
		Timestamp: time.Now(),
	})
}

// ActivateSemester marks a semester as the active one
// @Summary Activate a semester
// @Description Marks the semester and its parent session as active, deactivating every other semester and session
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Semester ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Semester activated"
// @Failure 400 {object} dto.ErrorResponse "Invalid semester ID"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters/{id}/activate [post]
func (c *TermController) ActivateSemester(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.termService.ActivateSemester(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      map[string]string{"message": "Semester activated"},
		Timestamp: time.Now(),
	})
}

// GetActiveTerm reports the active session and semester
// @Summary Get active term
// @Description Reports the currently active session and semester
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ActiveTermResponse} "Active term retrieved"
// @Failure 404 {object} dto.ErrorResponse "No active term configured"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /terms/active [get]
func (c *TermController) GetActiveTerm(ctx *gin.Context) {
	term, err := c.termService.GetActiveTerm(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      term,
		Timestamp: time.Now(),
	})
}
