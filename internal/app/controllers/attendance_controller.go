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

// AttendanceController handles class attendance sessions and marks
type AttendanceController struct {
	attendanceService *services.AttendanceService
	staffService      *services.StaffService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService, staffService *services.StaffService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		staffService:      staffService,
	}
}

func (c *AttendanceController) currentStaff(ctx *gin.Context) (*models.Staff, bool) {
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

// OpenSession opens an attendance session for one held class
// @Summary Open an attendance session
// @Description Opens an attendance session for one held class of an allocated course. Only the lecturer of record may open a session, and at most one session exists per allocation and date.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAttendanceSessionRequest true "Session details"
// @Success 201 {object} dto.APIResponse{data=models.AttendanceSession} "Session opened"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Not the lecturer allocated to this course-term"
// @Failure 404 {object} dto.ErrorResponse "Allocation not found"
// @Failure 409 {object} dto.ErrorResponse "Session already opened for this class date"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [post]
func (c *AttendanceController) OpenSession(ctx *gin.Context) {
	staff, ok := c.currentStaff(ctx)
	if !ok {
		return
	}

	var req dto.CreateAttendanceSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.attendanceService.OpenSession(ctx.Request.Context(), staff.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      session,
		Timestamp: time.Now(),
	})
}

// MarkAttendance records or corrects student marks for a session
// @Summary Mark attendance
// @Description Records present/absent/late marks for students in a session. Only the lecturer of record may mark, and only students with an approved registration for the course-term. Re-marking a student replaces the previous mark.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance session ID" Format(int64) minimum(1)
// @Param request body dto.MarkAttendanceRequest true "Student marks"
// @Success 200 {object} dto.APIResponse{data=[]models.AttendanceRecord} "Marks recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Not the lecturer allocated to this course-term"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 422 {object} dto.ErrorResponse "Student has no approved registration for this course-term"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id}/records [post]
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	staff, ok := c.currentStaff(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	records, err := c.attendanceService.Mark(ctx.Request.Context(), staff.ID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      records,
		Timestamp: time.Now(),
	})
}

// GetSession retrieves a session with its marks and stats
// @Summary Get attendance session details
// @Description Retrieves an attendance session with its student marks and aggregate attendance stats
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance session ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceSessionDetail} "Session retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [get]
func (c *AttendanceController) GetSession(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.attendanceService.SessionDetail(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      detail,
		Timestamp: time.Now(),
	})
}

// ListSessions lists the attendance sessions of an allocation
// @Summary List attendance sessions
// @Description Lists the attendance sessions of a course allocation, most recent class first
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allocation ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.AttendanceSession} "Sessions retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid allocation ID"
// @Failure 404 {object} dto.ErrorResponse "Allocation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allocations/{id}/attendance [get]
func (c *AttendanceController) ListSessions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	sessions, err := c.attendanceService.ListSessions(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sessions,
		Timestamp: time.Now(),
	})
}
