package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/app/services"
	"github.com/eokonkwo/campuscore/internal/middleware"
)

// StaffController handles staff account management
type StaffController struct {
	staffService *services.StaffService
	logger       zerolog.Logger
}

// NewStaffController creates a new StaffController
func NewStaffController(staffService *services.StaffService, logger zerolog.Logger) *StaffController {
	return &StaffController{
		staffService: staffService,
		logger:       logger,
	}
}

// CreateStaff creates a staff member
// @Summary Create a staff member
// @Description Creates a staff account. The staff ID is generated server side and the initial password is emailed to the staff member.
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStaffRequest true "Staff information"
// @Success 201 {object} dto.APIResponse{data=models.Staff} "Staff member created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff [post]
func (c *StaffController) CreateStaff(ctx *gin.Context) {
	var req dto.CreateStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	staff, err := c.staffService.CreateStaff(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to create staff member")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("staffID", staff.ID).
		Str("staffNumber", staff.StaffID).
		Msg("Staff member created")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      staff,
		Timestamp: time.Now(),
	})
}

// GetStaff retrieves a staff member by ID
// @Summary Get staff details
// @Description Retrieves one staff record with the linked user
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Staff} "Staff member retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid staff ID"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/{id} [get]
func (c *StaffController) GetStaff(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	staff, err := c.staffService.GetStaff(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      staff,
		Timestamp: time.Now(),
	})
}

// ListStaff lists staff members of a department
// @Summary List staff by department
// @Description Lists the staff members of one department
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param departmentId query int true "Department ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Staff} "Staff members retrieved"
// @Failure 400 {object} dto.ErrorResponse "Missing department ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff [get]
func (c *StaffController) ListStaff(ctx *gin.Context) {
	departmentID := queryInt64(ctx, "departmentId")
	if departmentID < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing department ID")
		errorDetail = errorDetail.WithDetails("departmentId query parameter is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	staff, err := c.staffService.ListStaffByDepartment(ctx.Request.Context(), departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      staff,
		Timestamp: time.Now(),
	})
}
