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

// CourseController handles the course catalog and lecturer allocations
type CourseController struct {
	courseService *services.CourseService
	staffService  *services.StaffService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, staffService *services.StaffService) *CourseController {
	return &CourseController{
		courseService: courseService,
		staffService:  staffService,
	}
}

// CreateCourse creates a course
// @Summary Create a course
// @Description Creates a course in a department's catalog
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// GetCourse retrieves a course by ID
// @Summary Get course details
// @Description Retrieves one course by ID
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// ListCourses lists courses with filters
// @Summary List courses
// @Description Lists courses filtered by department, level and offered semester, ordered by course code
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param departmentId query int false "Filter by department ID"
// @Param level query int false "Filter by level"
// @Param semester query string false "Filter by offered semester" Enums(first, second)
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(
		ctx.Request.Context(),
		queryInt64(ctx, "departmentId"),
		queryInt(ctx, "level"),
		models.SemesterName(ctx.Query("semester")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// UpdateCourse updates a course's mutable fields
// @Summary Update a course
// @Description Updates a course's title, description, credit units and elective flag. The code, level and offered semester are fixed after creation.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.UpdateCourseRequest true "Updated course information"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Description Deletes a course that has no results or registrations
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Course deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID or course has records"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}

// AllocateCourse assigns a lecturer to a course-term
// @Summary Allocate a course
// @Description Assigns a lecturer to a course for one session and semester. Only the allocated lecturer may enter scores for that course-term.
// @Tags allocations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAllocationRequest true "Allocation information"
// @Success 201 {object} dto.APIResponse{data=models.CourseAllocation} "Course allocated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or semester not in session"
// @Failure 404 {object} dto.ErrorResponse "Course, lecturer or semester not found"
// @Failure 409 {object} dto.ErrorResponse "Allocation already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allocations [post]
func (c *CourseController) AllocateCourse(ctx *gin.Context) {
	var req dto.CreateAllocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	allocation, err := c.courseService.AllocateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      allocation,
		Timestamp: time.Now(),
	})
}

// ListMyCourses lists the current lecturer's allocated courses
// @Summary List own allocations
// @Description Lists the courses allocated to the current lecturer, optionally narrowed to one term
// @Tags allocations
// @Produce json
// @Security BearerAuth
// @Param sessionId query int false "Filter by session ID"
// @Param semesterId query int false "Filter by semester ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseAllocation} "Allocations retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allocations/mine [get]
func (c *CourseController) ListMyCourses(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	staff, err := c.staffService.GetStaffByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	allocations, err := c.courseService.ListLecturerCourses(
		ctx.Request.Context(), staff.ID, queryInt64(ctx, "sessionId"), queryInt64(ctx, "semesterId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      allocations,
		Timestamp: time.Now(),
	})
}

// RemoveAllocation removes a course allocation
// @Summary Remove an allocation
// @Description Removes a lecturer's allocation to a course-term
// @Tags allocations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allocation ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.CourseAllocation} "Allocation removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid allocation ID"
// @Failure 404 {object} dto.ErrorResponse "Allocation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allocations/{id} [delete]
func (c *CourseController) RemoveAllocation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	allocation, err := c.courseService.RemoveAllocation(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      allocation,
		Timestamp: time.Now(),
	})
}
