package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/app/services"
	"github.com/eokonkwo/campuscore/internal/middleware"
)

// MaterialController handles course material uploads and downloads
type MaterialController struct {
	materialService *services.MaterialService
	staffService    *services.StaffService
}

// NewMaterialController creates a new MaterialController
func NewMaterialController(materialService *services.MaterialService, staffService *services.StaffService) *MaterialController {
	return &MaterialController{
		materialService: materialService,
		staffService:    staffService,
	}
}

// UploadMaterial uploads a material file for a course
// @Summary Upload course material
// @Description Uploads a file as course material. The file is stored under the course's code.
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param title formData string true "Material title"
// @Param description formData string false "Material description"
// @Param file formData file true "Material file"
// @Success 201 {object} dto.APIResponse{data=dto.MaterialResponse} "Material uploaded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or missing file"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/materials [post]
func (c *MaterialController) UploadMaterial(ctx *gin.Context) {
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

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	title := strings.TrimSpace(ctx.PostForm("title"))
	if title == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing material title")
		errorDetail = errorDetail.WithDetails("title form field is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var description *string
	if d := strings.TrimSpace(ctx.PostForm("description")); d != "" {
		description = &d
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing material file")
		errorDetail = errorDetail.WithDetails("file form field is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	material, err := c.materialService.UploadMaterial(ctx.Request.Context(), staff.ID, courseID, title, description, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromMaterial(material),
		Timestamp: time.Now(),
	})
}

// ListMaterials lists the materials of a course
// @Summary List course materials
// @Description Lists the materials of one course, newest first
// @Tags materials
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.MaterialResponse} "Materials retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/materials [get]
func (c *MaterialController) ListMaterials(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	materials, err := c.materialService.ListMaterials(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		items = append(items, dto.FromMaterial(m))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// DownloadMaterial serves a material file
// @Summary Download course material
// @Description Streams the material file as an attachment
// @Tags materials
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Material ID" Format(int64) minimum(1)
// @Success 200 {file} binary "Material file"
// @Failure 400 {object} dto.ErrorResponse "Invalid material ID"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /materials/{id}/download [get]
func (c *MaterialController) DownloadMaterial(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	material, err := c.materialService.GetMaterial(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.FileAttachment(c.materialService.MaterialFilePath(material), material.FileName)
}

// DeleteMaterial deletes a material
// @Summary Delete course material
// @Description Deletes a material record and its stored file
// @Tags materials
// @Produce json
// @Security BearerAuth
// @Param id path int true "Material ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Material deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid material ID"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /materials/{id} [delete]
func (c *MaterialController) DeleteMaterial(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.materialService.DeleteMaterial(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}
