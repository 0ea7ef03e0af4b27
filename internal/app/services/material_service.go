package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/repositories"
	"github.com/eokonkwo/campuscore/internal/pkg/filestorage"
)

// MaterialService handles course material uploads and downloads
type MaterialService struct {
	materialRepo *repositories.MaterialRepository
	courseRepo   *repositories.CourseRepository
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewMaterialService creates a new material service instance
func NewMaterialService(
	materialRepo *repositories.MaterialRepository,
	courseRepo *repositories.CourseRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		courseRepo:   courseRepo,
		storage:      storage,
		logger:       logger,
	}
}

// UploadMaterial stores the file on disk and records the material against
// the course.
func (s *MaterialService) UploadMaterial(ctx context.Context, uploaderID, courseID int64, title string, description *string, fileHeader *multipart.FileHeader) (*models.CourseMaterial, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	filePath, err := s.storage.SaveFileWithPath(fileHeader, "materials/"+course.Code)
	if err != nil {
		return nil, err
	}

	material := &models.CourseMaterial{
		CourseID:    courseID,
		Title:       title,
		Description: description,
		FileName:    fileHeader.Filename,
		FilePath:    filePath,
		FileSize:    fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		UploadedBy:  uploaderID,
	}

	if err := s.materialRepo.Create(ctx, material); err != nil {
		// The row failed, so the stored file is orphaned; clean it up.
		if delErr := s.storage.DeleteFile(filePath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("filePath", filePath).Msg("Could not remove orphaned material file")
		}
		return nil, err
	}

	s.logger.Info().Int64("materialID", material.ID).Int64("courseID", courseID).Msg("Uploaded course material")
	return material, nil
}

// GetMaterial retrieves a material record by ID
func (s *MaterialService) GetMaterial(ctx context.Context, id int64) (*models.CourseMaterial, error) {
	return s.materialRepo.GetByID(ctx, id)
}

// MaterialFilePath resolves the full filesystem path of a material's file
func (s *MaterialService) MaterialFilePath(material *models.CourseMaterial) string {
	return s.storage.GetFullPath(material.FilePath)
}

// ListMaterials retrieves all materials for a course
func (s *MaterialService) ListMaterials(ctx context.Context, courseID int64) ([]*models.CourseMaterial, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.materialRepo.ListByCourse(ctx, courseID)
}

// DeleteMaterial removes the material record and its file
func (s *MaterialService) DeleteMaterial(ctx context.Context, id int64) error {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(material.FilePath); err != nil {
		s.logger.Warn().Err(err).Str("filePath", material.FilePath).Msg("Could not delete material file")
	}

	return nil
}
