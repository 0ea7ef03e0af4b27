package dto

import (
	"time"

	"github.com/eokonkwo/campuscore/internal/app/models"
)

// MaterialResponse represents one course material
type MaterialResponse struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"courseId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	FileName    string    `json:"fileName"`
	FilePath    string    `json:"filePath"`
	FileSize    int64     `json:"fileSize"`
	ContentType string    `json:"contentType"`
	UploadedBy  int64     `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromMaterial converts a models.CourseMaterial to a MaterialResponse
func FromMaterial(m *models.CourseMaterial) MaterialResponse {
	if m == nil {
		return MaterialResponse{}
	}

	return MaterialResponse{
		ID:          m.ID,
		CourseID:    m.CourseID,
		Title:       m.Title,
		Description: m.Description,
		FileName:    m.FileName,
		FilePath:    m.FilePath,
		FileSize:    m.FileSize,
		ContentType: m.ContentType,
		UploadedBy:  m.UploadedBy,
		CreatedAt:   m.CreatedAt,
	}
}
