package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
	"github.com/eokonkwo/campuscore/internal/pkg/dberrors"
)

// MaterialRepository handles database operations for course materials
type MaterialRepository struct {
	db *pgxpool.Pool
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{
		db: db,
	}
}

// Create records an uploaded course material
func (r *MaterialRepository) Create(ctx context.Context, material *models.CourseMaterial) error {
	query := `
		INSERT INTO course_materials (course_id, title, description, file_name, file_path, file_size, content_type, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		material.CourseID, material.Title, material.Description, material.FileName,
		material.FilePath, material.FileSize, material.ContentType, material.UploadedBy,
	).Scan(&material.ID, &material.CreatedAt)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating material: %w", err)
	}

	return nil
}

// GetByID retrieves a course material by ID
func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*models.CourseMaterial, error) {
	query := `
		SELECT id, course_id, title, description, file_name, file_path, file_size, content_type, uploaded_by, created_at
		FROM course_materials
		WHERE id = $1
	`

	var m models.CourseMaterial
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.CourseID, &m.Title, &m.Description, &m.FileName,
		&m.FilePath, &m.FileSize, &m.ContentType, &m.UploadedBy, &m.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("error retrieving material: %w", err)
	}

	return &m, nil
}

// ListByCourse retrieves all materials for a course, newest first
func (r *MaterialRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseMaterial, error) {
	query := `
		SELECT id, course_id, title, description, file_name, file_path, file_size, content_type, uploaded_by, created_at
		FROM course_materials
		WHERE course_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing materials: %w", err)
	}
	defer rows.Close()

	var materials []*models.CourseMaterial
	for rows.Next() {
		var m models.CourseMaterial
		if err := rows.Scan(
			&m.ID, &m.CourseID, &m.Title, &m.Description, &m.FileName,
			&m.FilePath, &m.FileSize, &m.ContentType, &m.UploadedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning material row: %w", err)
		}
		materials = append(materials, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return materials, nil
}

// Delete removes a material record
func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM course_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting material: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}

	return nil
}
