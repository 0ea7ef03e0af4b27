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

// AllocationRepository handles database operations for course allocations
type AllocationRepository struct {
	db *pgxpool.Pool
}

// NewAllocationRepository creates a new allocation repository
func NewAllocationRepository(db *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{
		db: db,
	}
}

// Create assigns a lecturer to a course-term. A second allocation for the
// same course-term hits the unique constraint.
func (r *AllocationRepository) Create(ctx context.Context, allocation *models.CourseAllocation) error {
	query := `
		INSERT INTO course_allocations (course_id, lecturer_id, session_id, semester_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		allocation.CourseID, allocation.LecturerID, allocation.SessionID, allocation.SemesterID,
	).Scan(&allocation.ID, &allocation.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAllocationExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("course, lecturer, session or semester does not exist")
		}
		return fmt.Errorf("error creating allocation: %w", err)
	}

	return nil
}

// GetByID retrieves an allocation by ID
func (r *AllocationRepository) GetByID(ctx context.Context, id int64) (*models.CourseAllocation, error) {
	query := `
		SELECT id, course_id, lecturer_id, session_id, semester_id, created_at
		FROM course_allocations
		WHERE id = $1
	`

	var a models.CourseAllocation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.CourseID, &a.LecturerID, &a.SessionID, &a.SemesterID, &a.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAllocationNotFound
		}
		return nil, fmt.Errorf("error retrieving allocation: %w", err)
	}

	return &a, nil
}

// IsLecturerForCourseTerm reports whether the staff member is the lecturer
// of record for the course-term.
func (r *AllocationRepository) IsLecturerForCourseTerm(ctx context.Context, lecturerID, courseID, sessionID, semesterID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM course_allocations
			WHERE lecturer_id = $1 AND course_id = $2 AND session_id = $3 AND semester_id = $4
		)`,
		lecturerID, courseID, sessionID, semesterID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking allocation: %w", err)
	}

	return exists, nil
}

// ListByLecturer retrieves a lecturer's allocations for a term with the
// course populated, ordered by course code.
func (r *AllocationRepository) ListByLecturer(ctx context.Context, lecturerID, sessionID, semesterID int64) ([]*models.CourseAllocation, error) {
	query := `
		SELECT a.id, a.course_id, a.lecturer_id, a.session_id, a.semester_id, a.created_at,
		       c.id, c.department_id, c.code, c.title, c.description, c.credit_units,
		       c.level, c.semester_offered, c.is_elective
		FROM course_allocations a
		JOIN courses c ON c.id = a.course_id
		WHERE a.lecturer_id = $1 AND a.session_id = $2 AND a.semester_id = $3
		ORDER BY c.code ASC
	`

	rows, err := r.db.Query(ctx, query, lecturerID, sessionID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("error listing allocations: %w", err)
	}
	defer rows.Close()

	var allocations []*models.CourseAllocation
	for rows.Next() {
		var a models.CourseAllocation
		var c models.Course
		if err := rows.Scan(
			&a.ID, &a.CourseID, &a.LecturerID, &a.SessionID, &a.SemesterID, &a.CreatedAt,
			&c.ID, &c.DepartmentID, &c.Code, &c.Title, &c.Description, &c.CreditUnits,
			&c.Level, &c.SemesterOffered, &c.IsElective,
		); err != nil {
			return nil, fmt.Errorf("error scanning allocation row: %w", err)
		}
		a.Course = &c
		allocations = append(allocations, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return allocations, nil
}

// Delete removes an allocation
func (r *AllocationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM course_allocations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting allocation: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAllocationNotFound
	}

	return nil
}
