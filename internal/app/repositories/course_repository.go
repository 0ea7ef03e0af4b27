package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
	"github.com/eokonkwo/campuscore/internal/pkg/dberrors"
)

// ErrCourseHasResults is returned when trying to delete a course that
// already has results or registrations recorded against it.
var ErrCourseHasResults = errors.New("course has associated records and cannot be deleted")

const courseColumns = `id, department_id, code, title, description, credit_units,
	level, semester_offered, is_elective`

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID,
		&c.DepartmentID,
		&c.Code,
		&c.Title,
		&c.Description,
		&c.CreditUnits,
		&c.Level,
		&c.SemesterOffered,
		&c.IsElective,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (department_id, code, title, description, credit_units, level, semester_offered, is_elective)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		course.DepartmentID, course.Code, course.Title, course.Description,
		course.CreditUnits, course.Level, course.SemesterOffered, course.IsElective,
	).Scan(&course.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseCodeExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// List retrieves courses with optional department, level and semester
// filters, ordered by code.
func (r *CourseRepository) List(ctx context.Context, departmentID int64, level int, semester models.SemesterName) ([]*models.Course, error) {
	builder := r.sb.Select(
		"id", "department_id", "code", "title", "description", "credit_units",
		"level", "semester_offered", "is_elective",
	).
		From("courses").
		OrderBy("code ASC")

	if departmentID > 0 {
		builder = builder.Where(squirrel.Eq{"department_id": departmentID})
	}
	if level > 0 {
		builder = builder.Where(squirrel.Eq{"level": level})
	}
	if semester != "" {
		// Courses offered in "both" semesters match either filter.
		builder = builder.Where(squirrel.Eq{"semester_offered": []string{string(semester), string(models.OfferedBoth)}})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2, credit_units = $3, level = $4,
		    semester_offered = $5, is_elective = $6
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Title, course.Description, course.CreditUnits, course.Level,
		course.SemesterOffered, course.IsElective, course.ID)

	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course that has no results or registrations yet
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	var hasRecords bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM results WHERE course_id = $1)
		    OR EXISTS(SELECT 1 FROM course_registrations WHERE course_id = $1)`,
		id).Scan(&hasRecords)

	if err != nil {
		return fmt.Errorf("error checking related records: %w", err)
	}

	if hasRecords {
		return ErrCourseHasResults
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
