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
	"github.com/eokonkwo/campuscore/internal/pkg/logger"
)

// RegistrationRepository handles database operations for course
// registrations.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{
		db: db,
	}
}

// CreateBatch registers a student for several courses in one transaction.
// All registrations start pending. A duplicate registration for any course
// in the batch aborts the whole batch with ErrAlreadyRegistered.
func (r *RegistrationRepository) CreateBatch(ctx context.Context, studentID int64, courseIDs []int64, sessionID, semesterID int64) ([]*models.CourseRegistration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO course_registrations (student_id, course_id, session_id, semester_id, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id, registered_at
	`

	registrations := make([]*models.CourseRegistration, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		reg := &models.CourseRegistration{
			StudentID:  studentID,
			CourseID:   courseID,
			SessionID:  sessionID,
			SemesterID: semesterID,
			Status:     models.RegistrationPending,
		}

		err := tx.QueryRow(ctx, query, studentID, courseID, sessionID, semesterID).
			Scan(&reg.ID, &reg.RegisteredAt)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return nil, fmt.Errorf("%w: course %d", apperrors.ErrAlreadyRegistered, courseID)
			}
			if dberrors.IsForeignKeyViolation(err) {
				return nil, apperrors.ErrCourseNotFound
			}
			return nil, fmt.Errorf("error creating registration: %w", err)
		}

		registrations = append(registrations, reg)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing registrations: %w", err)
	}

	logger.Info().Int64("studentID", studentID).Int("count", len(registrations)).Msg("Registered courses")
	return registrations, nil
}

// GetByID retrieves a registration by ID
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*models.CourseRegistration, error) {
	query := `
		SELECT id, student_id, course_id, session_id, semester_id, status, registered_at
		FROM course_registrations
		WHERE id = $1
	`

	var reg models.CourseRegistration
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reg.ID, &reg.StudentID, &reg.CourseID, &reg.SessionID,
		&reg.SemesterID, &reg.Status, &reg.RegisteredAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error retrieving registration: %w", err)
	}

	return &reg, nil
}

// UpdateStatus decides a pending registration. Only pending rows can be
// decided; deciding an already decided one yields ErrRegistrationDecided.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id int64, status models.RegistrationStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE course_registrations
		SET status = $1
		WHERE id = $2 AND status = 'pending'`,
		status, id)

	if err != nil {
		return fmt.Errorf("error updating registration status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM course_registrations WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking registration existence: %w", err)
		}
		if !exists {
			return apperrors.ErrRegistrationNotFound
		}
		return apperrors.ErrRegistrationDecided
	}

	return nil
}

// HasApproved reports whether the student holds an approved registration
// for the course-term. This is the eligibility check for score entry.
func (r *RegistrationRepository) HasApproved(ctx context.Context, studentID, courseID, sessionID, semesterID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM course_registrations
			WHERE student_id = $1 AND course_id = $2 AND session_id = $3
			  AND semester_id = $4 AND status = 'approved'
		)`,
		studentID, courseID, sessionID, semesterID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking registration: %w", err)
	}

	return exists, nil
}

// CountApproved counts approved registrations for a course-term. Together
// with the result count this decides whether a score sheet is complete.
func (r *RegistrationRepository) CountApproved(ctx context.Context, courseID, sessionID, semesterID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM course_registrations
		WHERE course_id = $1 AND session_id = $2 AND semester_id = $3 AND status = 'approved'`,
		courseID, sessionID, semesterID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}

	return count, nil
}

// ApprovedStudents retrieves the roster of approved students for a
// course-term, ordered by matric number, with the student and user
// relations populated.
func (r *RegistrationRepository) ApprovedStudents(ctx context.Context, courseID, sessionID, semesterID int64) ([]*models.CourseRegistration, error) {
	query := `
		SELECT reg.id, reg.student_id, reg.course_id, reg.session_id, reg.semester_id,
		       reg.status, reg.registered_at,
		       s.matric_number, s.current_level,
		       u.id, u.first_name, u.last_name, u.email
		FROM course_registrations reg
		JOIN students s ON s.id = reg.student_id
		JOIN users u ON u.id = s.user_id
		WHERE reg.course_id = $1 AND reg.session_id = $2 AND reg.semester_id = $3
		  AND reg.status = 'approved'
		ORDER BY s.matric_number ASC
	`

	rows, err := r.db.Query(ctx, query, courseID, sessionID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("error listing approved students: %w", err)
	}
	defer rows.Close()

	var registrations []*models.CourseRegistration
	for rows.Next() {
		var reg models.CourseRegistration
		var student models.Student
		var user models.User

		if err := rows.Scan(
			&reg.ID, &reg.StudentID, &reg.CourseID, &reg.SessionID, &reg.SemesterID,
			&reg.Status, &reg.RegisteredAt,
			&student.MatricNumber, &student.CurrentLevel,
			&user.ID, &user.FirstName, &user.LastName, &user.Email,
		); err != nil {
			return nil, fmt.Errorf("error scanning roster row: %w", err)
		}

		student.ID = reg.StudentID
		student.UserID = user.ID
		student.User = &user
		reg.Student = &student
		registrations = append(registrations, &reg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return registrations, nil
}

// ListByStudent retrieves a student's registrations for a term with the
// course populated, ordered by course code.
func (r *RegistrationRepository) ListByStudent(ctx context.Context, studentID, sessionID, semesterID int64) ([]*models.CourseRegistration, error) {
	query := `
		SELECT reg.id, reg.student_id, reg.course_id, reg.session_id, reg.semester_id,
		       reg.status, reg.registered_at,
		       c.id, c.department_id, c.code, c.title, c.description, c.credit_units,
		       c.level, c.semester_offered, c.is_elective
		FROM course_registrations reg
		JOIN courses c ON c.id = reg.course_id
		WHERE reg.student_id = $1 AND reg.session_id = $2 AND reg.semester_id = $3
		ORDER BY c.code ASC
	`

	rows, err := r.db.Query(ctx, query, studentID, sessionID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	var registrations []*models.CourseRegistration
	for rows.Next() {
		var reg models.CourseRegistration
		var c models.Course

		if err := rows.Scan(
			&reg.ID, &reg.StudentID, &reg.CourseID, &reg.SessionID, &reg.SemesterID,
			&reg.Status, &reg.RegisteredAt,
			&c.ID, &c.DepartmentID, &c.Code, &c.Title, &c.Description, &c.CreditUnits,
			&c.Level, &c.SemesterOffered, &c.IsElective,
		); err != nil {
			return nil, fmt.Errorf("error scanning registration row: %w", err)
		}

		reg.Course = &c
		registrations = append(registrations, &reg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return registrations, nil
}

// ListPending retrieves pending registrations for a term, oldest first,
// with pagination. Used by the approval queue.
func (r *RegistrationRepository) ListPending(ctx context.Context, sessionID, semesterID int64, offset uint64, limit int) ([]*models.CourseRegistration, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM course_registrations
		WHERE session_id = $1 AND semester_id = $2 AND status = 'pending'`,
		sessionID, semesterID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting pending registrations: %w", err)
	}

	query := `
		SELECT reg.id, reg.student_id, reg.course_id, reg.session_id, reg.semester_id,
		       reg.status, reg.registered_at,
		       s.matric_number,
		       c.code, c.title
		FROM course_registrations reg
		JOIN students s ON s.id = reg.student_id
		JOIN courses c ON c.id = reg.course_id
		WHERE reg.session_id = $1 AND reg.semester_id = $2 AND reg.status = 'pending'
		ORDER BY reg.registered_at ASC, reg.id ASC
		OFFSET $3 LIMIT $4
	`

	rows, err := r.db.Query(ctx, query, sessionID, semesterID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing pending registrations: %w", err)
	}
	defer rows.Close()

	var registrations []*models.CourseRegistration
	for rows.Next() {
		var reg models.CourseRegistration
		var student models.Student
		var course models.Course

		if err := rows.Scan(
			&reg.ID, &reg.StudentID, &reg.CourseID, &reg.SessionID, &reg.SemesterID,
			&reg.Status, &reg.RegisteredAt,
			&student.MatricNumber,
			&course.Code, &course.Title,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning pending registration row: %w", err)
		}

		student.ID = reg.StudentID
		course.ID = reg.CourseID
		reg.Student = &student
		reg.Course = &course
		registrations = append(registrations, &reg)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return registrations, total, nil
}
