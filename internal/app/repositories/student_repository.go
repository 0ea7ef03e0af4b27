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

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// CreateWithUser inserts the user account and the student record in one
// transaction. The student's UserID is filled from the created user.
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := createUserTx(ctx, tx, user); err != nil {
		return err
	}

	student.UserID = user.ID

	query := `
		INSERT INTO students (user_id, matric_number, department_id, admission_session_id, current_level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		student.UserID, student.MatricNumber, student.DepartmentID,
		student.AdmissionSessionID, student.CurrentLevel,
	).Scan(&student.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_matric_number_key") {
			return apperrors.ErrMatricNumberExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing student creation: %w", err)
	}

	logger.Info().Int64("studentID", student.ID).Str("matricNumber", student.MatricNumber).Msg("Created student")
	return nil
}

const studentSelect = `
	SELECT s.id, s.user_id, s.matric_number, s.department_id, s.admission_session_id, s.current_level,
	       u.id, u.email, u.password, u.first_name, u.last_name, u.role_type,
	       u.is_active, u.last_login_at, u.created_at, u.updated_at
	FROM students s
	JOIN users u ON u.id = s.user_id
`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	var u models.User
	err := row.Scan(
		&s.ID, &s.UserID, &s.MatricNumber, &s.DepartmentID, &s.AdmissionSessionID, &s.CurrentLevel,
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.RoleType,
		&u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.User = &u
	return &s, nil
}

// GetByID retrieves a student (with the user account) by student ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByUserID retrieves a student by the linked user account ID
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by user ID: %w", err)
	}

	return student, nil
}

// GetByMatricNumber retrieves a student by matric number
func (r *StudentRepository) GetByMatricNumber(ctx context.Context, matricNumber string) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.matric_number = $1`, matricNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by matric number: %w", err)
	}

	return student, nil
}

// List retrieves students with pagination, optionally filtered by
// department and level, ordered by matric number.
func (r *StudentRepository) List(ctx context.Context, departmentID int64, level int, offset uint64, limit int) ([]*models.Student, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	n := 0
	if departmentID > 0 {
		n++
		where += fmt.Sprintf(" AND s.department_id = $%d", n)
		args = append(args, departmentID)
	}
	if level > 0 {
		n++
		where += fmt.Sprintf(" AND s.current_level = $%d", n)
		args = append(args, level)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM students s` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	query := studentSelect + where + fmt.Sprintf(" ORDER BY s.matric_number ASC OFFSET $%d LIMIT $%d", n+1, n+2)
	args = append(args, offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// CountByDepartmentAndSession counts students admitted to a department in
// a session. Used to pick the next matric number serial.
func (r *StudentRepository) CountByDepartmentAndSession(ctx context.Context, departmentID, admissionSessionID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM students
		WHERE department_id = $1 AND admission_session_id = $2`,
		departmentID, admissionSessionID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}

	return count, nil
}

// MatricNumberExists checks whether a matric number is already assigned
func (r *StudentRepository) MatricNumberExists(ctx context.Context, matricNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE matric_number = $1)`,
		matricNumber).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking matric number existence: %w", err)
	}

	return exists, nil
}

// UpdateLevel moves a student to a new level
func (r *StudentRepository) UpdateLevel(ctx context.Context, studentID int64, level int) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students SET current_level = $1 WHERE id = $2`,
		level, studentID)

	if err != nil {
		return fmt.Errorf("error updating student level: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
