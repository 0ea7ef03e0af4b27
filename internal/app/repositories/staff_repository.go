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

// StaffRepository handles database operations for staff
type StaffRepository struct {
	db *pgxpool.Pool
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{
		db: db,
	}
}

// CreateWithUser inserts the user account and the staff record in one
// transaction. The staff's UserID is filled from the created user.
func (r *StaffRepository) CreateWithUser(ctx context.Context, user *models.User, staff *models.Staff) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := createUserTx(ctx, tx, user); err != nil {
		return err
	}

	staff.UserID = user.ID

	query := `
		INSERT INTO staff (user_id, staff_id, department_id, designation)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		staff.UserID, staff.StaffID, staff.DepartmentID, staff.Designation,
	).Scan(&staff.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "staff_staff_id_key") {
			return apperrors.NewConflictError("staff ID already assigned")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error creating staff: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing staff creation: %w", err)
	}

	logger.Info().Int64("staffID", staff.ID).Str("staffNumber", staff.StaffID).Msg("Created staff")
	return nil
}

const staffSelect = `
	SELECT s.id, s.user_id, s.staff_id, s.department_id, s.designation,
	       u.id, u.email, u.password, u.first_name, u.last_name, u.role_type,
	       u.is_active, u.last_login_at, u.created_at, u.updated_at
	FROM staff s
	JOIN users u ON u.id = s.user_id
`

func scanStaff(row pgx.Row) (*models.Staff, error) {
	var s models.Staff
	var u models.User
	err := row.Scan(
		&s.ID, &s.UserID, &s.StaffID, &s.DepartmentID, &s.Designation,
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.RoleType,
		&u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.User = &u
	return &s, nil
}

// GetByID retrieves a staff member (with the user account) by staff record ID
func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*models.Staff, error) {
	staff, err := scanStaff(r.db.QueryRow(ctx, staffSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStaffNotFound
		}
		return nil, fmt.Errorf("error retrieving staff: %w", err)
	}

	return staff, nil
}

// GetByUserID retrieves a staff member by the linked user account ID
func (r *StaffRepository) GetByUserID(ctx context.Context, userID int64) (*models.Staff, error) {
	staff, err := scanStaff(r.db.QueryRow(ctx, staffSelect+` WHERE s.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStaffNotFound
		}
		return nil, fmt.Errorf("error retrieving staff by user ID: %w", err)
	}

	return staff, nil
}

// ListByDepartment retrieves all staff of a department ordered by staff ID
func (r *StaffRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]*models.Staff, error) {
	rows, err := r.db.Query(ctx, staffSelect+` WHERE s.department_id = $1 ORDER BY s.staff_id ASC`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing staff: %w", err)
	}
	defer rows.Close()

	var members []*models.Staff
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning staff row: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

// CountByStaffIDPrefix counts staff whose staff ID starts with the prefix.
// Used to pick the next staff ID serial within a year.
func (r *StaffRepository) CountByStaffIDPrefix(ctx context.Context, prefix string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM staff WHERE staff_id LIKE $1 || '%'`,
		prefix).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting staff: %w", err)
	}

	return count, nil
}
