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

// TermRepository handles database operations for academic sessions and
// semesters.
type TermRepository struct {
	db *pgxpool.Pool
}

// NewTermRepository creates a new term repository
func NewTermRepository(db *pgxpool.Pool) *TermRepository {
	return &TermRepository{
		db: db,
	}
}

// CreateSession creates a new academic session
func (r *TermRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (name, start_date, end_date, is_active)
		VALUES ($1, $2, $3, false)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		session.Name, session.StartDate, session.EndDate,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSessionNameExists
		}
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

// GetSessionByID retrieves a session by ID
func (r *TermRepository) GetSessionByID(ctx context.Context, id int64) (*models.Session, error) {
	query := `
		SELECT id, name, start_date, end_date, is_active, created_at
		FROM sessions
		WHERE id = $1
	`

	var s models.Session
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.IsActive, &s.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	return &s, nil
}

// ListSessions retrieves all sessions, newest first
func (r *TermRepository) ListSessions(ctx context.Context) ([]*models.Session, error) {
	query := `
		SELECT id, name, start_date, end_date, is_active, created_at
		FROM sessions
		ORDER BY start_date DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning session row: %w", err)
		}
		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// ActivateSession marks one session active and deactivates the rest in a
// single transaction.
func (r *TermRepository) ActivateSession(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE sessions SET is_active = false WHERE is_active = true AND id <> $1`, id); err != nil {
		return fmt.Errorf("error deactivating sessions: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `UPDATE sessions SET is_active = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error activating session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing session activation: %w", err)
	}

	logger.Info().Int64("sessionID", id).Msg("Activated session")
	return nil
}

// CreateSemester creates a semester within a session
func (r *TermRepository) CreateSemester(ctx context.Context, semester *models.Semester) error {
	query := `
		INSERT INTO semesters (session_id, name, start_date, end_date, is_active, registration_start, registration_end)
		VALUES ($1, $2, $3, $4, false, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		semester.SessionID, semester.Name, semester.StartDate, semester.EndDate,
		semester.RegistrationStart, semester.RegistrationEnd,
	).Scan(&semester.ID, &semester.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSemesterExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSessionNotFound
		}
		return fmt.Errorf("error creating semester: %w", err)
	}

	return nil
}

// GetSemesterByID retrieves a semester (with its session) by ID
func (r *TermRepository) GetSemesterByID(ctx context.Context, id int64) (*models.Semester, error) {
	query := `
		SELECT sem.id, sem.session_id, sem.name, sem.start_date, sem.end_date,
		       sem.is_active, sem.registration_start, sem.registration_end, sem.created_at,
		       s.id, s.name, s.start_date, s.end_date, s.is_active, s.created_at
		FROM semesters sem
		JOIN sessions s ON s.id = sem.session_id
		WHERE sem.id = $1
	`

	var sem models.Semester
	var s models.Session
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sem.ID, &sem.SessionID, &sem.Name, &sem.StartDate, &sem.EndDate,
		&sem.IsActive, &sem.RegistrationStart, &sem.RegistrationEnd, &sem.CreatedAt,
		&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.IsActive, &s.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSemesterNotFound
		}
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}

	sem.Session = &s
	return &sem, nil
}

// ListSemestersBySession retrieves a session's semesters in term order
func (r *TermRepository) ListSemestersBySession(ctx context.Context, sessionID int64) ([]*models.Semester, error) {
	query := `
		SELECT id, session_id, name, start_date, end_date, is_active,
		       registration_start, registration_end, created_at
		FROM semesters
		WHERE session_id = $1
		ORDER BY start_date ASC
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error listing semesters: %w", err)
	}
	defer rows.Close()

	var semesters []*models.Semester
	for rows.Next() {
		var sem models.Semester
		if err := rows.Scan(
			&sem.ID, &sem.SessionID, &sem.Name, &sem.StartDate, &sem.EndDate,
			&sem.IsActive, &sem.RegistrationStart, &sem.RegistrationEnd, &sem.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning semester row: %w", err)
		}
		semesters = append(semesters, &sem)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return semesters, nil
}

// ActivateSemester marks one semester active, deactivates every other
// semester and activates the parent session, all in one transaction. The
// active term the rest of the system reads is therefore always a
// consistent (session, semester) pair.
func (r *TermRepository) ActivateSemester(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var sessionID int64
	err = tx.QueryRow(ctx, `SELECT session_id FROM semesters WHERE id = $1`, id).Scan(&sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrSemesterNotFound
		}
		return fmt.Errorf("error retrieving semester: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE semesters SET is_active = false WHERE is_active = true AND id <> $1`, id); err != nil {
		return fmt.Errorf("error deactivating semesters: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE semesters SET is_active = true WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error activating semester: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE sessions SET is_active = false WHERE is_active = true AND id <> $1`, sessionID); err != nil {
		return fmt.Errorf("error deactivating sessions: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE sessions SET is_active = true WHERE id = $1`, sessionID); err != nil {
		return fmt.Errorf("error activating session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing semester activation: %w", err)
	}

	logger.Info().Int64("semesterID", id).Int64("sessionID", sessionID).Msg("Activated semester")
	return nil
}

// GetActiveTerm retrieves the currently active session and semester.
// Returns ErrNoActiveTerm when no semester is active.
func (r *TermRepository) GetActiveTerm(ctx context.Context) (*models.Session, *models.Semester, error) {
	query := `
		SELECT s.id, s.name, s.start_date, s.end_date, s.is_active, s.created_at,
		       sem.id, sem.session_id, sem.name, sem.start_date, sem.end_date,
		       sem.is_active, sem.registration_start, sem.registration_end, sem.created_at
		FROM semesters sem
		JOIN sessions s ON s.id = sem.session_id
		WHERE sem.is_active = true
		LIMIT 1
	`

	var s models.Session
	var sem models.Semester
	err := r.db.QueryRow(ctx, query).Scan(
		&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.IsActive, &s.CreatedAt,
		&sem.ID, &sem.SessionID, &sem.Name, &sem.StartDate, &sem.EndDate,
		&sem.IsActive, &sem.RegistrationStart, &sem.RegistrationEnd, &sem.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNoActiveTerm
		}
		return nil, nil, fmt.Errorf("error retrieving active term: %w", err)
	}

	return &s, &sem, nil
}
