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

// AttendanceRepository handles database operations for class attendance.
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

// CreateSession opens an attendance session for a held class. A second
// session for the same allocation and date hits the unique constraint.
func (r *AttendanceRepository) CreateSession(ctx context.Context, session *models.AttendanceSession) error {
	query := `
		INSERT INTO attendance_sessions (allocation_id, date, topic_covered)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		session.AllocationID, session.Date, session.TopicCovered,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAttendanceExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAllocationNotFound
		}
		return fmt.Errorf("error creating attendance session: %w", err)
	}

	return nil
}

// GetSessionByID retrieves an attendance session with its allocation
// populated, so callers can check the lecturer of record and resolve the
// course-term.
func (r *AttendanceRepository) GetSessionByID(ctx context.Context, id int64) (*models.AttendanceSession, error) {
	query := `
		SELECT ats.id, ats.allocation_id, ats.date, ats.topic_covered, ats.created_at,
		       ca.course_id, ca.lecturer_id, ca.session_id, ca.semester_id
		FROM attendance_sessions ats
		JOIN course_allocations ca ON ca.id = ats.allocation_id
		WHERE ats.id = $1
	`

	var session models.AttendanceSession
	var allocation models.CourseAllocation

	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID, &session.AllocationID, &session.Date, &session.TopicCovered, &session.CreatedAt,
		&allocation.CourseID, &allocation.LecturerID, &allocation.SessionID, &allocation.SemesterID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance session: %w", err)
	}

	allocation.ID = session.AllocationID
	session.Allocation = &allocation
	return &session, nil
}

// ListSessionsByAllocation retrieves all sessions of an allocation, most
// recent class first.
func (r *AttendanceRepository) ListSessionsByAllocation(ctx context.Context, allocationID int64) ([]*models.AttendanceSession, error) {
	query := `
		SELECT id, allocation_id, date, topic_covered, created_at
		FROM attendance_sessions
		WHERE allocation_id = $1
		ORDER BY date DESC
	`

	rows, err := r.db.Query(ctx, query, allocationID)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.AttendanceSession
	for rows.Next() {
		var session models.AttendanceSession
		if err := rows.Scan(
			&session.ID, &session.AllocationID, &session.Date,
			&session.TopicCovered, &session.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning attendance session row: %w", err)
		}
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// UpsertMarks records the given marks in one transaction. A student marked
// before gets their existing record updated; the marked_at timestamp moves
// with the correction.
func (r *AttendanceRepository) UpsertMarks(ctx context.Context, attendanceID int64, records []*models.AttendanceRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO attendance_records (attendance_id, student_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT uq_attendance_records_session_student
		DO UPDATE SET status = EXCLUDED.status, marked_at = NOW()
		RETURNING id, marked_at
	`

	for _, record := range records {
		record.AttendanceID = attendanceID
		err := tx.QueryRow(ctx, query, attendanceID, record.StudentID, record.Status).
			Scan(&record.ID, &record.MarkedAt)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrStudentNotFound
			}
			return fmt.Errorf("error marking attendance: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing attendance marks: %w", err)
	}

	logger.Info().Int64("attendanceID", attendanceID).Int("count", len(records)).Msg("Marked attendance")
	return nil
}

// ListRecords retrieves the marks of a session with the student and user
// relations populated, ordered by matric number.
func (r *AttendanceRepository) ListRecords(ctx context.Context, attendanceID int64) ([]*models.AttendanceRecord, error) {
	query := `
		SELECT ar.id, ar.attendance_id, ar.student_id, ar.status, ar.marked_at,
		       s.matric_number, s.current_level,
		       u.id, u.first_name, u.last_name, u.email
		FROM attendance_records ar
		JOIN students s ON s.id = ar.student_id
		JOIN users u ON u.id = s.user_id
		WHERE ar.attendance_id = $1
		ORDER BY s.matric_number ASC
	`

	rows, err := r.db.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance records: %w", err)
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		var record models.AttendanceRecord
		var student models.Student
		var user models.User

		if err := rows.Scan(
			&record.ID, &record.AttendanceID, &record.StudentID, &record.Status, &record.MarkedAt,
			&student.MatricNumber, &student.CurrentLevel,
			&user.ID, &user.FirstName, &user.LastName, &user.Email,
		); err != nil {
			return nil, fmt.Errorf("error scanning attendance record row: %w", err)
		}

		student.ID = record.StudentID
		student.UserID = user.ID
		student.User = &user
		record.Student = &student
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Stats aggregates a session's marks per status
func (r *AttendanceRepository) Stats(ctx context.Context, attendanceID int64) (models.AttendanceStats, error) {
	var present, absent, late int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = 'present'),
		       COUNT(*) FILTER (WHERE status = 'absent'),
		       COUNT(*) FILTER (WHERE status = 'late')
		FROM attendance_records
		WHERE attendance_id = $1`,
		attendanceID).Scan(&present, &absent, &late)

	if err != nil {
		return models.AttendanceStats{}, fmt.Errorf("error aggregating attendance stats: %w", err)
	}

	return models.NewAttendanceStats(present, absent, late), nil
}
