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
	"github.com/eokonkwo/campuscore/internal/pkg/logger"
)

// resultColumns are the columns scanned into a models.Result, in order.
const resultColumns = `id, student_id, course_id, session_id, semester_id,
	ca_score, exam_score, total_score, grade, grade_point, remarks, status,
	submitted_by, submitted_at, verified_by, verified_at`

// ResultFilter narrows result listings. Zero values mean "no filter".
type ResultFilter struct {
	StudentID   int64
	CourseID    int64
	SessionID   int64
	SemesterID  int64
	SubmittedBy int64
	Status      models.ResultStatus
}

// ResultRepository handles database operations for results
type ResultRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanResult(row pgx.Row) (*models.Result, error) {
	var r models.Result
	err := row.Scan(
		&r.ID,
		&r.StudentID,
		&r.CourseID,
		&r.SessionID,
		&r.SemesterID,
		&r.CAScore,
		&r.ExamScore,
		&r.TotalScore,
		&r.Grade,
		&r.GradePoint,
		&r.Remarks,
		&r.Status,
		&r.SubmittedBy,
		&r.SubmittedAt,
		&r.VerifiedBy,
		&r.VerifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Upsert writes a result for its natural key (student, course, session,
// semester). A concurrent create for the same key lands on the unique
// constraint and is converted into an update of the existing row. The
// status is forced to draft and any earlier verification stamp is cleared,
// unless the existing row is already verified, in which case nothing is
// written and ErrResultVerified is returned.
//
// The caller must have filled TotalScore, Grade and GradePoint; they are
// persisted in the same statement as the sub-scores so a row can never hold
// a total without its grade.
func (r *ResultRepository) Upsert(ctx context.Context, result *models.Result) (*models.Result, error) {
	query := `
		INSERT INTO results (student_id, course_id, session_id, semester_id,
			ca_score, exam_score, total_score, grade, grade_point, remarks,
			status, submitted_by, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'draft', $11, NOW())
		ON CONFLICT ON CONSTRAINT uq_results_student_course_term DO UPDATE SET
			ca_score = EXCLUDED.ca_score,
			exam_score = EXCLUDED.exam_score,
			total_score = EXCLUDED.total_score,
			grade = EXCLUDED.grade,
			grade_point = EXCLUDED.grade_point,
			remarks = EXCLUDED.remarks,
			status = 'draft',
			submitted_by = EXCLUDED.submitted_by,
			submitted_at = NOW(),
			verified_by = NULL,
			verified_at = NULL
		WHERE results.status <> 'verified'
		RETURNING ` + resultColumns

	saved, err := scanResult(r.db.QueryRow(ctx, query,
		result.StudentID, result.CourseID, result.SessionID, result.SemesterID,
		result.CAScore, result.ExamScore, result.TotalScore, result.Grade,
		result.GradePoint, result.Remarks, result.SubmittedBy,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The conflicting row is verified and the conditional update
			// matched nothing.
			return nil, apperrors.ErrResultVerified
		}
		return nil, fmt.Errorf("error upserting result: %w", err)
	}

	return saved, nil
}

// GetByID retrieves a result by ID
func (r *ResultRepository) GetByID(ctx context.Context, id int64) (*models.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE id = $1`

	result, err := scanResult(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResultNotFound
		}
		return nil, fmt.Errorf("error retrieving result: %w", err)
	}

	return result, nil
}

// CountByCourseTerm counts all results entered for a course-term,
// regardless of status.
func (r *ResultRepository) CountByCourseTerm(ctx context.Context, courseID, sessionID, semesterID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM results
		WHERE course_id = $1 AND session_id = $2 AND semester_id = $3`,
		courseID, sessionID, semesterID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting results: %w", err)
	}

	return count, nil
}

// MoveDraftsToPending transitions every draft result the lecturer entered
// for the course-term to pending in a single statement and returns how many
// rows moved. Completeness is checked by the service before calling this.
func (r *ResultRepository) MoveDraftsToPending(ctx context.Context, courseID, sessionID, semesterID, submittedBy int64) (int, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE results
		SET status = 'pending', submitted_at = NOW()
		WHERE course_id = $1 AND session_id = $2 AND semester_id = $3
		  AND submitted_by = $4 AND status = 'draft'`,
		courseID, sessionID, semesterID, submittedBy)

	if err != nil {
		return 0, fmt.Errorf("error submitting results for verification: %w", err)
	}

	return int(cmdTag.RowsAffected()), nil
}

// MarkVerified transitions a pending result to verified, recording the
// verifier and the verification time. Only pending rows match; a row in any
// other state yields ErrResultNotPending, a missing row ErrResultNotFound.
func (r *ResultRepository) MarkVerified(ctx context.Context, id, verifierID int64) (*models.Result, error) {
	query := `
		UPDATE results
		SET status = 'verified', verified_by = $2, verified_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + resultColumns

	result, err := scanResult(r.db.QueryRow(ctx, query, id, verifierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyTransitionFailure(ctx, id)
		}
		return nil, fmt.Errorf("error verifying result: %w", err)
	}

	return result, nil
}

// MarkRejected transitions a pending result to rejected, recording the
// verifier and prepending the rejection reason to the remarks.
func (r *ResultRepository) MarkRejected(ctx context.Context, id, verifierID int64, reason string) (*models.Result, error) {
	query := `
		UPDATE results
		SET status = 'rejected', verified_by = $2, verified_at = NOW(),
		    remarks = 'REJECTED: ' || $3 || E'\n' || remarks
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + resultColumns

	result, err := scanResult(r.db.QueryRow(ctx, query, id, verifierID, reason))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyTransitionFailure(ctx, id)
		}
		return nil, fmt.Errorf("error rejecting result: %w", err)
	}

	return result, nil
}

// classifyTransitionFailure distinguishes "row missing" from "row not
// pending" after a conditional transition matched nothing.
func (r *ResultRepository) classifyTransitionFailure(ctx context.Context, id int64) error {
	var status models.ResultStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM results WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrResultNotFound
		}
		return fmt.Errorf("error checking result status: %w", err)
	}
	return fmt.Errorf("%w: status is %s", apperrors.ErrResultNotPending, status)
}

// ListVerifiedByStudent retrieves a student's verified results with the
// course and term relations populated, ordered chronologically by term and
// then by course code. Session and semester filters are optional.
func (r *ResultRepository) ListVerifiedByStudent(ctx context.Context, studentID int64, sessionID, semesterID *int64) ([]*models.Result, error) {
	builder := r.sb.Select(
		"r.id", "r.student_id", "r.course_id", "r.session_id", "r.semester_id",
		"r.ca_score", "r.exam_score", "r.total_score", "r.grade", "r.grade_point",
		"r.remarks", "r.status", "r.submitted_by", "r.submitted_at",
		"r.verified_by", "r.verified_at",
		"c.code", "c.title", "c.credit_units",
		"s.name", "s.start_date",
		"sem.name",
	).
		From("results r").
		Join("courses c ON c.id = r.course_id").
		Join("sessions s ON s.id = r.session_id").
		Join("semesters sem ON sem.id = r.semester_id").
		Where(squirrel.Eq{"r.student_id": studentID, "r.status": models.ResultVerified}).
		OrderBy("s.start_date", "sem.name", "c.code")

	if sessionID != nil {
		builder = builder.Where(squirrel.Eq{"r.session_id": *sessionID})
	}
	if semesterID != nil {
		builder = builder.Where(squirrel.Eq{"r.semester_id": *semesterID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build verified results query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing verified results: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		var res models.Result
		var course models.Course
		var session models.Session
		var semester models.Semester

		if err := rows.Scan(
			&res.ID, &res.StudentID, &res.CourseID, &res.SessionID, &res.SemesterID,
			&res.CAScore, &res.ExamScore, &res.TotalScore, &res.Grade, &res.GradePoint,
			&res.Remarks, &res.Status, &res.SubmittedBy, &res.SubmittedAt,
			&res.VerifiedBy, &res.VerifiedAt,
			&course.Code, &course.Title, &course.CreditUnits,
			&session.Name, &session.StartDate,
			&semester.Name,
		); err != nil {
			return nil, fmt.Errorf("error scanning verified result: %w", err)
		}

		course.ID = res.CourseID
		session.ID = res.SessionID
		semester.ID = res.SemesterID
		semester.SessionID = res.SessionID
		res.Course = &course
		res.Session = &session
		res.Semester = &semester

		results = append(results, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// List retrieves results matching the filter with pagination, newest
// submissions first, along with the total match count.
func (r *ResultRepository) List(ctx context.Context, filter ResultFilter, offset uint64, limit int) ([]*models.Result, int64, error) {
	where := squirrel.And{}
	if filter.StudentID > 0 {
		where = append(where, squirrel.Eq{"r.student_id": filter.StudentID})
	}
	if filter.CourseID > 0 {
		where = append(where, squirrel.Eq{"r.course_id": filter.CourseID})
	}
	if filter.SessionID > 0 {
		where = append(where, squirrel.Eq{"r.session_id": filter.SessionID})
	}
	if filter.SemesterID > 0 {
		where = append(where, squirrel.Eq{"r.semester_id": filter.SemesterID})
	}
	if filter.SubmittedBy > 0 {
		where = append(where, squirrel.Eq{"r.submitted_by": filter.SubmittedBy})
	}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"r.status": filter.Status})
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From("results r").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build result count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting results: %w", err)
	}

	query, args, err := r.sb.Select(
		"r.id", "r.student_id", "r.course_id", "r.session_id", "r.semester_id",
		"r.ca_score", "r.exam_score", "r.total_score", "r.grade", "r.grade_point",
		"r.remarks", "r.status", "r.submitted_by", "r.submitted_at",
		"r.verified_by", "r.verified_at",
		"st.matric_number", "c.code", "c.credit_units",
	).
		From("results r").
		Join("students st ON st.id = r.student_id").
		Join("courses c ON c.id = r.course_id").
		Where(where).
		OrderBy("r.submitted_at DESC", "r.id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build result list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing results: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		var res models.Result
		var student models.Student
		var course models.Course

		if err := rows.Scan(
			&res.ID, &res.StudentID, &res.CourseID, &res.SessionID, &res.SemesterID,
			&res.CAScore, &res.ExamScore, &res.TotalScore, &res.Grade, &res.GradePoint,
			&res.Remarks, &res.Status, &res.SubmittedBy, &res.SubmittedAt,
			&res.VerifiedBy, &res.VerifiedAt,
			&student.MatricNumber, &course.Code, &course.CreditUnits,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning result row: %w", err)
		}

		student.ID = res.StudentID
		course.ID = res.CourseID
		res.Student = &student
		res.Course = &course

		results = append(results, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	logger.Debug().Int("count", len(results)).Int64("total", total).Msg("Listed results")
	return results, total, nil
}
