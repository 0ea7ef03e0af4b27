package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/app/repositories"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
	"github.com/eokonkwo/campuscore/internal/pkg/grading"
	"github.com/eokonkwo/campuscore/internal/pkg/logger"
)

// ResultStore is the persistence surface the result service needs.
// *repositories.ResultRepository satisfies it.
type ResultStore interface {
	Upsert(ctx context.Context, result *models.Result) (*models.Result, error)
	GetByID(ctx context.Context, id int64) (*models.Result, error)
	CountByCourseTerm(ctx context.Context, courseID, sessionID, semesterID int64) (int, error)
	MoveDraftsToPending(ctx context.Context, courseID, sessionID, semesterID, submittedBy int64) (int, error)
	MarkVerified(ctx context.Context, id, verifierID int64) (*models.Result, error)
	MarkRejected(ctx context.Context, id, verifierID int64, reason string) (*models.Result, error)
	List(ctx context.Context, filter repositories.ResultFilter, offset uint64, limit int) ([]*models.Result, int64, error)
}

// EligibilityStore answers whether students are registered for a
// course-term. *repositories.RegistrationRepository satisfies it.
type EligibilityStore interface {
	HasApproved(ctx context.Context, studentID, courseID, sessionID, semesterID int64) (bool, error)
	CountApproved(ctx context.Context, courseID, sessionID, semesterID int64) (int, error)
}

// AllocationStore answers who the lecturer of record is.
// *repositories.AllocationRepository satisfies it.
type AllocationStore interface {
	IsLecturerForCourseTerm(ctx context.Context, lecturerID, courseID, sessionID, semesterID int64) (bool, error)
}

// ResultService handles score entry and the result verification lifecycle
type ResultService struct {
	resultStore     ResultStore
	eligibility     EligibilityStore
	allocationStore AllocationStore
}

// NewResultService creates a new result service instance
func NewResultService(resultStore ResultStore, eligibility EligibilityStore, allocationStore AllocationStore) *ResultService {
	return &ResultService{
		resultStore:     resultStore,
		eligibility:     eligibility,
		allocationStore: allocationStore,
	}
}

// validateScores checks the component score ranges. The HTTP layer already
// bounds them via binding tags; this guards direct callers.
func validateScores(caScore, exam float64) error {
	if math.IsNaN(caScore) || caScore < 0 || caScore > grading.MaxCAScore {
		return fmt.Errorf("%w: caScore must be between 0 and %v", apperrors.ErrScoreOutOfRange, grading.MaxCAScore)
	}
	if math.IsNaN(exam) || exam < 0 || exam > grading.MaxExamScore {
		return fmt.Errorf("%w: examScore must be between 0 and %v", apperrors.ErrScoreOutOfRange, grading.MaxExamScore)
	}
	return nil
}

// UpsertScore records or replaces a student's scores for a course-term.
// Only the lecturer of record may enter scores, and only for students with
// an approved registration. The grade and grade point are derived here, so
// a stored result is always internally consistent. Re-entering scores for
// the same student resets the result to draft; a verified result cannot be
// overwritten.
func (s *ResultService) UpsertScore(ctx context.Context, lecturerID int64, req *dto.UpsertScoreRequest) (*models.Result, error) {
	if err := validateScores(req.CAScore, req.ExamScore); err != nil {
		return nil, err
	}

	isLecturer, err := s.allocationStore.IsLecturerForCourseTerm(ctx, lecturerID, req.CourseID, req.SessionID, req.SemesterID)
	if err != nil {
		return nil, fmt.Errorf("error checking course allocation: %w", err)
	}
	if !isLecturer {
		return nil, apperrors.ErrNotLecturerOfRecord
	}

	registered, err := s.eligibility.HasApproved(ctx, req.StudentID, req.CourseID, req.SessionID, req.SemesterID)
	if err != nil {
		return nil, fmt.Errorf("error checking registration: %w", err)
	}
	if !registered {
		return nil, apperrors.ErrStudentNotRegistered
	}

	total := req.CAScore + req.ExamScore
	grade, point := grading.Classify(total)

	result := &models.Result{
		StudentID:   req.StudentID,
		CourseID:    req.CourseID,
		SessionID:   req.SessionID,
		SemesterID:  req.SemesterID,
		CAScore:     req.CAScore,
		ExamScore:   req.ExamScore,
		TotalScore:  total,
		Grade:       grade,
		GradePoint:  point,
		Remarks:     req.Remarks,
		Status:      models.ResultDraft,
		SubmittedBy: lecturerID,
	}

	saved, err := s.resultStore.Upsert(ctx, result)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int64("studentID", saved.StudentID).
		Int64("courseID", saved.CourseID).
		Str("grade", string(saved.Grade)).
		Msg("Recorded score")
	return saved, nil
}

// SubmitForVerification moves the lecturer's draft results for a
// course-term to pending. The score sheet must be complete first: every
// student with an approved registration needs a result. Returns the number
// of results submitted.
func (s *ResultService) SubmitForVerification(ctx context.Context, lecturerID, courseID, sessionID, semesterID int64) (int, error) {
	isLecturer, err := s.allocationStore.IsLecturerForCourseTerm(ctx, lecturerID, courseID, sessionID, semesterID)
	if err != nil {
		return 0, fmt.Errorf("error checking course allocation: %w", err)
	}
	if !isLecturer {
		return 0, apperrors.ErrNotLecturerOfRecord
	}

	expected, err := s.eligibility.CountApproved(ctx, courseID, sessionID, semesterID)
	if err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}

	entered, err := s.resultStore.CountByCourseTerm(ctx, courseID, sessionID, semesterID)
	if err != nil {
		return 0, fmt.Errorf("error counting results: %w", err)
	}

	if entered < expected {
		return 0, apperrors.NewIncompleteSubmissionError(expected - entered)
	}

	moved, err := s.resultStore.MoveDraftsToPending(ctx, courseID, sessionID, semesterID, lecturerID)
	if err != nil {
		return 0, err
	}

	logger.Info().
		Int64("courseID", courseID).
		Int64("lecturerID", lecturerID).
		Int("submitted", moved).
		Msg("Submitted results for verification")
	return moved, nil
}

// VerifyResult approves a pending result. Once verified the result is
// immutable and counts towards GPA.
func (s *ResultService) VerifyResult(ctx context.Context, verifierID, resultID int64) (*models.Result, error) {
	result, err := s.resultStore.MarkVerified(ctx, resultID, verifierID)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("resultID", resultID).Int64("verifierID", verifierID).Msg("Verified result")
	return result, nil
}

// RejectResult sends a pending result back to its lecturer with a reason.
// The reason is prepended to the remarks; re-entering scores resets the
// result to draft for another submission round.
func (s *ResultService) RejectResult(ctx context.Context, verifierID, resultID int64, reason string) (*models.Result, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reason", "rejection reason cannot be empty")
	}

	result, err := s.resultStore.MarkRejected(ctx, resultID, verifierID, reason)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("resultID", resultID).Int64("verifierID", verifierID).Msg("Rejected result")
	return result, nil
}

// BulkVerify approves a batch of pending results. Results that are missing
// or not pending are skipped and reported; they do not fail the batch.
func (s *ResultService) BulkVerify(ctx context.Context, verifierID int64, resultIDs []int64) (*dto.BulkVerifyResponse, error) {
	resp := &dto.BulkVerifyResponse{
		Skipped: []dto.SkippedResult{},
	}

	for _, id := range resultIDs {
		_, err := s.resultStore.MarkVerified(ctx, id, verifierID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrResultNotFound):
				resp.Skipped = append(resp.Skipped, dto.SkippedResult{ResultID: id, Reason: "result not found"})
			case errors.Is(err, apperrors.ErrResultNotPending):
				resp.Skipped = append(resp.Skipped, dto.SkippedResult{ResultID: id, Reason: "result is not pending"})
			default:
				return nil, err
			}
			continue
		}
		resp.VerifiedCount++
	}

	logger.Info().
		Int64("verifierID", verifierID).
		Int("verified", resp.VerifiedCount).
		Int("skipped", len(resp.Skipped)).
		Msg("Bulk verified results")
	return resp, nil
}

// GetResult retrieves a single result by ID
func (s *ResultService) GetResult(ctx context.Context, id int64) (*models.Result, error) {
	return s.resultStore.GetByID(ctx, id)
}

// ListResults retrieves results matching the filter with pagination
func (s *ResultService) ListResults(ctx context.Context, filter repositories.ResultFilter, offset uint64, limit int) ([]*models.Result, int64, error) {
	return s.resultStore.List(ctx, filter, offset, limit)
}
