package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/app/repositories"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
	"github.com/eokonkwo/campuscore/internal/pkg/grading"
)

// resultKey identifies the one row allowed per student/course-term.
type resultKey struct {
	studentID, courseID, sessionID, semesterID int64
}

// fakeResultStore is an in-memory ResultStore
type fakeResultStore struct {
	nextID  int64
	results map[int64]*models.Result
	byKey   map[resultKey]int64
}

func newFakeResultStore() *fakeResultStore {
	return &fakeResultStore{
		nextID:  1,
		results: make(map[int64]*models.Result),
		byKey:   make(map[resultKey]int64),
	}
}

func (f *fakeResultStore) Upsert(_ context.Context, result *models.Result) (*models.Result, error) {
	key := resultKey{result.StudentID, result.CourseID, result.SessionID, result.SemesterID}
	if id, ok := f.byKey[key]; ok {
		existing := f.results[id]
		if existing.Status == models.ResultVerified {
			return nil, apperrors.ErrResultVerified
		}
		result.ID = id
	} else {
		result.ID = f.nextID
		f.nextID++
		f.byKey[key] = result.ID
	}
	cp := *result
	f.results[result.ID] = &cp
	return result, nil
}

func (f *fakeResultStore) GetByID(_ context.Context, id int64) (*models.Result, error) {
	r, ok := f.results[id]
	if !ok {
		return nil, apperrors.ErrResultNotFound
	}
	return r, nil
}

func (f *fakeResultStore) CountByCourseTerm(_ context.Context, courseID, sessionID, semesterID int64) (int, error) {
	count := 0
	for _, r := range f.results {
		if r.CourseID == courseID && r.SessionID == sessionID && r.SemesterID == semesterID {
			count++
		}
	}
	return count, nil
}

func (f *fakeResultStore) MoveDraftsToPending(_ context.Context, courseID, sessionID, semesterID, submittedBy int64) (int, error) {
	moved := 0
	for _, r := range f.results {
		if r.CourseID == courseID && r.SessionID == sessionID && r.SemesterID == semesterID &&
			r.Status == models.ResultDraft && r.SubmittedBy == submittedBy {
			r.Status = models.ResultPending
			moved++
		}
	}
	return moved, nil
}

func (f *fakeResultStore) MarkVerified(_ context.Context, id, verifierID int64) (*models.Result, error) {
	r, ok := f.results[id]
	if !ok {
		return nil, apperrors.ErrResultNotFound
	}
	if r.Status != models.ResultPending {
		return nil, apperrors.ErrResultNotPending
	}
	r.Status = models.ResultVerified
	r.VerifiedBy = &verifierID
	return r, nil
}

func (f *fakeResultStore) MarkRejected(_ context.Context, id, verifierID int64, reason string) (*models.Result, error) {
	r, ok := f.results[id]
	if !ok {
		return nil, apperrors.ErrResultNotFound
	}
	if r.Status != models.ResultPending {
		return nil, apperrors.ErrResultNotPending
	}
	r.Status = models.ResultRejected
	r.VerifiedBy = &verifierID
	r.Remarks = "REJECTED: " + reason + "\n" + r.Remarks
	return r, nil
}

func (f *fakeResultStore) List(_ context.Context, filter repositories.ResultFilter, offset uint64, limit int) ([]*models.Result, int64, error) {
	var out []*models.Result
	for _, r := range f.results {
		if filter.CourseID != 0 && r.CourseID != filter.CourseID {
			continue
		}
		if filter.StudentID != 0 && r.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

// fakeEligibilityStore answers registration checks from a fixed set
type fakeEligibilityStore struct {
	approved map[resultKey]bool
}

func newFakeEligibilityStore() *fakeEligibilityStore {
	return &fakeEligibilityStore{approved: make(map[resultKey]bool)}
}

func (f *fakeEligibilityStore) approve(studentID, courseID, sessionID, semesterID int64) {
	f.approved[resultKey{studentID, courseID, sessionID, semesterID}] = true
}

func (f *fakeEligibilityStore) HasApproved(_ context.Context, studentID, courseID, sessionID, semesterID int64) (bool, error) {
	return f.approved[resultKey{studentID, courseID, sessionID, semesterID}], nil
}

func (f *fakeEligibilityStore) CountApproved(_ context.Context, courseID, sessionID, semesterID int64) (int, error) {
	count := 0
	for k := range f.approved {
		if k.courseID == courseID && k.sessionID == sessionID && k.semesterID == semesterID {
			count++
		}
	}
	return count, nil
}

// fakeAllocationStore answers lecturer-of-record checks from a fixed set
type fakeAllocationStore struct {
	allocations map[resultKey]bool // studentID slot reused for lecturerID
}

func newFakeAllocationStore() *fakeAllocationStore {
	return &fakeAllocationStore{allocations: make(map[resultKey]bool)}
}

func (f *fakeAllocationStore) allocate(lecturerID, courseID, sessionID, semesterID int64) {
	f.allocations[resultKey{lecturerID, courseID, sessionID, semesterID}] = true
}

func (f *fakeAllocationStore) IsLecturerForCourseTerm(_ context.Context, lecturerID, courseID, sessionID, semesterID int64) (bool, error) {
	return f.allocations[resultKey{lecturerID, courseID, sessionID, semesterID}], nil
}

type resultFixture struct {
	svc         *ResultService
	store       *fakeResultStore
	eligibility *fakeEligibilityStore
	allocations *fakeAllocationStore
}

func newResultFixture() *resultFixture {
	f := &resultFixture{
		store:       newFakeResultStore(),
		eligibility: newFakeEligibilityStore(),
		allocations: newFakeAllocationStore(),
	}
	f.svc = NewResultService(f.store, f.eligibility, f.allocations)
	return f
}

const (
	lecturerID = int64(10)
	courseID   = int64(1)
	sessionID  = int64(1)
	semesterID = int64(1)
)

func upsertReq(studentID int64, ca, exam float64) *dto.UpsertScoreRequest {
	return &dto.UpsertScoreRequest{
		StudentID:  studentID,
		CourseID:   courseID,
		SessionID:  sessionID,
		SemesterID: semesterID,
		CAScore:    ca,
		ExamScore:  exam,
	}
}

func TestUpsertScore(t *testing.T) {
	ctx := context.Background()

	t.Run("derives total, grade and grade point", func(t *testing.T) {
		f := newResultFixture()
		f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)
		f.eligibility.approve(1, courseID, sessionID, semesterID)

		result, err := f.svc.UpsertScore(ctx, lecturerID, upsertReq(1, 30, 42))
		require.NoError(t, err)

		assert.Equal(t, 72.0, result.TotalScore)
		assert.Equal(t, grading.GradeA, result.Grade)
		assert.Equal(t, 5.0, result.GradePoint)
		assert.Equal(t, models.ResultDraft, result.Status)
		assert.Equal(t, lecturerID, result.SubmittedBy)
	})

	t.Run("re-entry updates the same row", func(t *testing.T) {
		f := newResultFixture()
		f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)
		f.eligibility.approve(1, courseID, sessionID, semesterID)

		first, err := f.svc.UpsertScore(ctx, lecturerID, upsertReq(1, 20, 25))
		require.NoError(t, err)

		second, err := f.svc.UpsertScore(ctx, lecturerID, upsertReq(1, 30, 42))
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, grading.GradeA, second.Grade)
	})

	t.Run("rejects staff who is not the lecturer of record", func(t *testing.T) {
		f := newResultFixture()
		f.eligibility.approve(1, courseID, sessionID, semesterID)

		_, err := f.svc.UpsertScore(ctx, 99, upsertReq(1, 30, 42))
		assert.ErrorIs(t, err, apperrors.ErrNotLecturerOfRecord)
	})

	t.Run("rejects students without an approved registration", func(t *testing.T) {
		f := newResultFixture()
		f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)

		_, err := f.svc.UpsertScore(ctx, lecturerID, upsertReq(1, 30, 42))
		assert.ErrorIs(t, err, apperrors.ErrStudentNotRegistered)
	})

	t.Run("rejects out of range scores", func(t *testing.T) {
		f := newResultFixture()
		f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)
		f.eligibility.approve(1, courseID, sessionID, semesterID)

		_, err := f.svc.UpsertScore(ctx, lecturerID, upsertReq(1, 40.01, 10))
		assert.ErrorIs(t, err, apperrors.ErrScoreOutOfRange)

		_, err = f.svc.UpsertScore(ctx, lecturerID, upsertReq(1, 10, 60.5))
		assert.ErrorIs(t, err, apperrors.ErrScoreOutOfRange)
	})

	t.Run("verified result cannot be overwritten", func(t *testing.T) {
		f := newResultFixture()
		f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)
		f.eligibility.approve(1, courseID, sessionID, semesterID)

		result, err := f.svc.UpsertScore(ctx, lecturerID, upsertReq(1, 30, 42))
		require.NoError(t, err)

		f.store.results[result.ID].Status = models.ResultVerified

		_, err = f.svc.UpsertScore(ctx, lecturerID, upsertReq(1, 5, 5))
		assert.ErrorIs(t, err, apperrors.ErrResultVerified)
	})
}

func TestSubmitForVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("moves complete sheet to pending", func(t *testing.T) {
		f := newResultFixture()
		f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)
		for studentID := int64(1); studentID <= 3; studentID++ {
			f.eligibility.approve(studentID, courseID, sessionID, semesterID)
			_, err := f.svc.UpsertScore(ctx, lecturerID, upsertReq(studentID, 30, 40))
			require.NoError(t, err)
		}

		moved, err := f.svc.SubmitForVerification(ctx, lecturerID, courseID, sessionID, semesterID)
		require.NoError(t, err)
		assert.Equal(t, 3, moved)

		for _, r := range f.store.results {
			assert.Equal(t, models.ResultPending, r.Status)
		}
	})

	t.Run("incomplete sheet reports missing count", func(t *testing.T) {
		f := newResultFixture()
		f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)
		for studentID := int64(1); studentID <= 5; studentID++ {
			f.eligibility.approve(studentID, courseID, sessionID, semesterID)
		}
		for studentID := int64(1); studentID <= 2; studentID++ {
			_, err := f.svc.UpsertScore(ctx, lecturerID, upsertReq(studentID, 30, 40))
			require.NoError(t, err)
		}

		_, err := f.svc.SubmitForVerification(ctx, lecturerID, courseID, sessionID, semesterID)
		assert.ErrorIs(t, err, apperrors.ErrIncompleteSubmission)

		var customErr *apperrors.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 3, customErr.Details["missingCount"])
	})

	t.Run("rejects staff who is not the lecturer of record", func(t *testing.T) {
		f := newResultFixture()

		_, err := f.svc.SubmitForVerification(ctx, 99, courseID, sessionID, semesterID)
		assert.ErrorIs(t, err, apperrors.ErrNotLecturerOfRecord)
	})
}

func TestVerifyAndReject(t *testing.T) {
	ctx := context.Background()
	verifierID := int64(20)

	submitOne := func(t *testing.T, f *resultFixture, studentID int64) *models.Result {
		t.Helper()
		f.eligibility.approve(studentID, courseID, sessionID, semesterID)
		result, err := f.svc.UpsertScore(ctx, lecturerID, upsertReq(studentID, 30, 40))
		require.NoError(t, err)
		_, err = f.svc.SubmitForVerification(ctx, lecturerID, courseID, sessionID, semesterID)
		require.NoError(t, err)
		return result
	}

	t.Run("verify approves a pending result", func(t *testing.T) {
		f := newResultFixture()
		f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)
		result := submitOne(t, f, 1)

		verified, err := f.svc.VerifyResult(ctx, verifierID, result.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ResultVerified, verified.Status)
		require.NotNil(t, verified.VerifiedBy)
		assert.Equal(t, verifierID, *verified.VerifiedBy)
	})

	t.Run("verify refuses a draft result", func(t *testing.T) {
		f := newResultFixture()
		f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)
		f.eligibility.approve(1, courseID, sessionID, semesterID)
		result, err := f.svc.UpsertScore(ctx, lecturerID, upsertReq(1, 30, 40))
		require.NoError(t, err)

		_, err = f.svc.VerifyResult(ctx, verifierID, result.ID)
		assert.ErrorIs(t, err, apperrors.ErrResultNotPending)
	})

	t.Run("reject records the reason", func(t *testing.T) {
		f := newResultFixture()
		f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)
		result := submitOne(t, f, 1)

		rejected, err := f.svc.RejectResult(ctx, verifierID, result.ID, "CA scores look transposed")
		require.NoError(t, err)
		assert.Equal(t, models.ResultRejected, rejected.Status)
		assert.Contains(t, rejected.Remarks, "CA scores look transposed")
	})

	t.Run("re-entry after rejection resets to draft", func(t *testing.T) {
		f := newResultFixture()
		f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)
		result := submitOne(t, f, 1)

		_, err := f.svc.RejectResult(ctx, verifierID, result.ID, "CA scores look transposed")
		require.NoError(t, err)

		corrected, err := f.svc.UpsertScore(ctx, lecturerID, upsertReq(1, 25, 30))
		require.NoError(t, err)

		assert.Equal(t, result.ID, corrected.ID)
		assert.Equal(t, models.ResultDraft, corrected.Status)
		assert.Equal(t, 55.0, corrected.TotalScore)
		assert.Equal(t, grading.GradeC, corrected.Grade)
		assert.Equal(t, 3.0, corrected.GradePoint)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		f := newResultFixture()
		f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)
		result := submitOne(t, f, 1)

		_, err := f.svc.RejectResult(ctx, verifierID, result.ID, "   ")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestBulkVerify(t *testing.T) {
	ctx := context.Background()
	verifierID := int64(20)

	f := newResultFixture()
	f.allocations.allocate(lecturerID, courseID, sessionID, semesterID)

	var ids []int64
	for studentID := int64(1); studentID <= 3; studentID++ {
		f.eligibility.approve(studentID, courseID, sessionID, semesterID)
		result, err := f.svc.UpsertScore(ctx, lecturerID, upsertReq(studentID, 30, 40))
		require.NoError(t, err)
		ids = append(ids, result.ID)
	}
	_, err := f.svc.SubmitForVerification(ctx, lecturerID, courseID, sessionID, semesterID)
	require.NoError(t, err)

	// Already verified results and unknown IDs are skipped, not fatal.
	_, err = f.svc.VerifyResult(ctx, verifierID, ids[0])
	require.NoError(t, err)

	resp, err := f.svc.BulkVerify(ctx, verifierID, append(ids, 999))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.VerifiedCount)
	require.Len(t, resp.Skipped, 2)
	assert.Equal(t, ids[0], resp.Skipped[0].ResultID)
	assert.Equal(t, "result is not pending", resp.Skipped[0].Reason)
	assert.Equal(t, int64(999), resp.Skipped[1].ResultID)
	assert.Equal(t, "result not found", resp.Skipped[1].Reason)
}
