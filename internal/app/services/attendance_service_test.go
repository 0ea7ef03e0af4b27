package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
)

// attendanceKey identifies the one session allowed per allocation and date
type attendanceKey struct {
	allocationID int64
	date         string
}

// fakeAttendanceStore is an in-memory AttendanceStore. GetSessionByID
// populates the allocation relation from the directory, like the real
// repository's join does.
type fakeAttendanceStore struct {
	nextID      int64
	sessions    map[int64]*models.AttendanceSession
	byKey       map[attendanceKey]int64
	records     map[int64]map[int64]*models.AttendanceRecord // attendanceID -> studentID -> record
	allocations *fakeAllocationDirectory
}

func newFakeAttendanceStore(allocations *fakeAllocationDirectory) *fakeAttendanceStore {
	return &fakeAttendanceStore{
		nextID:      1,
		sessions:    make(map[int64]*models.AttendanceSession),
		byKey:       make(map[attendanceKey]int64),
		records:     make(map[int64]map[int64]*models.AttendanceRecord),
		allocations: allocations,
	}
}

func (f *fakeAttendanceStore) CreateSession(_ context.Context, session *models.AttendanceSession) error {
	key := attendanceKey{session.AllocationID, session.Date.Format("2006-01-02")}
	if _, ok := f.byKey[key]; ok {
		return apperrors.ErrAttendanceExists
	}
	session.ID = f.nextID
	f.nextID++
	f.byKey[key] = session.ID
	cp := *session
	f.sessions[session.ID] = &cp
	return nil
}

func (f *fakeAttendanceStore) GetSessionByID(_ context.Context, id int64) (*models.AttendanceSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.ErrAttendanceNotFound
	}
	cp := *s
	cp.Allocation = f.allocations.allocations[s.AllocationID]
	return &cp, nil
}

func (f *fakeAttendanceStore) ListSessionsByAllocation(_ context.Context, allocationID int64) ([]*models.AttendanceSession, error) {
	var out []*models.AttendanceSession
	for _, s := range f.sessions {
		if s.AllocationID == allocationID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) UpsertMarks(_ context.Context, attendanceID int64, records []*models.AttendanceRecord) error {
	byStudent, ok := f.records[attendanceID]
	if !ok {
		byStudent = make(map[int64]*models.AttendanceRecord)
		f.records[attendanceID] = byStudent
	}
	for _, record := range records {
		record.AttendanceID = attendanceID
		if existing, ok := byStudent[record.StudentID]; ok {
			record.ID = existing.ID
		} else {
			record.ID = f.nextID
			f.nextID++
		}
		cp := *record
		byStudent[record.StudentID] = &cp
	}
	return nil
}

func (f *fakeAttendanceStore) ListRecords(_ context.Context, attendanceID int64) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, r := range f.records[attendanceID] {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeAttendanceStore) Stats(_ context.Context, attendanceID int64) (models.AttendanceStats, error) {
	var present, absent, late int
	for _, r := range f.records[attendanceID] {
		switch r.Status {
		case models.AttendancePresent:
			present++
		case models.AttendanceAbsent:
			absent++
		case models.AttendanceLate:
			late++
		}
	}
	return models.NewAttendanceStats(present, absent, late), nil
}

// fakeAllocationDirectory serves allocations from a fixed set
type fakeAllocationDirectory struct {
	allocations map[int64]*models.CourseAllocation
}

func newFakeAllocationDirectory() *fakeAllocationDirectory {
	return &fakeAllocationDirectory{allocations: make(map[int64]*models.CourseAllocation)}
}

func (f *fakeAllocationDirectory) add(allocation *models.CourseAllocation) {
	f.allocations[allocation.ID] = allocation
}

func (f *fakeAllocationDirectory) GetByID(_ context.Context, id int64) (*models.CourseAllocation, error) {
	a, ok := f.allocations[id]
	if !ok {
		return nil, apperrors.ErrAllocationNotFound
	}
	return a, nil
}

type attendanceFixture struct {
	svc         *AttendanceService
	store       *fakeAttendanceStore
	allocations *fakeAllocationDirectory
	eligibility *fakeEligibilityStore
}

const allocationID = int64(7)

func newAttendanceFixture() *attendanceFixture {
	f := &attendanceFixture{
		allocations: newFakeAllocationDirectory(),
		eligibility: newFakeEligibilityStore(),
	}
	f.store = newFakeAttendanceStore(f.allocations)
	f.allocations.add(&models.CourseAllocation{
		ID:         allocationID,
		CourseID:   courseID,
		LecturerID: lecturerID,
		SessionID:  sessionID,
		SemesterID: semesterID,
	})
	f.svc = NewAttendanceService(f.store, f.allocations, f.eligibility)
	return f
}

func sessionReq(date string) *dto.CreateAttendanceSessionRequest {
	return &dto.CreateAttendanceSessionRequest{
		AllocationID: allocationID,
		Date:         date,
		TopicCovered: "Binary search trees",
	}
}

func TestOpenSession(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a session for the lecturer of record", func(t *testing.T) {
		f := newAttendanceFixture()

		session, err := f.svc.OpenSession(ctx, lecturerID, sessionReq("2026-03-02"))
		require.NoError(t, err)

		assert.Equal(t, allocationID, session.AllocationID)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), session.Date)
		assert.Equal(t, "Binary search trees", session.TopicCovered)
	})

	t.Run("rejects staff who is not the lecturer of record", func(t *testing.T) {
		f := newAttendanceFixture()

		_, err := f.svc.OpenSession(ctx, 99, sessionReq("2026-03-02"))
		assert.ErrorIs(t, err, apperrors.ErrNotLecturerOfRecord)
	})

	t.Run("one session per allocation and date", func(t *testing.T) {
		f := newAttendanceFixture()

		_, err := f.svc.OpenSession(ctx, lecturerID, sessionReq("2026-03-02"))
		require.NoError(t, err)

		_, err = f.svc.OpenSession(ctx, lecturerID, sessionReq("2026-03-02"))
		assert.ErrorIs(t, err, apperrors.ErrAttendanceExists)
	})

	t.Run("unknown allocation", func(t *testing.T) {
		f := newAttendanceFixture()
		req := sessionReq("2026-03-02")
		req.AllocationID = 999

		_, err := f.svc.OpenSession(ctx, lecturerID, req)
		assert.ErrorIs(t, err, apperrors.ErrAllocationNotFound)
	})
}

func TestMarkAttendance(t *testing.T) {
	ctx := context.Background()

	openSession := func(t *testing.T, f *attendanceFixture) *models.AttendanceSession {
		t.Helper()
		session, err := f.svc.OpenSession(ctx, lecturerID, sessionReq("2026-03-02"))
		require.NoError(t, err)
		return session
	}

	t.Run("marks registered students", func(t *testing.T) {
		f := newAttendanceFixture()
		session := openSession(t, f)
		f.eligibility.approve(1, courseID, sessionID, semesterID)
		f.eligibility.approve(2, courseID, sessionID, semesterID)

		records, err := f.svc.Mark(ctx, lecturerID, session.ID, &dto.MarkAttendanceRequest{
			Records: []dto.AttendanceMark{
				{StudentID: 1, Status: "present"},
				{StudentID: 2, Status: "late"},
			},
		})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, models.AttendancePresent, records[0].Status)
		assert.Equal(t, models.AttendanceLate, records[1].Status)
	})

	t.Run("re-marking replaces the previous mark", func(t *testing.T) {
		f := newAttendanceFixture()
		session := openSession(t, f)
		f.eligibility.approve(1, courseID, sessionID, semesterID)

		_, err := f.svc.Mark(ctx, lecturerID, session.ID, &dto.MarkAttendanceRequest{
			Records: []dto.AttendanceMark{{StudentID: 1, Status: "absent"}},
		})
		require.NoError(t, err)

		records, err := f.svc.Mark(ctx, lecturerID, session.ID, &dto.MarkAttendanceRequest{
			Records: []dto.AttendanceMark{{StudentID: 1, Status: "present"}},
		})
		require.NoError(t, err)

		stored := f.store.records[session.ID][1]
		assert.Equal(t, records[0].ID, stored.ID)
		assert.Equal(t, models.AttendancePresent, stored.Status)
	})

	t.Run("rejects staff who is not the lecturer of record", func(t *testing.T) {
		f := newAttendanceFixture()
		session := openSession(t, f)
		f.eligibility.approve(1, courseID, sessionID, semesterID)

		_, err := f.svc.Mark(ctx, 99, session.ID, &dto.MarkAttendanceRequest{
			Records: []dto.AttendanceMark{{StudentID: 1, Status: "present"}},
		})
		assert.ErrorIs(t, err, apperrors.ErrNotLecturerOfRecord)
	})

	t.Run("rejects students without an approved registration", func(t *testing.T) {
		f := newAttendanceFixture()
		session := openSession(t, f)

		_, err := f.svc.Mark(ctx, lecturerID, session.ID, &dto.MarkAttendanceRequest{
			Records: []dto.AttendanceMark{{StudentID: 1, Status: "present"}},
		})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotRegistered)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newAttendanceFixture()

		_, err := f.svc.Mark(ctx, lecturerID, 999, &dto.MarkAttendanceRequest{
			Records: []dto.AttendanceMark{{StudentID: 1, Status: "present"}},
		})
		assert.ErrorIs(t, err, apperrors.ErrAttendanceNotFound)
	})
}

func TestSessionDetail(t *testing.T) {
	ctx := context.Background()

	f := newAttendanceFixture()
	session, err := f.svc.OpenSession(ctx, lecturerID, sessionReq("2026-03-02"))
	require.NoError(t, err)

	for studentID := int64(1); studentID <= 4; studentID++ {
		f.eligibility.approve(studentID, courseID, sessionID, semesterID)
	}
	_, err = f.svc.Mark(ctx, lecturerID, session.ID, &dto.MarkAttendanceRequest{
		Records: []dto.AttendanceMark{
			{StudentID: 1, Status: "present"},
			{StudentID: 2, Status: "present"},
			{StudentID: 3, Status: "absent"},
			{StudentID: 4, Status: "late"},
		},
	})
	require.NoError(t, err)

	detail, err := f.svc.SessionDetail(ctx, session.ID)
	require.NoError(t, err)

	assert.Len(t, detail.Session.Records, 4)
	assert.Equal(t, 4, detail.Stats.Total)
	assert.Equal(t, 2, detail.Stats.Present)
	assert.Equal(t, 1, detail.Stats.Absent)
	assert.Equal(t, 1, detail.Stats.Late)
	assert.Equal(t, 50.0, detail.Stats.Percentage)
}

func TestListSessions(t *testing.T) {
	ctx := context.Background()

	f := newAttendanceFixture()
	_, err := f.svc.OpenSession(ctx, lecturerID, sessionReq("2026-03-02"))
	require.NoError(t, err)
	_, err = f.svc.OpenSession(ctx, lecturerID, sessionReq("2026-03-09"))
	require.NoError(t, err)

	sessions, err := f.svc.ListSessions(ctx, allocationID)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	_, err = f.svc.ListSessions(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrAllocationNotFound)
}
