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

// fakeRegistrationStore is an in-memory RegistrationStore
type fakeRegistrationStore struct {
	nextID        int64
	registrations map[int64]*models.CourseRegistration
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{nextID: 1, registrations: make(map[int64]*models.CourseRegistration)}
}

func (f *fakeRegistrationStore) CreateBatch(_ context.Context, studentID int64, courseIDs []int64, sessionID, semesterID int64) ([]*models.CourseRegistration, error) {
	var out []*models.CourseRegistration
	for _, courseID := range courseIDs {
		for _, existing := range f.registrations {
			if existing.StudentID == studentID && existing.CourseID == courseID &&
				existing.SessionID == sessionID && existing.SemesterID == semesterID {
				return nil, apperrors.ErrAlreadyRegistered
			}
		}
		reg := &models.CourseRegistration{
			ID:         f.nextID,
			StudentID:  studentID,
			CourseID:   courseID,
			SessionID:  sessionID,
			SemesterID: semesterID,
			Status:     models.RegistrationPending,
		}
		f.nextID++
		f.registrations[reg.ID] = reg
		out = append(out, reg)
	}
	return out, nil
}

func (f *fakeRegistrationStore) GetByID(_ context.Context, id int64) (*models.CourseRegistration, error) {
	reg, ok := f.registrations[id]
	if !ok {
		return nil, apperrors.ErrRegistrationNotFound
	}
	return reg, nil
}

func (f *fakeRegistrationStore) UpdateStatus(_ context.Context, id int64, status models.RegistrationStatus) error {
	reg, ok := f.registrations[id]
	if !ok {
		return apperrors.ErrRegistrationNotFound
	}
	if reg.Status != models.RegistrationPending {
		return apperrors.ErrRegistrationDecided
	}
	reg.Status = status
	return nil
}

func (f *fakeRegistrationStore) ApprovedStudents(_ context.Context, courseID, sessionID, semesterID int64) ([]*models.CourseRegistration, error) {
	var out []*models.CourseRegistration
	for _, reg := range f.registrations {
		if reg.CourseID == courseID && reg.SessionID == sessionID && reg.SemesterID == semesterID &&
			reg.Status == models.RegistrationApproved {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (f *fakeRegistrationStore) ListByStudent(_ context.Context, studentID, sessionID, semesterID int64) ([]*models.CourseRegistration, error) {
	var out []*models.CourseRegistration
	for _, reg := range f.registrations {
		if reg.StudentID == studentID && reg.SessionID == sessionID && reg.SemesterID == semesterID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (f *fakeRegistrationStore) ListPending(_ context.Context, sessionID, semesterID int64, _ uint64, _ int) ([]*models.CourseRegistration, int64, error) {
	var out []*models.CourseRegistration
	for _, reg := range f.registrations {
		if reg.SessionID == sessionID && reg.SemesterID == semesterID && reg.Status == models.RegistrationPending {
			out = append(out, reg)
		}
	}
	return out, int64(len(out)), nil
}

// fakeSemesterStore resolves semesters from a fixed set
type fakeSemesterStore struct {
	semesters map[int64]*models.Semester
}

func (f *fakeSemesterStore) GetSemesterByID(_ context.Context, id int64) (*models.Semester, error) {
	sem, ok := f.semesters[id]
	if !ok {
		return nil, apperrors.ErrSemesterNotFound
	}
	return sem, nil
}

// fakeCourseStore resolves courses from a fixed set
type fakeCourseStore struct {
	courses map[int64]*models.Course
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

type registrationFixture struct {
	svc   *RegistrationService
	store *fakeRegistrationStore
}

// newRegistrationFixture builds a service with one open first semester
// (ID 1, session 1, window 2024-01-01 to 2024-02-01) and two courses:
// CSC101 offered first semester, CSC102 offered second.
func newRegistrationFixture(now time.Time) *registrationFixture {
	regStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	regEnd := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	semesters := &fakeSemesterStore{semesters: map[int64]*models.Semester{
		1: {
			ID:                1,
			SessionID:         1,
			Name:              models.SemesterFirst,
			RegistrationStart: &regStart,
			RegistrationEnd:   &regEnd,
		},
	}}
	courses := &fakeCourseStore{courses: map[int64]*models.Course{
		1: {ID: 1, Code: "CSC101", CreditUnits: 3, SemesterOffered: models.OfferedFirst},
		2: {ID: 2, Code: "CSC102", CreditUnits: 3, SemesterOffered: models.OfferedSecond},
		3: {ID: 3, Code: "GST101", CreditUnits: 2, SemesterOffered: models.OfferedBoth},
	}}

	f := &registrationFixture{store: newFakeRegistrationStore()}
	f.svc = NewRegistrationService(f.store, semesters, courses)
	f.svc.now = func() time.Time { return now }
	return f
}

func openWindow() time.Time {
	return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
}

func TestRegisterCourses(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending registrations inside the window", func(t *testing.T) {
		f := newRegistrationFixture(openWindow())

		regs, err := f.svc.RegisterCourses(ctx, 1, &dto.RegisterCoursesRequest{
			CourseIDs: []int64{1, 3}, SessionID: 1, SemesterID: 1,
		})
		require.NoError(t, err)
		require.Len(t, regs, 2)
		for _, reg := range regs {
			assert.Equal(t, models.RegistrationPending, reg.Status)
		}
	})

	t.Run("closed before the window opens", func(t *testing.T) {
		f := newRegistrationFixture(time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC))

		_, err := f.svc.RegisterCourses(ctx, 1, &dto.RegisterCoursesRequest{
			CourseIDs: []int64{1}, SessionID: 1, SemesterID: 1,
		})
		assert.ErrorIs(t, err, apperrors.ErrRegistrationClosed)
	})

	t.Run("closed after the window ends", func(t *testing.T) {
		f := newRegistrationFixture(time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC))

		_, err := f.svc.RegisterCourses(ctx, 1, &dto.RegisterCoursesRequest{
			CourseIDs: []int64{1}, SessionID: 1, SemesterID: 1,
		})
		assert.ErrorIs(t, err, apperrors.ErrRegistrationClosed)
	})

	t.Run("course not offered in the semester", func(t *testing.T) {
		f := newRegistrationFixture(openWindow())

		_, err := f.svc.RegisterCourses(ctx, 1, &dto.RegisterCoursesRequest{
			CourseIDs: []int64{2}, SessionID: 1, SemesterID: 1,
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("semester must belong to the session", func(t *testing.T) {
		f := newRegistrationFixture(openWindow())

		_, err := f.svc.RegisterCourses(ctx, 1, &dto.RegisterCoursesRequest{
			CourseIDs: []int64{1}, SessionID: 7, SemesterID: 1,
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		f := newRegistrationFixture(openWindow())

		_, err := f.svc.RegisterCourses(ctx, 1, &dto.RegisterCoursesRequest{
			CourseIDs: []int64{1}, SessionID: 1, SemesterID: 1,
		})
		require.NoError(t, err)

		_, err = f.svc.RegisterCourses(ctx, 1, &dto.RegisterCoursesRequest{
			CourseIDs: []int64{1}, SessionID: 1, SemesterID: 1,
		})
		assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
	})
}

func TestApproveAndRejectRegistration(t *testing.T) {
	ctx := context.Background()
	f := newRegistrationFixture(openWindow())

	regs, err := f.svc.RegisterCourses(ctx, 1, &dto.RegisterCoursesRequest{
		CourseIDs: []int64{1, 3}, SessionID: 1, SemesterID: 1,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.ApproveRegistration(ctx, regs[0].ID))
	assert.Equal(t, models.RegistrationApproved, f.store.registrations[regs[0].ID].Status)

	require.NoError(t, f.svc.RejectRegistration(ctx, regs[1].ID))
	assert.Equal(t, models.RegistrationRejected, f.store.registrations[regs[1].ID].Status)

	t.Run("decided registrations stay decided", func(t *testing.T) {
		err := f.svc.RejectRegistration(ctx, regs[0].ID)
		assert.ErrorIs(t, err, apperrors.ErrRegistrationDecided)
	})

	t.Run("unknown registration", func(t *testing.T) {
		err := f.svc.ApproveRegistration(ctx, 999)
		assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)
	})
}

func TestGetRoster(t *testing.T) {
	ctx := context.Background()
	f := newRegistrationFixture(openWindow())

	regs, err := f.svc.RegisterCourses(ctx, 1, &dto.RegisterCoursesRequest{
		CourseIDs: []int64{1}, SessionID: 1, SemesterID: 1,
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.ApproveRegistration(ctx, regs[0].ID))

	// A second student left pending must not appear on the roster.
	_, err = f.svc.RegisterCourses(ctx, 2, &dto.RegisterCoursesRequest{
		CourseIDs: []int64{1}, SessionID: 1, SemesterID: 1,
	})
	require.NoError(t, err)

	roster, err := f.svc.GetRoster(ctx, 1, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), roster.CourseID)
	require.Len(t, roster.Students, 1)
	assert.Equal(t, int64(1), roster.Students[0].StudentID)

	t.Run("unknown course", func(t *testing.T) {
		_, err := f.svc.GetRoster(ctx, 999, 1, 1)
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})
}
