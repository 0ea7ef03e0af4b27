package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
	"github.com/eokonkwo/campuscore/internal/pkg/grading"
)

// fakeVerifiedResultStore returns a pre-ordered list of verified results,
// optionally narrowed to one term.
type fakeVerifiedResultStore struct {
	results []*models.Result
}

func (f *fakeVerifiedResultStore) ListVerifiedByStudent(_ context.Context, studentID int64, sessionID, semesterID *int64) ([]*models.Result, error) {
	var out []*models.Result
	for _, r := range f.results {
		if r.StudentID != studentID {
			continue
		}
		if sessionID != nil && r.SessionID != *sessionID {
			continue
		}
		if semesterID != nil && r.SemesterID != *semesterID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// fakeStudentStore resolves students from a fixed set
type fakeStudentStore struct {
	students map[int64]*models.Student
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

// verifiedResult builds one verified result with enough relations populated
// for transcript assembly.
func verifiedResult(studentID, sessionID, semesterID int64, sessionName string, semesterName models.SemesterName,
	courseCode string, units int, total float64) *models.Result {
	grade, point := grading.Classify(total)
	return &models.Result{
		StudentID:  studentID,
		SessionID:  sessionID,
		SemesterID: semesterID,
		TotalScore: total,
		Grade:      grade,
		GradePoint: point,
		Status:     models.ResultVerified,
		Course:     &models.Course{Code: courseCode, Title: courseCode, CreditUnits: units},
		Session:    &models.Session{ID: sessionID, Name: sessionName},
		Semester:   &models.Semester{ID: semesterID, SessionID: sessionID, Name: semesterName},
	}
}

func newTranscriptFixture(results ...*models.Result) *TranscriptService {
	studentStore := &fakeStudentStore{students: map[int64]*models.Student{
		1: {
			ID:           1,
			MatricNumber: "COE/2023/CSC/0001",
			User:         &models.User{FirstName: "Ada", LastName: "Obi"},
		},
	}}
	return NewTranscriptService(&fakeVerifiedResultStore{results: results}, studentStore)
}

func TestComputeGPA(t *testing.T) {
	ctx := context.Background()

	svc := newTranscriptFixture(
		// 2023/2024 first semester: A in 3 units, C in 1 unit -> 4.5
		verifiedResult(1, 1, 1, "2023/2024", models.SemesterFirst, "CSC101", 3, 75),
		verifiedResult(1, 1, 1, "2023/2024", models.SemesterFirst, "MTH101", 1, 55),
		// Another term, must not leak into the filtered GPA
		verifiedResult(1, 1, 2, "2023/2024", models.SemesterSecond, "CSC102", 2, 40),
	)

	resp, err := svc.ComputeGPA(ctx, 1, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 4.5, resp.GPA)
	assert.Equal(t, 4, resp.TotalUnits)

	t.Run("no verified results yields zero", func(t *testing.T) {
		resp, err := svc.ComputeGPA(ctx, 1, 9, 9)
		require.NoError(t, err)
		assert.Equal(t, 0.0, resp.GPA)
		assert.Equal(t, 0, resp.TotalUnits)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.ComputeGPA(ctx, 42, 1, 1)
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})
}

func TestComputeCGPA(t *testing.T) {
	ctx := context.Background()

	svc := newTranscriptFixture(
		verifiedResult(1, 1, 1, "2023/2024", models.SemesterFirst, "CSC101", 3, 75), // 5.0
		verifiedResult(1, 1, 2, "2023/2024", models.SemesterSecond, "CSC102", 3, 65), // 4.0
	)

	resp, err := svc.ComputeCGPA(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 4.5, resp.GPA)
	assert.Equal(t, 6, resp.TotalUnits)
	assert.Nil(t, resp.SessionID)
	assert.Nil(t, resp.SemesterID)
}

func TestTranscript(t *testing.T) {
	ctx := context.Background()

	svc := newTranscriptFixture(
		// First term: GPA (5*3 + 3*3)/6 = 4.0
		verifiedResult(1, 1, 1, "2023/2024", models.SemesterFirst, "CSC101", 3, 80),
		verifiedResult(1, 1, 1, "2023/2024", models.SemesterFirst, "MTH101", 3, 52),
		// Second term: GPA 2.0; running CGPA (5*3 + 3*3 + 2*3)/9 = 3.33
		verifiedResult(1, 1, 2, "2023/2024", models.SemesterSecond, "CSC102", 3, 47),
	)

	resp, err := svc.Transcript(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "COE/2023/CSC/0001", resp.MatricNumber)
	assert.Equal(t, "Ada Obi", resp.StudentName)
	require.Len(t, resp.Terms, 2)

	first := resp.Terms[0]
	assert.Equal(t, "2023/2024", first.SessionName)
	assert.Equal(t, "first", first.SemesterName)
	require.Len(t, first.Lines, 2)
	assert.Equal(t, 6, first.TermUnits)
	assert.Equal(t, 4.0, first.GPA)
	assert.Equal(t, 4.0, first.CGPA)

	second := resp.Terms[1]
	assert.Equal(t, "second", second.SemesterName)
	assert.Equal(t, 2.0, second.GPA)
	assert.Equal(t, 3.33, second.CGPA)

	assert.Equal(t, 9, resp.TotalUnits)
	assert.Equal(t, 3.33, resp.FinalCGPA)
	assert.Equal(t, "Second Class Lower", resp.DegreeClass)
}

func TestTranscriptEmpty(t *testing.T) {
	svc := newTranscriptFixture()

	resp, err := svc.Transcript(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, resp.Terms)
	assert.Equal(t, 0.0, resp.FinalCGPA)
	assert.Equal(t, "Fail", resp.DegreeClass)
}
