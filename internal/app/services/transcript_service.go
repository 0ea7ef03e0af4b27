package services

import (
	"context"
	"fmt"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/pkg/grading"
)

// VerifiedResultStore supplies the verified results aggregation reads.
// *repositories.ResultRepository satisfies it. Results must come back
// ordered by term start date, then course code.
type VerifiedResultStore interface {
	ListVerifiedByStudent(ctx context.Context, studentID int64, sessionID, semesterID *int64) ([]*models.Result, error)
}

// StudentStore resolves student records. *repositories.StudentRepository
// satisfies it.
type StudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// TranscriptService computes GPA, CGPA and full transcripts from verified
// results. Draft, pending and rejected results never enter any average.
type TranscriptService struct {
	resultStore  VerifiedResultStore
	studentStore StudentStore
}

// NewTranscriptService creates a new transcript service instance
func NewTranscriptService(resultStore VerifiedResultStore, studentStore StudentStore) *TranscriptService {
	return &TranscriptService{
		resultStore:  resultStore,
		studentStore: studentStore,
	}
}

func toCourseLines(results []*models.Result) []grading.CourseLine {
	lines := make([]grading.CourseLine, 0, len(results))
	for _, r := range results {
		lines = append(lines, grading.CourseLine{
			GradePoint:  r.GradePoint,
			CreditUnits: r.Course.CreditUnits,
		})
	}
	return lines
}

func sumUnits(results []*models.Result) int {
	units := 0
	for _, r := range results {
		units += r.Course.CreditUnits
	}
	return units
}

// ComputeGPA computes the grade point average over the student's verified
// results in one term. A student with no verified results has a GPA of 0.
func (s *TranscriptService) ComputeGPA(ctx context.Context, studentID, sessionID, semesterID int64) (*dto.GPAResponse, error) {
	if _, err := s.studentStore.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	results, err := s.resultStore.ListVerifiedByStudent(ctx, studentID, &sessionID, &semesterID)
	if err != nil {
		return nil, fmt.Errorf("error loading verified results: %w", err)
	}

	return &dto.GPAResponse{
		StudentID:  studentID,
		SessionID:  &sessionID,
		SemesterID: &semesterID,
		GPA:        grading.GPA(toCourseLines(results)),
		TotalUnits: sumUnits(results),
	}, nil
}

// ComputeCGPA computes the cumulative grade point average over all of the
// student's verified results.
func (s *TranscriptService) ComputeCGPA(ctx context.Context, studentID int64) (*dto.GPAResponse, error) {
	if _, err := s.studentStore.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	results, err := s.resultStore.ListVerifiedByStudent(ctx, studentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("error loading verified results: %w", err)
	}

	return &dto.GPAResponse{
		StudentID:  studentID,
		GPA:        grading.GPA(toCourseLines(results)),
		TotalUnits: sumUnits(results),
	}, nil
}

// Transcript builds the student's full transcript: verified results grouped
// by term in chronological order, with a GPA per term and the CGPA running
// up to and including each term. The degree class is read off the final
// CGPA.
func (s *TranscriptService) Transcript(ctx context.Context, studentID int64) (*dto.TranscriptResponse, error) {
	student, err := s.studentStore.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	results, err := s.resultStore.ListVerifiedByStudent(ctx, studentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("error loading verified results: %w", err)
	}

	resp := &dto.TranscriptResponse{
		StudentID:    student.ID,
		MatricNumber: student.MatricNumber,
		Terms:        []dto.TranscriptTerm{},
	}
	if student.User != nil {
		resp.StudentName = student.User.FullName()
	}

	// Results arrive ordered by term, so consecutive runs of the same
	// (session, semester) form one transcript term.
	var cumulative []grading.CourseLine
	var termResults []*models.Result

	flush := func() {
		if len(termResults) == 0 {
			return
		}
		lines := make([]dto.TranscriptLine, 0, len(termResults))
		for _, r := range termResults {
			lines = append(lines, dto.TranscriptLine{
				CourseCode:  r.Course.Code,
				CourseTitle: r.Course.Title,
				CreditUnits: r.Course.CreditUnits,
				TotalScore:  r.TotalScore,
				Grade:       string(r.Grade),
				GradePoint:  r.GradePoint,
			})
		}
		cumulative = append(cumulative, toCourseLines(termResults)...)
		resp.Terms = append(resp.Terms, dto.TranscriptTerm{
			SessionName:  termResults[0].Session.Name,
			SemesterName: string(termResults[0].Semester.Name),
			Lines:        lines,
			TermUnits:    sumUnits(termResults),
			GPA:          grading.GPA(toCourseLines(termResults)),
			CGPA:         grading.GPA(cumulative),
		})
		termResults = termResults[:0]
	}

	for _, r := range results {
		if len(termResults) > 0 {
			last := termResults[len(termResults)-1]
			if last.SessionID != r.SessionID || last.SemesterID != r.SemesterID {
				flush()
			}
		}
		termResults = append(termResults, r)
	}
	flush()

	resp.TotalUnits = sumUnits(results)
	resp.FinalCGPA = grading.GPA(toCourseLines(results))
	resp.DegreeClass = grading.DegreeClass(resp.FinalCGPA)

	return resp, nil
}
