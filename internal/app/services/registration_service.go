package services

import (
	"context"
	"fmt"
	"time"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
	"github.com/eokonkwo/campuscore/internal/pkg/logger"
)

// RegistrationStore is the persistence surface the registration service
// needs. *repositories.RegistrationRepository satisfies it.
type RegistrationStore interface {
	CreateBatch(ctx context.Context, studentID int64, courseIDs []int64, sessionID, semesterID int64) ([]*models.CourseRegistration, error)
	GetByID(ctx context.Context, id int64) (*models.CourseRegistration, error)
	UpdateStatus(ctx context.Context, id int64, status models.RegistrationStatus) error
	ApprovedStudents(ctx context.Context, courseID, sessionID, semesterID int64) ([]*models.CourseRegistration, error)
	ListByStudent(ctx context.Context, studentID, sessionID, semesterID int64) ([]*models.CourseRegistration, error)
	ListPending(ctx context.Context, sessionID, semesterID int64, offset uint64, limit int) ([]*models.CourseRegistration, int64, error)
}

// SemesterStore resolves semesters for registration window checks.
// *repositories.TermRepository satisfies it.
type SemesterStore interface {
	GetSemesterByID(ctx context.Context, id int64) (*models.Semester, error)
}

// CourseStore resolves courses. *repositories.CourseRepository satisfies it.
type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// RegistrationService handles course registration and the approval queue
type RegistrationService struct {
	registrationStore RegistrationStore
	semesterStore     SemesterStore
	courseStore       CourseStore
	now               func() time.Time
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(registrationStore RegistrationStore, semesterStore SemesterStore, courseStore CourseStore) *RegistrationService {
	return &RegistrationService{
		registrationStore: registrationStore,
		semesterStore:     semesterStore,
		courseStore:       courseStore,
		now:               time.Now,
	}
}

// RegisterCourses registers a student for the given courses in a term. The
// semester's registration window must be open and each course must be
// offered in that semester. All registrations start pending until an
// officer approves them.
func (s *RegistrationService) RegisterCourses(ctx context.Context, studentID int64, req *dto.RegisterCoursesRequest) ([]*models.CourseRegistration, error) {
	if len(req.CourseIDs) == 0 {
		return nil, apperrors.NewValidationError("courseIds", "at least one course is required")
	}

	semester, err := s.semesterStore.GetSemesterByID(ctx, req.SemesterID)
	if err != nil {
		return nil, err
	}
	if semester.SessionID != req.SessionID {
		return nil, apperrors.NewBadRequestError("semester does not belong to the given session")
	}

	now := s.now()
	if semester.RegistrationStart != nil && now.Before(*semester.RegistrationStart) {
		return nil, apperrors.ErrRegistrationClosed
	}
	if semester.RegistrationEnd != nil && now.After(*semester.RegistrationEnd) {
		return nil, apperrors.ErrRegistrationClosed
	}

	for _, courseID := range req.CourseIDs {
		course, err := s.courseStore.GetByID(ctx, courseID)
		if err != nil {
			return nil, err
		}
		if course.SemesterOffered != models.OfferedBoth && string(course.SemesterOffered) != string(semester.Name) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("course %s is not offered in the %s semester", course.Code, semester.Name))
		}
	}

	registrations, err := s.registrationStore.CreateBatch(ctx, studentID, req.CourseIDs, req.SessionID, req.SemesterID)
	if err != nil {
		return nil, err
	}

	return registrations, nil
}

// ApproveRegistration approves a pending registration, making the student
// gradeable in the course-term.
func (s *RegistrationService) ApproveRegistration(ctx context.Context, id int64) error {
	if err := s.registrationStore.UpdateStatus(ctx, id, models.RegistrationApproved); err != nil {
		return err
	}

	logger.Info().Int64("registrationID", id).Msg("Approved registration")
	return nil
}

// RejectRegistration rejects a pending registration
func (s *RegistrationService) RejectRegistration(ctx context.Context, id int64) error {
	if err := s.registrationStore.UpdateStatus(ctx, id, models.RegistrationRejected); err != nil {
		return err
	}

	logger.Info().Int64("registrationID", id).Msg("Rejected registration")
	return nil
}

// GetRoster retrieves the approved students of a course-term as the score
// sheet roster, ordered by matric number.
func (s *RegistrationService) GetRoster(ctx context.Context, courseID, sessionID, semesterID int64) (*dto.RosterResponse, error) {
	if _, err := s.courseStore.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	registrations, err := s.registrationStore.ApprovedStudents(ctx, courseID, sessionID, semesterID)
	if err != nil {
		return nil, err
	}

	roster := &dto.RosterResponse{
		CourseID:   courseID,
		SessionID:  sessionID,
		SemesterID: semesterID,
		Students:   make([]dto.RosterEntry, 0, len(registrations)),
	}

	for _, reg := range registrations {
		entry := dto.RosterEntry{StudentID: reg.StudentID}
		if reg.Student != nil {
			entry.MatricNumber = reg.Student.MatricNumber
			if reg.Student.User != nil {
				entry.FullName = reg.Student.User.FullName()
			}
		}
		roster.Students = append(roster.Students, entry)
	}

	return roster, nil
}

// ListStudentRegistrations retrieves a student's registrations for a term
func (s *RegistrationService) ListStudentRegistrations(ctx context.Context, studentID, sessionID, semesterID int64) ([]*models.CourseRegistration, error) {
	return s.registrationStore.ListByStudent(ctx, studentID, sessionID, semesterID)
}

// ListPendingRegistrations retrieves the approval queue for a term
func (s *RegistrationService) ListPendingRegistrations(ctx context.Context, sessionID, semesterID int64, offset uint64, limit int) ([]*models.CourseRegistration, int64, error) {
	return s.registrationStore.ListPending(ctx, sessionID, semesterID, offset, limit)
}
