package services

import (
	"context"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/app/repositories"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
)

// TermService handles academic sessions and semesters
type TermService struct {
	termRepo *repositories.TermRepository
}

// NewTermService creates a new term service instance
func NewTermService(termRepo *repositories.TermRepository) *TermService {
	return &TermService{
		termRepo: termRepo,
	}
}

// CreateSession creates a new academic session
func (s *TermService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*models.Session, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.ErrInvalidTermDates
	}

	session := &models.Session{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if err := s.termRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// GetSession retrieves a session by ID
func (s *TermService) GetSession(ctx context.Context, id int64) (*models.Session, error) {
	return s.termRepo.GetSessionByID(ctx, id)
}

// ListSessions retrieves all sessions
func (s *TermService) ListSessions(ctx context.Context) ([]*models.Session, error) {
	return s.termRepo.ListSessions(ctx)
}

// ActivateSession makes a session the active one
func (s *TermService) ActivateSession(ctx context.Context, id int64) error {
	return s.termRepo.ActivateSession(ctx, id)
}

// CreateSemester creates a semester within a session
func (s *TermService) CreateSemester(ctx context.Context, req *dto.CreateSemesterRequest) (*models.Semester, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.ErrInvalidTermDates
	}
	if req.RegistrationStart != nil && req.RegistrationEnd != nil &&
		!req.RegistrationEnd.After(*req.RegistrationStart) {
		return nil, apperrors.ErrInvalidTermDates
	}

	// The session must exist before the insert so a missing one maps to a
	// clean not-found instead of a raw FK violation.
	if _, err := s.termRepo.GetSessionByID(ctx, req.SessionID); err != nil {
		return nil, err
	}

	semester := &models.Semester{
		SessionID:         req.SessionID,
		Name:              models.SemesterName(req.Name),
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
	}

	if err := s.termRepo.CreateSemester(ctx, semester); err != nil {
		return nil, err
	}

	return semester, nil
}

// GetSemester retrieves a semester by ID
func (s *TermService) GetSemester(ctx context.Context, id int64) (*models.Semester, error) {
	return s.termRepo.GetSemesterByID(ctx, id)
}

// ListSemesters retrieves a session's semesters
func (s *TermService) ListSemesters(ctx context.Context, sessionID int64) ([]*models.Semester, error) {
	if _, err := s.termRepo.GetSessionByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.termRepo.ListSemestersBySession(ctx, sessionID)
}

// ActivateSemester makes a semester (and its session) the active term
func (s *TermService) ActivateSemester(ctx context.Context, id int64) error {
	return s.termRepo.ActivateSemester(ctx, id)
}

// GetActiveTerm retrieves the currently active session and semester
func (s *TermService) GetActiveTerm(ctx context.Context) (*dto.ActiveTermResponse, error) {
	session, semester, err := s.termRepo.GetActiveTerm(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ActiveTermResponse{
		SessionID:    session.ID,
		SessionName:  session.Name,
		SemesterID:   semester.ID,
		SemesterName: string(semester.Name),
	}, nil
}
