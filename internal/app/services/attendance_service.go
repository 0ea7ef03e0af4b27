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

// AttendanceStore is the persistence surface the attendance service needs.
// *repositories.AttendanceRepository satisfies it.
type AttendanceStore interface {
	CreateSession(ctx context.Context, session *models.AttendanceSession) error
	GetSessionByID(ctx context.Context, id int64) (*models.AttendanceSession, error)
	ListSessionsByAllocation(ctx context.Context, allocationID int64) ([]*models.AttendanceSession, error)
	UpsertMarks(ctx context.Context, attendanceID int64, records []*models.AttendanceRecord) error
	ListRecords(ctx context.Context, attendanceID int64) ([]*models.AttendanceRecord, error)
	Stats(ctx context.Context, attendanceID int64) (models.AttendanceStats, error)
}

// AllocationDirectory resolves course allocations by ID.
// *repositories.AllocationRepository satisfies it.
type AllocationDirectory interface {
	GetByID(ctx context.Context, id int64) (*models.CourseAllocation, error)
}

// AttendanceService handles class attendance sessions and student marks
type AttendanceService struct {
	store       AttendanceStore
	allocations AllocationDirectory
	eligibility EligibilityStore
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(store AttendanceStore, allocations AllocationDirectory, eligibility EligibilityStore) *AttendanceService {
	return &AttendanceService{
		store:       store,
		allocations: allocations,
		eligibility: eligibility,
	}
}

// OpenSession opens an attendance session for one held class. Only the
// lecturer of record may open a session, and at most one session exists per
// allocation and date.
func (s *AttendanceService) OpenSession(ctx context.Context, lecturerID int64, req *dto.CreateAttendanceSessionRequest) (*models.AttendanceSession, error) {
	allocation, err := s.allocations.GetByID(ctx, req.AllocationID)
	if err != nil {
		return nil, err
	}
	if allocation.LecturerID != lecturerID {
		return nil, apperrors.ErrNotLecturerOfRecord
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date", "must be a valid date in YYYY-MM-DD format")
	}

	session := &models.AttendanceSession{
		AllocationID: req.AllocationID,
		Date:         date,
		TopicCovered: req.TopicCovered,
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("allocationID", session.AllocationID).
		Str("date", req.Date).
		Msg("Opened attendance session")
	return session, nil
}

// Mark records or corrects student marks for a session. Only the lecturer
// of record may mark, and only students with an approved registration for
// the allocation's course-term can be marked. Re-marking a student replaces
// their previous mark.
func (s *AttendanceService) Mark(ctx context.Context, lecturerID, attendanceID int64, req *dto.MarkAttendanceRequest) ([]*models.AttendanceRecord, error) {
	session, err := s.store.GetSessionByID(ctx, attendanceID)
	if err != nil {
		return nil, err
	}

	allocation := session.Allocation
	if allocation.LecturerID != lecturerID {
		return nil, apperrors.ErrNotLecturerOfRecord
	}

	records := make([]*models.AttendanceRecord, 0, len(req.Records))
	for _, mark := range req.Records {
		registered, err := s.eligibility.HasApproved(ctx, mark.StudentID, allocation.CourseID, allocation.SessionID, allocation.SemesterID)
		if err != nil {
			return nil, fmt.Errorf("error checking registration: %w", err)
		}
		if !registered {
			return nil, fmt.Errorf("%w: student %d", apperrors.ErrStudentNotRegistered, mark.StudentID)
		}

		records = append(records, &models.AttendanceRecord{
			StudentID: mark.StudentID,
			Status:    models.AttendanceStatus(mark.Status),
		})
	}

	if err := s.store.UpsertMarks(ctx, attendanceID, records); err != nil {
		return nil, err
	}

	return records, nil
}

// SessionDetail retrieves a session with its marks and aggregate stats
func (s *AttendanceService) SessionDetail(ctx context.Context, attendanceID int64) (*dto.AttendanceSessionDetail, error) {
	session, err := s.store.GetSessionByID(ctx, attendanceID)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListRecords(ctx, attendanceID)
	if err != nil {
		return nil, err
	}
	session.Records = records

	stats, err := s.store.Stats(ctx, attendanceID)
	if err != nil {
		return nil, err
	}

	return &dto.AttendanceSessionDetail{
		Session: session,
		Stats:   stats,
	}, nil
}

// ListSessions retrieves the attendance sessions of an allocation, most
// recent first
func (s *AttendanceService) ListSessions(ctx context.Context, allocationID int64) ([]*models.AttendanceSession, error) {
	if _, err := s.allocations.GetByID(ctx, allocationID); err != nil {
		return nil, err
	}
	return s.store.ListSessionsByAllocation(ctx, allocationID)
}
