package services

import (
	"context"
	"strings"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/app/repositories"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
)

// CourseService handles the course catalog and lecturer allocations
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	deptRepo       *repositories.DepartmentRepository
	staffRepo      *repositories.StaffRepository
	termRepo       *repositories.TermRepository
	allocationRepo *repositories.AllocationRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	deptRepo *repositories.DepartmentRepository,
	staffRepo *repositories.StaffRepository,
	termRepo *repositories.TermRepository,
	allocationRepo *repositories.AllocationRepository,
) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		deptRepo:       deptRepo,
		staffRepo:      staffRepo,
		termRepo:       termRepo,
		allocationRepo: allocationRepo,
	}
}

// CreateCourse creates a new course in the catalog
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	if _, err := s.deptRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	course := &models.Course{
		DepartmentID:    req.DepartmentID,
		Code:            strings.ToUpper(strings.TrimSpace(req.Code)),
		Title:           req.Title,
		Description:     req.Description,
		CreditUnits:     req.CreditUnits,
		Level:           req.Level,
		SemesterOffered: models.SemesterOffered(req.SemesterOffered),
		IsElective:      req.IsElective,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// GetCourse retrieves a course by ID
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// ListCourses retrieves courses with optional filters
func (s *CourseService) ListCourses(ctx context.Context, departmentID int64, level int, semester models.SemesterName) ([]*models.Course, error) {
	return s.courseRepo.List(ctx, departmentID, level, semester)
}

// UpdateCourse updates a course's mutable fields. The code, department and
// level are fixed once the course exists.
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.CreditUnits = req.CreditUnits
	course.IsElective = req.IsElective

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// DeleteCourse removes a course that has no results or registrations
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}

// AllocateCourse assigns a lecturer to a course for one course-term
func (s *CourseService) AllocateCourse(ctx context.Context, req *dto.CreateAllocationRequest) (*models.CourseAllocation, error) {
	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	lecturer, err := s.staffRepo.GetByID(ctx, req.LecturerID)
	if err != nil {
		return nil, err
	}

	semester, err := s.termRepo.GetSemesterByID(ctx, req.SemesterID)
	if err != nil {
		return nil, err
	}
	if semester.SessionID != req.SessionID {
		return nil, apperrors.NewBadRequestError("semester does not belong to the given session")
	}

	allocation := &models.CourseAllocation{
		CourseID:   req.CourseID,
		LecturerID: req.LecturerID,
		SessionID:  req.SessionID,
		SemesterID: req.SemesterID,
	}

	if err := s.allocationRepo.Create(ctx, allocation); err != nil {
		return nil, err
	}

	allocation.Course = course
	allocation.Lecturer = lecturer
	return allocation, nil
}

// ListLecturerCourses retrieves a lecturer's allocated courses for a term
func (s *CourseService) ListLecturerCourses(ctx context.Context, lecturerID, sessionID, semesterID int64) ([]*models.CourseAllocation, error) {
	return s.allocationRepo.ListByLecturer(ctx, lecturerID, sessionID, semesterID)
}

// RemoveAllocation deletes an allocation and returns the removed record
func (s *CourseService) RemoveAllocation(ctx context.Context, id int64) (*models.CourseAllocation, error) {
	allocation, err := s.allocationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.allocationRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return allocation, nil
}
