package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/repositories"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
)

// DepartmentService handles department-related operations
type DepartmentService struct {
	departmentRepo *repositories.DepartmentRepository
	facultyRepo    *repositories.FacultyRepository
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo *repositories.DepartmentRepository, facultyRepo *repositories.FacultyRepository) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		facultyRepo:    facultyRepo,
	}
}

// validateDepartment validates department data before database operations
func (s *DepartmentService) validateDepartment(department *models.Department) error {
	if department == nil {
		return apperrors.NewValidationError("department", "department is nil")
	}

	if department.FacultyID <= 0 {
		return apperrors.NewValidationError("facultyId", "faculty ID must be positive")
	}

	if strings.TrimSpace(department.Name) == "" {
		return apperrors.NewValidationError("name", "name cannot be empty")
	}

	if !isValidDepartmentCode(department.Code) {
		return apperrors.NewValidationError("code", "code must be uppercase alphanumeric")
	}

	return nil
}

// isValidDepartmentCode checks if a department code is uppercase
// alphanumeric. The code appears inside matric numbers, so it is kept
// strict.
func isValidDepartmentCode(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}

	for _, char := range code {
		if !((char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9')) {
			return false
		}
	}

	return true
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) error {
	if err := s.validateDepartment(department); err != nil {
		return err
	}

	// The faculty must exist first
	if _, err := s.facultyRepo.GetFacultyByID(ctx, department.FacultyID); err != nil {
		return err
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return err
	}
	return nil
}

// GetDepartmentByID retrieves a department by ID with its faculty attached
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	faculty, err := s.facultyRepo.GetFacultyByID(ctx, department.FacultyID)
	if err == nil {
		department.Faculty = faculty
	}

	return department, nil
}

// GetAllDepartments retrieves all departments
func (s *DepartmentService) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.departmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}

	return departments, nil
}

// GetDepartmentsByFacultyID retrieves all departments of a faculty
func (s *DepartmentService) GetDepartmentsByFacultyID(ctx context.Context, facultyID int64) ([]*models.Department, error) {
	faculty, err := s.facultyRepo.GetFacultyByID(ctx, facultyID)
	if err != nil {
		return nil, err
	}

	departments, err := s.departmentRepo.GetByFacultyID(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments by faculty: %w", err)
	}

	for _, department := range departments {
		department.Faculty = faculty
	}

	return departments, nil
}

// UpdateDepartment updates an existing department
func (s *DepartmentService) UpdateDepartment(ctx context.Context, department *models.Department) error {
	if err := s.validateDepartment(department); err != nil {
		return err
	}

	if _, err := s.facultyRepo.GetFacultyByID(ctx, department.FacultyID); err != nil {
		return err
	}

	return s.departmentRepo.Update(ctx, department)
}

// DeleteDepartment deletes a department by ID
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.departmentRepo.Delete(ctx, id)
}
