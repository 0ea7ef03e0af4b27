package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/app/repositories"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
	"github.com/eokonkwo/campuscore/internal/pkg/auth"
	"github.com/eokonkwo/campuscore/internal/pkg/email"
	"github.com/eokonkwo/campuscore/internal/pkg/helpers"
)

// StaffService handles staff onboarding and lookup
type StaffService struct {
	staffRepo     *repositories.StaffRepository
	userRepo      *repositories.UserRepository
	deptRepo      *repositories.DepartmentRepository
	emailService  email.EmailService
	staffIDFormat string
	logger        zerolog.Logger
}

// NewStaffService creates a new staff service instance
func NewStaffService(
	staffRepo *repositories.StaffRepository,
	userRepo *repositories.UserRepository,
	deptRepo *repositories.DepartmentRepository,
	emailService email.EmailService,
	staffIDFormat string,
	logger zerolog.Logger,
) *StaffService {
	if staffIDFormat == "" {
		staffIDFormat = helpers.DefaultStaffIDFormat
	}
	return &StaffService{
		staffRepo:     staffRepo,
		userRepo:      userRepo,
		deptRepo:      deptRepo,
		emailService:  emailService,
		staffIDFormat: staffIDFormat,
		logger:        logger,
	}
}

// CreateStaff creates a staff member: the user account (STAFF or ADMIN
// role), the staff record with a generated staff ID, and the credentials
// email.
func (s *StaffService) CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*models.Staff, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	department, err := s.deptRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	staffID, err := s.nextStaffID(ctx)
	if err != nil {
		return nil, err
	}

	role := models.RoleStaff
	if req.IsAdmin {
		role = models.RoleAdmin
	}

	password, err := auth.GeneratePassword(0)
	if err != nil {
		return nil, fmt.Errorf("error generating password: %w", err)
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  role,
		IsActive:  true,
	}

	staff := &models.Staff{
		StaffID:      staffID,
		DepartmentID: req.DepartmentID,
		Designation:  req.Designation,
	}

	if err := s.staffRepo.CreateWithUser(ctx, user, staff); err != nil {
		return nil, err
	}

	staff.User = user
	staff.Department = department

	if err := s.emailService.SendStaffCredentialsEmail(user.Email, user.FullName(), staffID, password); err != nil {
		s.logger.Error().Err(err).Int64("staffID", staff.ID).Msg("Could not send staff credentials email")
	}

	return staff, nil
}

// nextStaffID picks the next free staff ID for the current year
func (s *StaffService) nextStaffID(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := helpers.FormatStaffID(s.staffIDFormat, year, 0)
	// The prefix is everything before the serial.
	if idx := strings.LastIndex(prefix, "/"); idx > 0 {
		prefix = prefix[:idx+1]
	}

	count, err := s.staffRepo.CountByStaffIDPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}

	return helpers.FormatStaffID(s.staffIDFormat, year, count+1), nil
}

// GetStaff retrieves a staff member by staff record ID
func (s *StaffService) GetStaff(ctx context.Context, id int64) (*models.Staff, error) {
	return s.staffRepo.GetByID(ctx, id)
}

// GetStaffByUserID retrieves the staff record linked to a user account
func (s *StaffService) GetStaffByUserID(ctx context.Context, userID int64) (*models.Staff, error) {
	return s.staffRepo.GetByUserID(ctx, userID)
}

// ListStaffByDepartment retrieves all staff of a department
func (s *StaffService) ListStaffByDepartment(ctx context.Context, departmentID int64) ([]*models.Staff, error) {
	return s.staffRepo.ListByDepartment(ctx, departmentID)
}
