package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/repositories"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
	"github.com/eokonkwo/campuscore/internal/pkg/helpers"
)

const (
	defaultAdminEmail    = "admin@campuscore.edu"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData seeds the records the system cannot run without: one
// faculty and department, and an administrator account able to set up the
// rest through the API. Existing records are left alone, so the seed is
// safe to run on every start.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	facultyRepo := repositories.NewFacultyRepository(dbPool)
	departmentRepo := repositories.NewDepartmentRepository(dbPool)
	userRepo := repositories.NewUserRepository(dbPool)
	staffRepo := repositories.NewStaffRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	facultyID, err := ensureFaculty(ctx, facultyRepo, "Faculty of Science", "SCI")
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default faculty")
		finalErr = errors.Join(finalErr, err)
	}

	var departmentID int64
	if facultyID > 0 {
		departmentID, err = ensureDepartment(ctx, departmentRepo, facultyID, "Computer Science", "CSC")
		if err != nil {
			lgr.Error().Err(err).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Default admin account --- //
	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return errors.Join(finalErr, err)
	}

	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return finalErr
	}

	if departmentID == 0 {
		err := errors.New("no department available for admin account")
		lgr.Error().Err(err).Msg("Cannot create admin user")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}

	admin := &models.User{
		Email:     defaultAdminEmail,
		Password:  string(hashedPassword),
		FirstName: "System",
		LastName:  "Administrator",
		RoleType:  models.RoleAdmin,
		IsActive:  true,
	}
	staff := &models.Staff{
		StaffID:      helpers.FormatStaffID(helpers.DefaultStaffIDFormat, time.Now().Year(), 1),
		DepartmentID: departmentID,
		Designation:  "Registrar",
	}

	if err := staffRepo.CreateWithUser(ctx, admin, staff); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return errors.Join(finalErr, err)
	}

	lgr.Info().
		Int64("adminID", admin.ID).
		Str("staffNumber", staff.StaffID).
		Msg("Default admin user created successfully")

	return finalErr
}

// ensureFaculty creates the faculty if missing and returns its ID either way.
func ensureFaculty(ctx context.Context, repo *repositories.FacultyRepository, name, code string) (int64, error) {
	id, err := repo.CreateFaculty(ctx, &models.Faculty{Name: name, Code: code})
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return 0, err
	}

	faculties, err := repo.GetAllFaculties(ctx)
	if err != nil {
		return 0, err
	}
	for _, f := range faculties {
		if f.Code == code {
			return f.ID, nil
		}
	}
	return 0, nil
}

// ensureDepartment creates the department if missing and returns its ID
// either way.
func ensureDepartment(ctx context.Context, repo *repositories.DepartmentRepository, facultyID int64, name, code string) (int64, error) {
	department := &models.Department{FacultyID: facultyID, Name: name, Code: code}
	err := repo.Create(ctx, department)
	if err == nil {
		return department.ID, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return 0, err
	}

	departments, err := repo.GetByFacultyID(ctx, facultyID)
	if err != nil {
		return 0, err
	}
	for _, d := range departments {
		if d.Code == code {
			return d.ID, nil
		}
	}
	return 0, nil
}
