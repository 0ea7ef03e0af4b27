package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/app/repositories"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
	"github.com/eokonkwo/campuscore/internal/pkg/auth"
	"github.com/eokonkwo/campuscore/internal/pkg/email"
	"github.com/eokonkwo/campuscore/internal/pkg/helpers"
)

// StudentService handles student admission and lookup. Admission creates
// the user account, generates the matric number and the initial password,
// and emails the credentials to the student.
type StudentService struct {
	studentRepo  *repositories.StudentRepository
	userRepo     *repositories.UserRepository
	deptRepo     *repositories.DepartmentRepository
	termRepo     *repositories.TermRepository
	emailService email.EmailService
	matricFormat string
	logger       zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	deptRepo *repositories.DepartmentRepository,
	termRepo *repositories.TermRepository,
	emailService email.EmailService,
	matricFormat string,
	logger zerolog.Logger,
) *StudentService {
	if matricFormat == "" {
		matricFormat = helpers.DefaultMatricFormat
	}
	return &StudentService{
		studentRepo:  studentRepo,
		userRepo:     userRepo,
		deptRepo:     deptRepo,
		termRepo:     termRepo,
		emailService: emailService,
		matricFormat: matricFormat,
		logger:       logger,
	}
}

// AdmitStudent admits a new student: creates the user account and student
// record, assigns the next matric number in the department and admission
// session, and emails the generated credentials.
func (s *StudentService) AdmitStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
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

	session, err := s.termRepo.GetSessionByID(ctx, req.AdmissionSessionID)
	if err != nil {
		return nil, err
	}

	matricNumber, err := s.nextMatricNumber(ctx, department, session)
	if err != nil {
		return nil, err
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
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}

	student := &models.Student{
		MatricNumber:       matricNumber,
		DepartmentID:       req.DepartmentID,
		AdmissionSessionID: req.AdmissionSessionID,
		CurrentLevel:       req.CurrentLevel,
	}

	if err := s.studentRepo.CreateWithUser(ctx, user, student); err != nil {
		return nil, err
	}

	student.User = user
	student.Department = department
	student.AdmissionSession = session

	if err := s.emailService.SendStudentCredentialsEmail(user.Email, user.FullName(), matricNumber, password); err != nil {
		// The account exists either way; the password can be reset by an
		// administrator.
		s.logger.Error().Err(err).Int64("studentID", student.ID).Msg("Could not send admission email")
	}

	return student, nil
}

// nextMatricNumber picks the next free matric number for the department
// and admission session. A concurrent admission can take the candidate
// serial first; in that case the unique constraint on matric_number fires
// in CreateWithUser and the caller retries the admission.
func (s *StudentService) nextMatricNumber(ctx context.Context, department *models.Department, session *models.Session) (string, error) {
	count, err := s.studentRepo.CountByDepartmentAndSession(ctx, department.ID, session.ID)
	if err != nil {
		return "", err
	}

	serial := count + 1
	for {
		candidate := helpers.FormatMatricNumber(s.matricFormat, session.Name, department.Code, serial)
		taken, err := s.studentRepo.MatricNumberExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		serial++
	}
}

// GetStudent retrieves a student by ID
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetStudentByUserID retrieves the student record linked to a user account
func (s *StudentService) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// GetStudentByMatric retrieves a student by matric number
func (s *StudentService) GetStudentByMatric(ctx context.Context, matricNumber string) (*models.Student, error) {
	return s.studentRepo.GetByMatricNumber(ctx, matricNumber)
}

// ListStudents retrieves students with optional department and level
// filters and pagination.
func (s *StudentService) ListStudents(ctx context.Context, departmentID int64, level int, offset uint64, limit int) ([]*models.Student, int64, error) {
	return s.studentRepo.List(ctx, departmentID, level, offset, limit)
}

// UpdateStudentLevel moves a student to a new level
func (s *StudentService) UpdateStudentLevel(ctx context.Context, studentID int64, level int) error {
	if err := s.studentRepo.UpdateLevel(ctx, studentID, level); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", studentID).Int("level", level).Msg("Student level updated")
	return nil
}

// SetStudentActive enables or disables the student's user account. A
// disabled account is refused at login; the academic record is untouched.
func (s *StudentService) SetStudentActive(ctx context.Context, studentID int64, active bool) error {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetActive(ctx, student.UserID, active); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", studentID).Bool("active", active).Msg("Student account status changed")
	return nil
}
