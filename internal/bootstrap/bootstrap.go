package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/eokonkwo/campuscore/internal/app/controllers"
	appMigrations "github.com/eokonkwo/campuscore/internal/app/migrations"
	appRepos "github.com/eokonkwo/campuscore/internal/app/repositories"
	appRoutes "github.com/eokonkwo/campuscore/internal/app/routes"
	appServices "github.com/eokonkwo/campuscore/internal/app/services"
	"github.com/eokonkwo/campuscore/internal/config"
	"github.com/eokonkwo/campuscore/internal/db"
	appMiddleware "github.com/eokonkwo/campuscore/internal/middleware"
	pkgAuth "github.com/eokonkwo/campuscore/internal/pkg/auth"
	"github.com/eokonkwo/campuscore/internal/pkg/email"
	"github.com/eokonkwo/campuscore/internal/pkg/filestorage"
	"github.com/eokonkwo/campuscore/internal/pkg/helpers"
	"github.com/eokonkwo/campuscore/internal/pkg/logger"
	"github.com/eokonkwo/campuscore/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	EmailService   email.EmailService
	FileStorage    *filestorage.LocalStorage
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    *appRoutes.Controllers

	AuthService         *appServices.AuthService
	FacultyService      appServices.FacultyService
	DepartmentService   *appServices.DepartmentService
	TermService         *appServices.TermService
	CourseService       *appServices.CourseService
	StudentService      *appServices.StudentService
	StaffService        *appServices.StaffService
	RegistrationService *appServices.RegistrationService
	ResultService       *appServices.ResultService
	AttendanceService   *appServices.AttendanceService
	TranscriptService   *appServices.TranscriptService
	MaterialService     *appServices.MaterialService

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// Load .env if present so local overrides reach the env-based config layer.
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment variables from .env file")
	}

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create Default Data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.Email.Host,
		Port:      cfg.Email.Port,
		Username:  cfg.Email.Username,
		Password:  cfg.Email.Password,
		FromName:  cfg.Email.FromName,
		FromEmail: cfg.Email.FromEmail,
		UseTLS:    cfg.Email.UseTLS,
		BaseURL:   cfg.Email.PortalURL,
	}, lgr)

	// Services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.StudentRepository,
		deps.Repos.StaffRepository,
		deps.JWTService,
		lgr,
	)
	deps.FacultyService = appServices.NewFacultyService(deps.Repos.FacultyRepository)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository, deps.Repos.FacultyRepository)
	deps.TermService = appServices.NewTermService(deps.Repos.TermRepository)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.StaffRepository,
		deps.Repos.TermRepository,
		deps.Repos.AllocationRepository,
	)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.UserRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.TermRepository,
		deps.EmailService,
		cfg.Identifiers.MatricFormat,
		lgr,
	)
	deps.StaffService = appServices.NewStaffService(
		deps.Repos.StaffRepository,
		deps.Repos.UserRepository,
		deps.Repos.DepartmentRepository,
		deps.EmailService,
		cfg.Identifiers.StaffFormat,
		lgr,
	)
	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.RegistrationRepository,
		deps.Repos.TermRepository,
		deps.Repos.CourseRepository,
	)
	deps.ResultService = appServices.NewResultService(
		deps.Repos.ResultRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.AllocationRepository,
	)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.AttendanceRepository,
		deps.Repos.AllocationRepository,
		deps.Repos.RegistrationRepository,
	)
	deps.TranscriptService = appServices.NewTranscriptService(
		deps.Repos.ResultRepository,
		deps.Repos.StudentRepository,
	)
	deps.MaterialService = appServices.NewMaterialService(
		deps.Repos.MaterialRepository,
		deps.Repos.CourseRepository,
		deps.FileStorage,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = &appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService, lgr),
		Faculty:      appControllers.NewFacultyController(deps.FacultyService),
		Department:   appControllers.NewDepartmentController(deps.DepartmentService),
		Term:         appControllers.NewTermController(deps.TermService),
		Course:       appControllers.NewCourseController(deps.CourseService, deps.StaffService),
		Student:      appControllers.NewStudentController(deps.StudentService, lgr),
		Staff:        appControllers.NewStaffController(deps.StaffService, lgr),
		Registration: appControllers.NewRegistrationController(deps.RegistrationService, deps.StudentService),
		Result:       appControllers.NewResultController(deps.ResultService, deps.StaffService),
		Attendance:   appControllers.NewAttendanceController(deps.AttendanceService, deps.StaffService),
		Transcript:   appControllers.NewTranscriptController(deps.TranscriptService, deps.StudentService),
		Material:     appControllers.NewMaterialController(deps.MaterialService, deps.StaffService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
