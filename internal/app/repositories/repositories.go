package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so helpers can run inside or
// outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	FacultyRepository      *FacultyRepository
	DepartmentRepository   *DepartmentRepository
	StudentRepository      *StudentRepository
	StaffRepository        *StaffRepository
	CourseRepository       *CourseRepository
	TermRepository         *TermRepository
	AllocationRepository   *AllocationRepository
	RegistrationRepository *RegistrationRepository
	ResultRepository       *ResultRepository
	MaterialRepository     *MaterialRepository
	AttendanceRepository   *AttendanceRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		FacultyRepository:      NewFacultyRepository(db),
		DepartmentRepository:   NewDepartmentRepository(db),
		StudentRepository:      NewStudentRepository(db),
		StaffRepository:        NewStaffRepository(db),
		CourseRepository:       NewCourseRepository(db),
		TermRepository:         NewTermRepository(db),
		AllocationRepository:   NewAllocationRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
		ResultRepository:       NewResultRepository(db),
		MaterialRepository:     NewMaterialRepository(db),
		AttendanceRepository:   NewAttendanceRepository(db),
	}
}
