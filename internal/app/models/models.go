package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleStaff   RoleType = "STAFF"
	RoleStudent RoleType = "STUDENT"
)

// SemesterName identifies a semester within an academic session
type SemesterName string

const (
	SemesterFirst  SemesterName = "first"
	SemesterSecond SemesterName = "second"
)

// SemesterOffered says in which semester(s) a course runs
type SemesterOffered string

const (
	OfferedFirst  SemesterOffered = "first"
	OfferedSecond SemesterOffered = "second"
	OfferedBoth   SemesterOffered = "both"
)

// RegistrationStatus is the approval state of a course registration
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// ResultStatus is the lifecycle state of a result record.
// draft -> pending -> verified | rejected. A rejected result returns to
// draft when the lecturer re-enters its scores; verified is terminal.
type ResultStatus string

const (
	ResultDraft    ResultStatus = "draft"
	ResultPending  ResultStatus = "pending"
	ResultVerified ResultStatus = "verified"
	ResultRejected ResultStatus = "rejected"
)
