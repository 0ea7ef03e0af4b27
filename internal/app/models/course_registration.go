package models

import "time"

// CourseRegistration is a student's registration for a course in one
// course-term. Unique per (student, course, session, semester). Only
// approved registrations make the student gradeable in that course-term.
type CourseRegistration struct {
	ID           int64              `json:"id" db:"id"`
	StudentID    int64              `json:"studentId" db:"student_id"`
	CourseID     int64              `json:"courseId" db:"course_id"`
	SessionID    int64              `json:"sessionId" db:"session_id"`
	SemesterID   int64              `json:"semesterId" db:"semester_id"`
	Status       RegistrationStatus `json:"status" db:"status"`
	RegisteredAt time.Time          `json:"registeredAt" db:"registered_at"`

	// Relations (populated when needed)
	Student  *Student  `json:"student,omitempty"`
	Course   *Course   `json:"course,omitempty"`
	Session  *Session  `json:"session,omitempty"`
	Semester *Semester `json:"semester,omitempty"`
}
