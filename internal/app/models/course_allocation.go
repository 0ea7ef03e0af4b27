package models

import "time"

// CourseAllocation assigns a lecturer to a course for one course-term.
// At most one allocation exists per (course, session, semester).
type CourseAllocation struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	LecturerID int64     `json:"lecturerId" db:"lecturer_id"` // Staff ID of the lecturer of record
	SessionID  int64     `json:"sessionId" db:"session_id"`
	SemesterID int64     `json:"semesterId" db:"semester_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Course   *Course   `json:"course,omitempty"`
	Lecturer *Staff    `json:"lecturer,omitempty"`
	Session  *Session  `json:"session,omitempty"`
	Semester *Semester `json:"semester,omitempty"`
}
