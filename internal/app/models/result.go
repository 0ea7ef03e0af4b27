package models

import (
	"time"

	"github.com/eokonkwo/campuscore/internal/pkg/grading"
)

// Result is one student's result for one course-term. Exactly one row
// exists per (student, course, session, semester); concurrent entry for the
// same tuple resolves to an update of the existing row.
//
// TotalScore, Grade and GradePoint are derived from the two sub-scores via
// grading.Classify before every write and are never settable by callers.
type Result struct {
	ID           int64         `json:"id" db:"id"`
	StudentID    int64         `json:"studentId" db:"student_id"`
	CourseID     int64         `json:"courseId" db:"course_id"`
	SessionID    int64         `json:"sessionId" db:"session_id"`
	SemesterID   int64         `json:"semesterId" db:"semester_id"`
	CAScore      float64       `json:"caScore" db:"ca_score"`     // Continuous assessment, 0-40
	ExamScore    float64       `json:"examScore" db:"exam_score"` // Exam, 0-60
	TotalScore   float64       `json:"totalScore" db:"total_score"`
	Grade        grading.Grade `json:"grade" db:"grade"`
	GradePoint   float64       `json:"gradePoint" db:"grade_point"`
	Remarks      string        `json:"remarks" db:"remarks"`
	Status       ResultStatus  `json:"status" db:"status"`
	SubmittedBy  int64         `json:"submittedBy" db:"submitted_by"` // Staff ID of the lecturer of record
	SubmittedAt  time.Time     `json:"submittedAt" db:"submitted_at"`
	VerifiedBy   *int64        `json:"verifiedBy,omitempty" db:"verified_by"` // Staff ID of the verifier (nullable)
	VerifiedAt   *time.Time    `json:"verifiedAt,omitempty" db:"verified_at"` // Nullable

	// Relations (populated when needed)
	Student  *Student  `json:"student,omitempty"`
	Course   *Course   `json:"course,omitempty"`
	Session  *Session  `json:"session,omitempty"`
	Semester *Semester `json:"semester,omitempty"`
}

// IsEditable reports whether the lecturer may still change the scores.
// Pending results are demoted back to draft on edit; verified results are
// immutable through the entry path.
func (r *Result) IsEditable() bool {
	return r.Status != ResultVerified
}
