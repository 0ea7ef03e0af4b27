package dto

import (
	"time"

	"github.com/eokonkwo/campuscore/internal/app/models"
)

// UpsertScoreRequest carries one student's scores for one course-term.
// The total, grade and grade point are derived server side and cannot be
// supplied by the caller.
type UpsertScoreRequest struct {
	StudentID  int64   `json:"studentId" binding:"required,min=1"`
	CourseID   int64   `json:"courseId" binding:"required,min=1"`
	SessionID  int64   `json:"sessionId" binding:"required,min=1"`
	SemesterID int64   `json:"semesterId" binding:"required,min=1"`
	CAScore    float64 `json:"caScore" binding:"gte=0,lte=40"`
	ExamScore  float64 `json:"examScore" binding:"gte=0,lte=60"`
	Remarks    string  `json:"remarks"`
}

// SubmitResultsRequest asks for a course-term's draft results to move to
// pending verification.
type SubmitResultsRequest struct {
	CourseID   int64 `json:"courseId" binding:"required,min=1"`
	SessionID  int64 `json:"sessionId" binding:"required,min=1"`
	SemesterID int64 `json:"semesterId" binding:"required,min=1"`
}

// RejectResultRequest carries the rejection reason recorded in the remarks
type RejectResultRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// BulkVerifyRequest lists the results to verify in one batch
type BulkVerifyRequest struct {
	ResultIDs []int64 `json:"resultIds" binding:"required,min=1,dive,min=1"`
}

// SkippedResult reports one result the bulk operation could not verify
type SkippedResult struct {
	ResultID int64  `json:"resultId"`
	Reason   string `json:"reason"`
}

// BulkVerifyResponse summarizes a bulk verification run
type BulkVerifyResponse struct {
	VerifiedCount int             `json:"verifiedCount"`
	Skipped       []SkippedResult `json:"skipped"`
}

// SubmitResponse reports how many draft results moved to pending
type SubmitResponse struct {
	SubmittedCount int `json:"submittedCount"`
}

// ResultResponse represents one result record
type ResultResponse struct {
	ID           int64      `json:"id"`
	StudentID    int64      `json:"studentId"`
	MatricNumber string     `json:"matricNumber,omitempty"`
	CourseID     int64      `json:"courseId"`
	CourseCode   string     `json:"courseCode,omitempty"`
	CreditUnits  int        `json:"creditUnits,omitempty"`
	SessionID    int64      `json:"sessionId"`
	SemesterID   int64      `json:"semesterId"`
	CAScore      float64    `json:"caScore"`
	ExamScore    float64    `json:"examScore"`
	TotalScore   float64    `json:"totalScore"`
	Grade        string     `json:"grade"`
	GradePoint   float64    `json:"gradePoint"`
	Remarks      string     `json:"remarks"`
	Status       string     `json:"status"`
	SubmittedBy  int64      `json:"submittedBy"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	VerifiedBy   *int64     `json:"verifiedBy,omitempty"`
	VerifiedAt   *time.Time `json:"verifiedAt,omitempty"`
}

// FromResult converts a models.Result to a ResultResponse
func FromResult(r *models.Result) ResultResponse {
	if r == nil {
		return ResultResponse{}
	}

	resp := ResultResponse{
		ID:          r.ID,
		StudentID:   r.StudentID,
		CourseID:    r.CourseID,
		SessionID:   r.SessionID,
		SemesterID:  r.SemesterID,
		CAScore:     r.CAScore,
		ExamScore:   r.ExamScore,
		TotalScore:  r.TotalScore,
		Grade:       string(r.Grade),
		GradePoint:  r.GradePoint,
		Remarks:     r.Remarks,
		Status:      string(r.Status),
		SubmittedBy: r.SubmittedBy,
		SubmittedAt: r.SubmittedAt,
		VerifiedBy:  r.VerifiedBy,
		VerifiedAt:  r.VerifiedAt,
	}

	if r.Student != nil {
		resp.MatricNumber = r.Student.MatricNumber
	}
	if r.Course != nil {
		resp.CourseCode = r.Course.Code
		resp.CreditUnits = r.Course.CreditUnits
	}

	return resp
}

// ResultListResponse represents a filtered result listing with pagination
type ResultListResponse struct {
	Results    []ResultResponse `json:"results"`
	Pagination PaginationInfo   `json:"pagination"`
}
