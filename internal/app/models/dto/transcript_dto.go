package dto

// GPAResponse reports a grade point average over one scope (a single term
// for GPA, all verified results for CGPA).
type GPAResponse struct {
	StudentID  int64   `json:"studentId"`
	SessionID  *int64  `json:"sessionId,omitempty"`
	SemesterID *int64  `json:"semesterId,omitempty"`
	GPA        float64 `json:"gpa"`
	TotalUnits int     `json:"totalUnits"`
}

// TranscriptLine is one verified course result on the transcript
type TranscriptLine struct {
	CourseCode  string  `json:"courseCode"`
	CourseTitle string  `json:"courseTitle"`
	CreditUnits int     `json:"creditUnits"`
	TotalScore  float64 `json:"totalScore"`
	Grade       string  `json:"grade"`
	GradePoint  float64 `json:"gradePoint"`
}

// TranscriptTerm groups the verified results of one (session, semester)
// with the term GPA and the CGPA running up to and including that term.
type TranscriptTerm struct {
	SessionName  string           `json:"sessionName"`
	SemesterName string           `json:"semesterName"`
	Lines        []TranscriptLine `json:"lines"`
	TermUnits    int              `json:"termUnits"`
	GPA          float64          `json:"gpa"`
	CGPA         float64          `json:"cgpa"`
}

// TranscriptResponse is the full academic transcript of one student
type TranscriptResponse struct {
	StudentID    int64            `json:"studentId"`
	MatricNumber string           `json:"matricNumber"`
	StudentName  string           `json:"studentName"`
	Terms        []TranscriptTerm `json:"terms"`
	TotalUnits   int              `json:"totalUnits"`
	FinalCGPA    float64          `json:"finalCgpa"`
	DegreeClass  string           `json:"degreeClass"`
}
