package grading

import (
	"fmt"
	"math"
)

// Grade is a letter grade on the five-point scale.
type Grade string

// Letter grades
const (
	GradeA Grade = "A" // Excellent
	GradeB Grade = "B" // Very Good
	GradeC Grade = "C" // Good
	GradeD Grade = "D" // Fair
	GradeE Grade = "E" // Pass
	GradeF Grade = "F" // Fail
)

// Score bounds for the two sub-scores and the derived total.
const (
	MaxCAScore   = 40.0
	MaxExamScore = 60.0
	MaxTotal     = MaxCAScore + MaxExamScore
)

// Classify maps a total score to its letter grade and grade point.
// Bands are fixed and non-overlapping: the lower bound of each band is
// inclusive, so a total of exactly 40.00 is an E, not an F.
//
// Totals are validated upstream before a result is ever written, so an
// out-of-range total here means a caller bypassed validation. That is a
// programming error and Classify panics rather than guessing.
func Classify(total float64) (Grade, float64) {
	if total < 0 || total > MaxTotal || math.IsNaN(total) {
		panic(fmt.Sprintf("grading: total score %v outside [0,%v]", total, MaxTotal))
	}

	switch {
	case total >= 70:
		return GradeA, 5.0
	case total >= 60:
		return GradeB, 4.0
	case total >= 50:
		return GradeC, 3.0
	case total >= 45:
		return GradeD, 2.0
	case total >= 40:
		return GradeE, 1.0
	default:
		return GradeF, 0.0
	}
}

// CourseLine is one verified result as seen by the GPA computation:
// the earned grade point weighted by the course's credit units.
type CourseLine struct {
	GradePoint  float64
	CreditUnits int
}

// GPA computes the credit-unit weighted grade point average of the given
// lines, rounded to two decimal places. An empty set yields 0.0, as does a
// set whose units sum to zero (impossible for well-formed courses, where
// credit units are at least 1, but handled instead of dividing by zero).
//
// The running sums stay in full float64 precision; rounding happens once at
// the end so error does not compound across many courses.
func GPA(lines []CourseLine) float64 {
	if len(lines) == 0 {
		return 0.0
	}

	var totalPoints float64
	var totalUnits int
	for _, l := range lines {
		totalPoints += l.GradePoint * float64(l.CreditUnits)
		totalUnits += l.CreditUnits
	}

	if totalUnits == 0 {
		return 0.0
	}

	return Round2(totalPoints / float64(totalUnits))
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DegreeClass returns the degree classification for a CGPA on the
// five-point scale.
func DegreeClass(cgpa float64) string {
	switch {
	case cgpa >= 4.50:
		return "First Class"
	case cgpa >= 3.50:
		return "Second Class Upper"
	case cgpa >= 2.40:
		return "Second Class Lower"
	case cgpa >= 1.50:
		return "Third Class"
	case cgpa >= 1.00:
		return "Pass"
	default:
		return "Fail"
	}
}
