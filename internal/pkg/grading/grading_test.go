package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		total     float64
		wantGrade Grade
		wantPoint float64
	}{
		{"zero", 0, GradeF, 0.0},
		{"just below pass", 39.99, GradeF, 0.0},
		{"pass boundary", 40.00, GradeE, 1.0},
		{"fair boundary", 45.00, GradeD, 2.0},
		{"good boundary", 50.00, GradeC, 3.0},
		{"just below very good", 59.99, GradeC, 3.0},
		{"very good boundary", 60.00, GradeB, 4.0},
		{"excellent boundary", 70.00, GradeA, 5.0},
		{"maximum", 100.00, GradeA, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade, point := Classify(tt.total)
			assert.Equal(t, tt.wantGrade, grade)
			assert.Equal(t, tt.wantPoint, point)
		})
	}
}

func TestClassifyPanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { Classify(-0.01) })
	assert.Panics(t, func() { Classify(100.01) })
}

func TestGPA(t *testing.T) {
	t.Run("weighted by credit units", func(t *testing.T) {
		// An A in a 3-unit course and a C in a 1-unit course:
		// (5.0*3 + 3.0*1) / 4 = 4.5
		lines := []CourseLine{
			{GradePoint: 5.0, CreditUnits: 3},
			{GradePoint: 3.0, CreditUnits: 1},
		}
		assert.Equal(t, 4.5, GPA(lines))
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		// (5.0*2 + 4.0*1) / 3 = 4.666... -> 4.67
		lines := []CourseLine{
			{GradePoint: 5.0, CreditUnits: 2},
			{GradePoint: 4.0, CreditUnits: 1},
		}
		assert.Equal(t, 4.67, GPA(lines))
	})

	t.Run("empty set is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, GPA(nil))
		assert.Equal(t, 0.0, GPA([]CourseLine{}))
	})

	t.Run("zero total units is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, GPA([]CourseLine{{GradePoint: 5.0, CreditUnits: 0}}))
	})
}

func TestDegreeClass(t *testing.T) {
	tests := []struct {
		cgpa float64
		want string
	}{
		{5.00, "First Class"},
		{4.50, "First Class"},
		{4.49, "Second Class Upper"},
		{3.50, "Second Class Upper"},
		{3.49, "Second Class Lower"},
		{2.40, "Second Class Lower"},
		{2.39, "Third Class"},
		{1.50, "Third Class"},
		{1.49, "Pass"},
		{1.00, "Pass"},
		{0.99, "Fail"},
		{0.00, "Fail"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DegreeClass(tt.cgpa), "cgpa %.2f", tt.cgpa)
	}
}
