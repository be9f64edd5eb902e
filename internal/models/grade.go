package models

import (
	"fmt"
	"strings"
)

// LetterGrade is the grade recorded against an enrollment.
type LetterGrade string

const (
	// GradeNotGraded marks an enrollment that has no final grade yet.
	GradeNotGraded LetterGrade = "N"
	GradeA         LetterGrade = "A"
	GradeB         LetterGrade = "B"
	GradeC         LetterGrade = "C"
	GradeD         LetterGrade = "D"
	GradeF         LetterGrade = "F"
)

var gradePoints = map[LetterGrade]float64{
	GradeA: 4.0,
	GradeB: 3.0,
	GradeC: 2.0,
	GradeD: 1.0,
	GradeF: 0.0,
}

// Final reports whether g is one of A, B, C, D or F.
func (g LetterGrade) Final() bool {
	_, ok := gradePoints[g]
	return ok
}

// Valid reports whether g is a final grade or the not-graded sentinel.
func (g LetterGrade) Valid() bool {
	return g == GradeNotGraded || g.Final()
}

// Points returns the grade point value on the 4.0 scale. ok is false for N.
func (g LetterGrade) Points() (points float64, ok bool) {
	points, ok = gradePoints[g]
	return points, ok
}

// ParseLetterGrade accepts a single letter, case-insensitively.
func ParseLetterGrade(raw string) (LetterGrade, error) {
	g := LetterGrade(strings.ToUpper(strings.TrimSpace(raw)))
	if !g.Valid() {
		return "", fmt.Errorf("invalid letter grade %q", raw)
	}
	return g, nil
}
