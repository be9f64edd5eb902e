package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentEqualityVersusIdentity(t *testing.T) {
	a := Student{FirstName: "Ann", LastName: "Lee", DateOfBirth: Date{Day: 1, Month: 1, Year: 2000}}
	b := a
	b.DateOfBirth.Year = 2001

	assert.False(t, a.Equal(b))
	assert.True(t, a.SameIdentity(b))
	assert.False(t, a.SameIdentity(Student{FirstName: "ann", LastName: "Lee"}))
}

func TestCourseEqualityVersusIdentity(t *testing.T) {
	a := Course{Name: "CS101", CreditHours: 3}

	assert.True(t, a.Equal(Course{Name: "CS101", CreditHours: 3}))
	assert.False(t, a.Equal(Course{Name: "CS101", CreditHours: 4}))
	assert.True(t, a.SameIdentity(Course{Name: "CS101", CreditHours: 4}))
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, "Full Name = None None: DOB (d-m-y) = 0-0-0", DefaultStudent().String())
	assert.Equal(t, "Course Name = None, Credit Hours = 0", DefaultCourse().String())
}

func TestLetterGradePoints(t *testing.T) {
	cases := map[LetterGrade]float64{GradeA: 4, GradeB: 3, GradeC: 2, GradeD: 1, GradeF: 0}
	for grade, want := range cases {
		got, ok := grade.Points()
		require.True(t, ok, string(grade))
		assert.Equal(t, want, got)
		assert.True(t, grade.Final())
	}

	_, ok := GradeNotGraded.Points()
	assert.False(t, ok)
	assert.False(t, GradeNotGraded.Final())
	assert.True(t, GradeNotGraded.Valid())
	assert.False(t, LetterGrade("E").Valid())
}

func TestParseLetterGrade(t *testing.T) {
	g, err := ParseLetterGrade(" b ")
	require.NoError(t, err)
	assert.Equal(t, GradeB, g)

	_, err = ParseLetterGrade("E")
	assert.Error(t, err)
	_, err = ParseLetterGrade("AB")
	assert.Error(t, err)
}
