package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-records/internal/models"
	"github.com/noah-isme/school-records/pkg/collection"
)

var (
	ann = models.Student{FirstName: "Ann", LastName: "Lee", DateOfBirth: models.Date{Day: 1, Month: 1, Year: 2000}}
	bob = models.Student{FirstName: "Bob", LastName: "Ray", DateOfBirth: models.Date{Day: 2, Month: 3, Year: 2001}}
	cai = models.Student{FirstName: "Cai", LastName: "Moe", DateOfBirth: models.Date{Day: 9, Month: 9, Year: 1999}}

	cs101 = models.Course{Name: "CS101", CreditHours: 3}
	cs102 = models.Course{Name: "CS102", CreditHours: 4}
)

// annWithTwoGrades is the worked GPA example: A in a 3-credit course and B in
// a 4-credit course.
func annWithTwoGrades(t *testing.T) *Registry {
	t.Helper()
	r := New()
	require.True(t, r.RegisterStudent(ann))
	require.True(t, r.OfferCourse(cs101))
	require.True(t, r.OfferCourse(cs102))
	require.True(t, r.EnrolStudent(0, 0))
	require.True(t, r.EnrolStudent(0, 1))
	require.True(t, r.AssignLetterGrade(0, 0, models.GradeA))
	require.True(t, r.AssignLetterGrade(0, 1, models.GradeB))
	return r
}

func TestRegisterStudentRejectsDuplicateIdentity(t *testing.T) {
	r := New()
	require.True(t, r.RegisterStudent(ann))

	twin := ann
	twin.DateOfBirth.Year = 1990
	assert.False(t, r.RegisterStudent(twin))
	assert.Equal(t, 1, r.StudentCount())
	assert.Equal(t, ann, r.Student(0))
}

func TestFindStudent(t *testing.T) {
	r := New()
	r.RegisterStudent(ann)
	r.RegisterStudent(bob)

	assert.Equal(t, 1, r.FindStudent("Bob", "Ray"))
	assert.Equal(t, -1, r.FindStudent("Farhan", "Rahmoon"))
	assert.Equal(t, -1, r.FindStudent("bob", "Ray"))
}

func TestStudentMapStartsEmpty(t *testing.T) {
	r := New()
	r.RegisterStudent(ann)

	assert.Equal(t, 0, r.StudentMap(0).Len())
	assert.Equal(t, "[Empty Map]\n", r.StudentMap(0).String())
}

func TestRemoveStudentKeepsEnrollmentsAligned(t *testing.T) {
	r := New()
	r.RegisterStudent(ann)
	r.RegisterStudent(bob)
	r.OfferCourse(cs101)
	r.OfferCourse(cs102)
	r.EnrolStudent(1, 1)
	r.AssignLetterGrade(1, 1, models.GradeC)

	r.RemoveStudent(0)

	require.Equal(t, 1, r.StudentCount())
	assert.Equal(t, bob, r.Student(0))
	assert.Equal(t, []int{1}, r.StudentMap(0).Keys())
	assert.Equal(t, []models.LetterGrade{models.GradeC}, r.StudentMap(0).Values())
	assert.Panics(t, func() { r.RemoveStudent(1) })
}

func TestOfferCourseRejectsDuplicateName(t *testing.T) {
	r := New()
	require.True(t, r.OfferCourse(cs101))

	assert.False(t, r.OfferCourse(models.Course{Name: "CS101", CreditHours: 5}))
	assert.Equal(t, 1, r.CourseCount())
	assert.Equal(t, 0, r.FindCourse("CS101"))
	assert.Equal(t, -1, r.FindCourse("CMPT225"))
	assert.Equal(t, cs101, r.Course(0))
}

func TestEnrolStudent(t *testing.T) {
	r := New()
	r.RegisterStudent(ann)
	r.OfferCourse(cs101)

	require.True(t, r.EnrolStudent(0, 0))
	assert.False(t, r.EnrolStudent(0, 0), "already enrolled")

	m := r.StudentMap(0)
	require.Equal(t, 1, m.Len())
	assert.Equal(t, models.GradeNotGraded, *m.Lookup(0))
}

func TestEnrolmentDoesNotChangeGPAUntilGraded(t *testing.T) {
	r := annWithTwoGrades(t)
	before := r.StudentGPA(0)

	r.OfferCourse(models.Course{Name: "MATH242", CreditHours: 4})
	require.True(t, r.EnrolStudent(0, 2))

	assert.Equal(t, before, r.StudentGPA(0))
}

func TestWithdrawStudent(t *testing.T) {
	r := annWithTwoGrades(t)
	r.OfferCourse(models.Course{Name: "HIST101", CreditHours: 3})

	assert.False(t, r.WithdrawStudent(0, 2), "never enrolled")
	assert.Equal(t, 2, r.StudentMap(0).Len())

	require.True(t, r.WithdrawStudent(0, 0))
	assert.Equal(t, []int{1}, r.StudentMap(0).Keys())
	assert.InDelta(t, 3.0, r.StudentGPA(0), 1e-9)
}

func TestAssignLetterGrade(t *testing.T) {
	r := New()
	r.RegisterStudent(ann)
	r.OfferCourse(cs101)
	r.OfferCourse(cs102)
	r.EnrolStudent(0, 0)

	assert.False(t, r.AssignLetterGrade(0, 1, models.GradeA), "not enrolled")
	require.True(t, r.AssignLetterGrade(0, 0, models.GradeD))
	require.True(t, r.AssignLetterGrade(0, 0, models.GradeB), "grades can be overwritten")
	assert.Equal(t, models.GradeB, *r.StudentMap(0).Lookup(0))

	assert.PanicsWithError(t, `registry: letter grade must be one of A, B, C, D, F: got "N"`, func() {
		r.AssignLetterGrade(0, 0, models.GradeNotGraded)
	})
}

func TestStudentGPA(t *testing.T) {
	r := annWithTwoGrades(t)

	assert.InDelta(t, 24.0/7.0, r.StudentGPA(0), 1e-9)
}

func TestStudentGPAWithoutGradedCredits(t *testing.T) {
	r := New()
	r.RegisterStudent(ann)
	r.OfferCourse(cs101)
	r.OfferCourse(models.Course{Name: "SEM000", CreditHours: 0})

	assert.Zero(t, r.StudentGPA(0))

	r.EnrolStudent(0, 0)
	assert.Zero(t, r.StudentGPA(0), "N contributes nothing")

	r.EnrolStudent(0, 1)
	r.AssignLetterGrade(0, 1, models.GradeA)
	assert.Zero(t, r.StudentGPA(0), "zero credit hours")
}

func TestRemoveCourseRenumbersLaterCourses(t *testing.T) {
	r := annWithTwoGrades(t)

	r.RemoveCourse(0)

	require.Equal(t, 1, r.CourseCount())
	assert.Equal(t, cs102, r.Course(0))
	m := r.StudentMap(0)
	assert.Equal(t, []int{0}, m.Keys())
	assert.Equal(t, models.GradeB, *m.Lookup(0))
	assert.InDelta(t, 3.0, r.StudentGPA(0), 1e-9)
}

func TestRemoveCourseAcrossStudents(t *testing.T) {
	r := New()
	r.RegisterStudent(ann)
	r.RegisterStudent(bob)
	r.OfferCourse(cs101)
	r.OfferCourse(cs102)
	r.OfferCourse(models.Course{Name: "ECON101", CreditHours: 3})
	r.EnrolStudent(0, 2)
	r.EnrolStudent(0, 1)
	r.EnrolStudent(1, 1)
	r.EnrolStudent(1, 0)

	r.RemoveCourse(1)

	assert.Equal(t, []int{1}, r.StudentMap(0).Keys())
	assert.Equal(t, []int{0}, r.StudentMap(1).Keys())
	assert.Equal(t, 0, r.FindCourse("CS101"))
	assert.Equal(t, 1, r.FindCourse("ECON101"))

	require.True(t, r.EnrolStudent(1, 1), "the old course 2 is now course 1")
	assert.False(t, r.EnrolStudent(0, 1))
}

func TestTopStudentIndexPrefersEarliestOnTie(t *testing.T) {
	r := New()
	r.RegisterStudent(ann)
	r.RegisterStudent(bob)
	r.RegisterStudent(cai)
	r.OfferCourse(models.Course{Name: "X", CreditHours: 2})
	r.OfferCourse(models.Course{Name: "Y", CreditHours: 2})

	// GPAs 2.0, 3.5, 3.5
	r.EnrolStudent(0, 0)
	r.AssignLetterGrade(0, 0, models.GradeC)
	for _, s := range []int{1, 2} {
		r.EnrolStudent(s, 0)
		r.EnrolStudent(s, 1)
		r.AssignLetterGrade(s, 0, models.GradeA)
		r.AssignLetterGrade(s, 1, models.GradeB)
	}

	assert.Equal(t, 1, r.TopStudentIndex())
}

func TestTopStudentIndexOnEmptyRegistry(t *testing.T) {
	r := New()

	_, ok := r.TryTopStudentIndex()
	assert.False(t, ok)
	assert.PanicsWithValue(t, ErrNoStudents, func() { r.TopStudentIndex() })

	r.RegisterStudent(ann)
	assert.Equal(t, 0, r.TopStudentIndex())
}

func TestIndexPreconditionsPanic(t *testing.T) {
	r := New()
	r.RegisterStudent(ann)
	r.OfferCourse(cs101)

	var indexErr *collection.IndexError
	checks := map[string]func(){
		"student":    func() { r.Student(1) },
		"course":     func() { r.Course(-1) },
		"studentMap": func() { r.StudentMap(2) },
		"enrol":      func() { r.EnrolStudent(0, 1) },
		"withdraw":   func() { r.WithdrawStudent(1, 0) },
		"grade":      func() { r.AssignLetterGrade(0, 5, models.GradeA) },
		"gpa":        func() { r.StudentGPA(-1) },
		"removeCrs":  func() { r.RemoveCourse(1) },
	}
	for name, fn := range checks {
		t.Run(name, func(t *testing.T) {
			defer func() {
				recovered := recover()
				require.NotNil(t, recovered)
				err, ok := recovered.(error)
				require.True(t, ok)
				assert.ErrorAs(t, err, &indexErr)
			}()
			fn()
		})
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	r := annWithTwoGrades(t)

	m := r.StudentMap(0)
	*m.ValueAt(0) = models.GradeF
	m.Append(9, models.GradeA)

	assert.Equal(t, models.GradeA, *r.StudentMap(0).ValueAt(0))
	assert.Equal(t, 2, r.StudentMap(0).Len())

	students := r.Students()
	students[0].FirstName = "Changed"
	assert.Equal(t, "Ann", r.Student(0).FirstName)
}
