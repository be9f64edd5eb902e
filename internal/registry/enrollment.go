package registry

import (
	"fmt"

	"github.com/noah-isme/school-records/internal/models"
)

// EnrolStudent enrols the student in the course with grade N. It returns
// false when the student is already enrolled in that course.
func (r *Registry) EnrolStudent(studentIndex, courseIndex int) bool {
	m := r.enrollmentsOf(studentIndex)
	id := r.courseID(courseIndex)
	if m.FindKey(id) >= 0 {
		return false
	}
	m.Append(id, models.GradeNotGraded)
	return true
}

// WithdrawStudent drops the student's enrollment in the course. It returns
// false when the student is not enrolled.
func (r *Registry) WithdrawStudent(studentIndex, courseIndex int) bool {
	m := r.enrollmentsOf(studentIndex)
	return m.Remove(m.FindKey(r.courseID(courseIndex)))
}

// AssignLetterGrade records a final grade for an existing enrollment. N
// cannot be assigned here. It returns false when the student is not enrolled.
func (r *Registry) AssignLetterGrade(studentIndex, courseIndex int, grade models.LetterGrade) bool {
	m := r.enrollmentsOf(studentIndex)
	id := r.courseID(courseIndex)
	if !grade.Final() {
		panic(fmt.Errorf("%w: got %q", ErrInvalidGrade, grade))
	}
	j := m.FindKey(id)
	if j < 0 {
		return false
	}
	*m.ValueAt(j) = grade
	return true
}

// StudentGPA returns the credit-weighted grade point average over graded
// courses. Courses still marked N are ignored; no graded credit yields 0.
func (r *Registry) StudentGPA(studentIndex int) float64 {
	m := r.enrollmentsOf(studentIndex)
	var score float64
	var units int
	for j := 0; j < m.Len(); j++ {
		points, ok := m.ValueAt(j).Points()
		if !ok {
			continue
		}
		credits := r.courses.Lookup(*m.KeyAt(j)).CreditHours
		score += points * float64(credits)
		units += credits
	}
	if units == 0 {
		return 0
	}
	return score / float64(units)
}

// TopStudentIndex returns the index of the student with the highest GPA;
// the earliest index wins ties. Panics with ErrNoStudents when empty.
func (r *Registry) TopStudentIndex() int {
	index, ok := r.TryTopStudentIndex()
	if !ok {
		panic(ErrNoStudents)
	}
	return index
}

// TryTopStudentIndex is TopStudentIndex with ok=false instead of a panic.
func (r *Registry) TryTopStudentIndex() (index int, ok bool) {
	if r.students.Len() == 0 {
		return -1, false
	}
	best := r.StudentGPA(0)
	for i := 1; i < r.students.Len(); i++ {
		if gpa := r.StudentGPA(i); gpa > best {
			best, index = gpa, i
		}
	}
	return index, true
}
