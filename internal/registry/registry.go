// Package registry keeps the school's students, courses and enrollments in
// memory and implements the record-keeping operations over them.
//
// Students and courses are addressed by their current position. Student i and
// enrollment map i always describe the same student. Enrollment maps key
// courses by a stable CourseID, so removing a course never rewrites other
// enrollments; views handed to callers translate IDs back to current course
// indices.
//
// Invalid indices and invalid grades are programming errors and panic with
// *collection.IndexError or ErrInvalidGrade. Expected refusals (duplicates,
// missing enrollments) are reported as false.
package registry

import (
	"errors"

	"github.com/google/uuid"

	"github.com/noah-isme/school-records/internal/models"
	"github.com/noah-isme/school-records/pkg/collection"
)

var (
	// ErrInvalidGrade is the panic value (wrapped) for grades outside A-F.
	ErrInvalidGrade = errors.New("registry: letter grade must be one of A, B, C, D, F")
	// ErrNoStudents is the panic value of TopStudentIndex on an empty registry.
	ErrNoStudents = errors.New("registry: no registered students")
)

// CourseID identifies an offered course for as long as it stays offered.
type CourseID uuid.UUID

func (id CourseID) String() string {
	return uuid.UUID(id).String()
}

type enrollmentMap = collection.Map[CourseID, models.LetterGrade]

// Registry is the single owner of all school records. It is not safe for
// concurrent use.
type Registry struct {
	students    *collection.Sequence[models.Student]
	courses     *collection.Map[CourseID, models.Course]
	enrollments *collection.Sequence[*enrollmentMap]
	newID       func() CourseID
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		students: collection.New[models.Student](),
		courses:  collection.NewMap[CourseID, models.Course](),
		enrollments: collection.NewFunc(
			func(a, b *enrollmentMap) bool { return a.Equal(b) },
			func(m *enrollmentMap) *enrollmentMap { return m.Clone() },
		),
		newID: func() CourseID { return CourseID(uuid.New()) },
	}
}

// StudentCount returns the number of registered students.
func (r *Registry) StudentCount() int {
	return r.students.Len()
}

// CourseCount returns the number of offered courses.
func (r *Registry) CourseCount() int {
	return r.courses.Len()
}

// ValidStudent reports whether index addresses a registered student.
func (r *Registry) ValidStudent(index int) bool {
	return index >= 0 && index < r.students.Len()
}

// ValidCourse reports whether index addresses an offered course.
func (r *Registry) ValidCourse(index int) bool {
	return index >= 0 && index < r.courses.Len()
}

// RegisterStudent appends s with an empty enrollment map. It refuses a
// student whose first and last name are already registered.
func (r *Registry) RegisterStudent(s models.Student) bool {
	if r.FindStudent(s.FirstName, s.LastName) >= 0 {
		return false
	}
	r.students.Append(s)
	r.enrollments.Append(collection.NewMap[CourseID, models.LetterGrade]())
	return true
}

// FindStudent returns the index of the first student with the given names, or -1.
func (r *Registry) FindStudent(firstName, lastName string) int {
	probe := models.Student{FirstName: firstName, LastName: lastName}
	for i := 0; i < r.students.Len(); i++ {
		if r.students.At(i).SameIdentity(probe) {
			return i
		}
	}
	return -1
}

// Student returns a copy of the student at index.
func (r *Registry) Student(index int) models.Student {
	r.mustStudent(index)
	return *r.students.At(index)
}

// Students returns a copy of every student in index order.
func (r *Registry) Students() []models.Student {
	return r.students.Values()
}

// StudentMap returns a snapshot of the student's enrollments keyed by the
// current course index.
func (r *Registry) StudentMap(index int) *collection.Map[int, models.LetterGrade] {
	m := r.enrollmentsOf(index)
	view := collection.NewMap[int, models.LetterGrade]()
	for j := 0; j < m.Len(); j++ {
		view.Append(r.courses.FindKey(*m.KeyAt(j)), *m.ValueAt(j))
	}
	return view
}

// RemoveStudent deletes the student at index together with its enrollments.
func (r *Registry) RemoveStudent(index int) {
	r.mustStudent(index)
	r.students.Remove(index)
	r.enrollments.Remove(index)
}

// OfferCourse appends c unless a course with the same name is offered.
func (r *Registry) OfferCourse(c models.Course) bool {
	if r.FindCourse(c.Name) >= 0 {
		return false
	}
	r.courses.Append(r.newID(), c)
	return true
}

// FindCourse returns the index of the course with the given name, or -1.
func (r *Registry) FindCourse(name string) int {
	for i := 0; i < r.courses.Len(); i++ {
		if r.courses.ValueAt(i).Name == name {
			return i
		}
	}
	return -1
}

// Course returns a copy of the course at index.
func (r *Registry) Course(index int) models.Course {
	r.mustCourse(index)
	return *r.courses.ValueAt(index)
}

// Courses returns a copy of every course in index order.
func (r *Registry) Courses() []models.Course {
	return r.courses.Values()
}

// RemoveCourse withdraws every student from the course at index and then
// removes it. Courses after index move down by one.
func (r *Registry) RemoveCourse(index int) {
	id := r.courseID(index)
	for i := 0; i < r.enrollments.Len(); i++ {
		m := *r.enrollments.At(i)
		for j := m.Len() - 1; j >= 0; j-- {
			if *m.KeyAt(j) == id {
				m.Remove(j)
			}
		}
	}
	r.courses.Remove(index)
}

func (r *Registry) mustStudent(index int) {
	if !r.ValidStudent(index) {
		panic(&collection.IndexError{Index: index, Len: r.students.Len()})
	}
}

func (r *Registry) mustCourse(index int) {
	if !r.ValidCourse(index) {
		panic(&collection.IndexError{Index: index, Len: r.courses.Len()})
	}
}

func (r *Registry) courseID(index int) CourseID {
	r.mustCourse(index)
	return *r.courses.KeyAt(index)
}

func (r *Registry) enrollmentsOf(studentIndex int) *enrollmentMap {
	r.mustStudent(studentIndex)
	return *r.enrollments.At(studentIndex)
}
