// Package report renders a read-only view of the school registry as text
// and as a flat table for file exports.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/noah-isme/school-records/internal/models"
	"github.com/noah-isme/school-records/pkg/collection"
	"github.com/noah-isme/school-records/pkg/export"
)

// Source is the part of the registry a report reads.
type Source interface {
	Students() []models.Student
	Courses() []models.Course
	StudentMap(index int) *collection.Map[int, models.LetterGrade]
	StudentGPA(index int) float64
}

// FormatGPA prints a GPA with up to six significant digits, trailing zeros
// dropped (3.42857, 3, 0).
func FormatGPA(gpa float64) string {
	return strconv.FormatFloat(gpa, 'g', 6, 64)
}

// Write renders the full school state: students, courses, then each
// student's enrollments with their GPA.
func Write(w io.Writer, src Source) error {
	pw := &printer{w: w}
	students := src.Students()
	courses := src.Courses()

	pw.printf("\nStudents List\n")
	if len(students) == 0 {
		pw.printf("No student has been registered yet.\n")
	}
	for i, s := range students {
		pw.printf("Student at index %d: %s\n", i, s)
	}

	pw.printf("\nCourses List\n")
	if len(courses) == 0 {
		pw.printf("No course has been offered yet.\n")
	}
	for i, c := range courses {
		pw.printf("Course at index %d: %s\n", i, c)
	}

	pw.printf("\nStudents Map\n")
	if len(students) == 0 {
		pw.printf("No student is enrolled in any course yet.\n")
	}
	for i := range students {
		pw.printf("Student at index %d\n", i)
		pw.printf("%s", src.StudentMap(i))
		pw.printf("GPA = %s\n\n", FormatGPA(src.StudentGPA(i)))
	}
	return pw.err
}

// Render returns Write's output as a string.
func Render(src Source) string {
	var b strings.Builder
	// strings.Builder never fails a write, so Write cannot return an error here.
	_ = Write(&b, src)
	return b.String()
}

// Headers of the tabular export.
var Headers = []string{"Student Index", "Student", "Date of Birth", "Course Index", "Course", "Credit Hours", "Grade", "GPA"}

// Table flattens the registry into one row per enrollment. Students with no
// enrollments get a single row with empty course cells.
func Table(src Source, title string) export.Dataset {
	data := export.Dataset{Title: title, Headers: Headers}
	courses := src.Courses()
	for i, s := range src.Students() {
		gpa := FormatGPA(src.StudentGPA(i))
		base := []string{strconv.Itoa(i), s.FullName(), s.DateOfBirth.String()}
		m := src.StudentMap(i)
		if m.Len() == 0 {
			data.Rows = append(data.Rows, append(base, "", "", "", "", gpa))
			continue
		}
		for j := 0; j < m.Len(); j++ {
			ci := *m.KeyAt(j)
			course := courses[ci]
			row := append(append([]string{}, base...),
				strconv.Itoa(ci), course.Name, strconv.Itoa(course.CreditHours), string(*m.ValueAt(j)), gpa)
			data.Rows = append(data.Rows, row)
		}
	}
	return data
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
