// Command demo runs a scripted walk through the school registry with random
// students and grades, printing the school report after each step.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/noah-isme/school-records/internal/catalog"
	"github.com/noah-isme/school-records/internal/models"
	"github.com/noah-isme/school-records/internal/registry"
	"github.com/noah-isme/school-records/internal/report"
	"github.com/noah-isme/school-records/internal/sample"
	"github.com/noah-isme/school-records/pkg/config"
	"github.com/noah-isme/school-records/pkg/logger"
)

const removedCourseIndex = 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	courses, err := loadCourses(cfg.Catalog.File)
	if err != nil {
		logr.Fatal("failed to load course catalog", zap.Error(err))
	}

	d := &demo{
		out:      os.Stdout,
		reg:      registry.New(),
		gen:      sample.NewSeeded(cfg.Demo.Seed),
		logger:   logr,
		courses:  courses,
		students: cfg.Demo.Students,
	}
	logr.Info("demo starting", zap.Int64("seed", cfg.Demo.Seed), zap.Int("students", d.students), zap.Int("courses", len(courses)))
	if err := d.run(); err != nil {
		logr.Fatal("demo failed", zap.Error(err))
	}
}

func loadCourses(path string) ([]models.Course, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

type demo struct {
	out      io.Writer
	reg      *registry.Registry
	gen      *sample.Generator
	logger   *zap.Logger
	courses  []models.Course
	students int
	err      error
}

func (d *demo) run() error {
	d.printf("Welcome to Gusty School Management System\n")
	d.printf("===================================================\n")
	d.printReport()

	d.registerStudents()
	d.lookupStudent("Farhan", "Rahmoon")
	if n := d.reg.StudentCount(); n > 0 {
		s := d.reg.Student(d.gen.Intn(n))
		d.lookupStudent(s.FirstName, s.LastName)
	}

	d.offerCourses()
	d.lookupCourse("CMPT225")
	if n := d.reg.CourseCount(); n > 0 {
		d.lookupCourse(d.reg.Course(d.gen.Intn(n)).Name)
	}

	d.enrolRandomly()
	d.removeRandomStudent()
	d.gradeEveryone()
	d.withdrawRandomly()
	d.printTopStudent()
	d.removeCourse(removedCourseIndex)
	return d.err
}

func (d *demo) registerStudents() {
	for i := 0; i < d.students; i++ {
		if d.reg.RegisterStudent(d.gen.Student()) {
			d.printf("Student registration successful.\n")
		} else {
			d.printf("Student registration failed. The same student already exists in the system.\n")
		}
	}
	d.logger.Info("students registered", zap.Int("count", d.reg.StudentCount()))
	d.printf("\nSome students have been registered in to the system.\n")
	d.printUpdated()
}

func (d *demo) lookupStudent(first, last string) {
	index := d.reg.FindStudent(first, last)
	if index < 0 {
		d.printf("%s %s is not a student in the school.\n\n", first, last)
		return
	}
	d.printf("%s %s is a student in the school. Details below...\n", first, last)
	d.printf("%s\n", d.reg.Student(index))
	d.printf("%s", d.reg.StudentMap(index))
	d.printf("GPA = %s\n", report.FormatGPA(d.reg.StudentGPA(index)))
}

func (d *demo) offerCourses() {
	for _, c := range d.courses {
		if d.reg.OfferCourse(c) {
			d.printf("Course offering successful.\n")
		} else {
			d.printf("Course offering failed. The same course already exists in the system.\n")
		}
	}
	d.logger.Info("courses offered", zap.Int("count", d.reg.CourseCount()))
	d.printf("\nSome courses have been offered and added in to the system.\n")
	d.printUpdated()
}

func (d *demo) lookupCourse(name string) {
	index := d.reg.FindCourse(name)
	if index < 0 {
		d.printf("%s course is not offered in the school.\n\n", name)
		return
	}
	d.printf("%s course is offered in the school. Details below...\n", name)
	d.printf("%s\n", d.reg.Course(index))
}

// enrolRandomly gives each student up to half the catalogue in random picks.
// Repeated picks are refused by the registry and simply skipped.
func (d *demo) enrolRandomly() {
	courses := d.reg.CourseCount()
	if courses/2 == 0 {
		return
	}
	for s := 0; s < d.reg.StudentCount(); s++ {
		picks := d.gen.Intn(courses / 2)
		for i := 0; i < picks; i++ {
			d.reg.EnrolStudent(s, d.gen.Intn(courses))
		}
	}
	d.printf("\nSome students have been enrolled in to some courses.\n")
	d.printUpdated()
}

func (d *demo) removeRandomStudent() {
	n := d.reg.StudentCount()
	if n == 0 {
		return
	}
	index := d.gen.Intn(n)
	d.reg.RemoveStudent(index)
	d.logger.Info("student removed", zap.Int("student_index", index))
	d.printf("\nThe student at index %d has been removed from the system.\n", index)
	d.printUpdated()
}

func (d *demo) gradeEveryone() {
	for s := 0; s < d.reg.StudentCount(); s++ {
		for _, courseIndex := range d.reg.StudentMap(s).Keys() {
			d.reg.AssignLetterGrade(s, courseIndex, d.gen.LetterGrade())
		}
	}
	d.printf("\nStudents have been assigned letter grades.\n")
	d.printUpdated()
}

func (d *demo) withdrawRandomly() {
	n := d.reg.StudentCount()
	if n == 0 {
		return
	}
	s := d.reg.Student(d.gen.Intn(n))
	index := d.reg.FindStudent(s.FirstName, s.LastName)
	d.printf("%s %s is a student in the school. Details below...\n", s.FirstName, s.LastName)
	d.printf("%s\n", s)
	enrolled := d.reg.StudentMap(index)
	d.printf("%s\n", enrolled)
	if enrolled.Len() == 0 {
		d.printf("The student at index %d is not enrolled in any course.\n\n", index)
		return
	}

	courseIndex := *enrolled.KeyAt(d.gen.Intn(enrolled.Len()))
	if !d.reg.WithdrawStudent(index, courseIndex) {
		d.printf("Withdrawing the student at index %d from the course at index %d failed.\n\n", index, courseIndex)
		return
	}
	d.logger.Info("student withdrawn", zap.Int("student_index", index), zap.Int("course_index", courseIndex))
	d.printf("Student at index %d withdrawn from the course at index %d\n", index, courseIndex)
	d.printf("The updated information for the student is now...\n")
	d.printf("%s\n", d.reg.Student(index))
	d.printf("%s\n", d.reg.StudentMap(index))
}

func (d *demo) printTopStudent() {
	index, ok := d.reg.TryTopStudentIndex()
	if !ok {
		d.printf("There are no students to rank.\n\n")
		return
	}
	d.printf("The top student is...\n")
	d.printf("%s\n", d.reg.Student(index))
	d.printf("GPA = %s\n\n", report.FormatGPA(d.reg.StudentGPA(index)))
}

func (d *demo) removeCourse(index int) {
	if !d.reg.ValidCourse(index) {
		d.logger.Warn("course to remove is not offered", zap.Int("course_index", index))
		return
	}
	name := d.reg.Course(index).Name
	d.reg.RemoveCourse(index)
	d.logger.Info("course removed", zap.String("course", name))
	d.printf("%s has been removed from the system.\n", name)
	d.printf("The system has been updated. Below is the updated system information...\n")
	d.printReport()
}

func (d *demo) printUpdated() {
	d.printf("The updated system information is...\n")
	d.printReport()
}

func (d *demo) printReport() {
	if d.err != nil {
		return
	}
	if d.err = report.Write(d.out, d.reg); d.err == nil {
		d.printf("\n")
	}
}

func (d *demo) printf(format string, args ...interface{}) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.out, format, args...)
}
