package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-records/internal/dto"
	"github.com/noah-isme/school-records/internal/models"
	"github.com/noah-isme/school-records/internal/registry"
	"github.com/noah-isme/school-records/internal/report"
	appErrors "github.com/noah-isme/school-records/pkg/errors"
)

// ReportCachePrefix namespaces every cached rendering of the school report.
const ReportCachePrefix = "report:school:"

type cacheInvalidator interface {
	Invalidate(ctx context.Context, prefix string) error
}

// DateInput is the date of birth part of a registration.
type DateInput struct {
	Day   int `json:"day" validate:"gte=0"`
	Month int `json:"month" validate:"gte=0"`
	Year  int `json:"year" validate:"gte=0"`
}

// RegisterStudentRequest registers a new student.
type RegisterStudentRequest struct {
	FirstName   string    `json:"first_name" validate:"required,max=100"`
	LastName    string    `json:"last_name" validate:"required,max=100"`
	DateOfBirth DateInput `json:"date_of_birth"`
}

// OfferCourseRequest adds a course to the catalogue.
type OfferCourseRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	CreditHours *int   `json:"credit_hours" validate:"required,gte=0"`
}

// EnrolRequest enrols a student in a course.
type EnrolRequest struct {
	CourseIndex *int `json:"course_index" validate:"required,gte=0"`
}

// AssignGradeRequest sets the final grade of an enrollment.
type AssignGradeRequest struct {
	Grade string `json:"grade" validate:"required,oneof=A B C D F"`
}

// SchoolService exposes the registry to concurrent callers. Every call runs
// under one lock, so each operation is atomic with respect to the others.
// Indices are checked before reaching the registry; out of range indices are
// reported as not found.
type SchoolService struct {
	mu        sync.Mutex
	reg       *registry.Registry
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	cache     cacheInvalidator
	version   uint64
}

// SchoolServiceParams groups constructor dependencies.
type SchoolServiceParams struct {
	Registry  *registry.Registry
	Validator *validator.Validate
	Logger    *zap.Logger
	Metrics   *MetricsService
	Cache     cacheInvalidator
}

// NewSchoolService constructs a SchoolService. A nil registry starts empty.
func NewSchoolService(params SchoolServiceParams) *SchoolService {
	reg := params.Registry
	if reg == nil {
		reg = registry.New()
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SchoolService{
		reg:       reg,
		validator: validate,
		logger:    logger,
		metrics:   params.Metrics,
		cache:     params.Cache,
	}
	s.metrics.SetRegistrySize(reg.StudentCount(), reg.CourseCount())
	return s
}

// View runs fn with read access to the registry while holding the lock,
// together with the version of the records src reflects. fn must not retain src.
func (s *SchoolService) View(fn func(src report.Source, version uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.reg, s.version)
}

// Version counts the changes made to the records so far.
func (s *SchoolService) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Summary returns the number of students and courses.
func (s *SchoolService) Summary(ctx context.Context) dto.SchoolSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dto.SchoolSummary{Students: s.reg.StudentCount(), Courses: s.reg.CourseCount()}
}

// ListStudents returns every student in index order.
func (s *SchoolService) ListStudents(ctx context.Context) []dto.StudentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	students := s.reg.Students()
	items := make([]dto.StudentItem, len(students))
	for i, st := range students {
		items[i] = dto.StudentItem{Index: i, Student: st}
	}
	return items
}

// GetStudent returns the student at index.
func (s *SchoolService) GetStudent(ctx context.Context, index int) (*dto.StudentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStudent(index); err != nil {
		return nil, err
	}
	return &dto.StudentItem{Index: index, Student: s.reg.Student(index)}, nil
}

// FindStudent looks a student up by first and last name.
func (s *SchoolService) FindStudent(ctx context.Context, firstName, lastName string) (*dto.StudentItem, error) {
	if firstName == "" || lastName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "first and last name are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.reg.FindStudent(firstName, lastName)
	if index < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s %s is not a student in the school", firstName, lastName))
	}
	return &dto.StudentItem{Index: index, Student: s.reg.Student(index)}, nil
}

// RegisterStudent adds a student with no enrollments.
func (s *SchoolService) RegisterStudent(ctx context.Context, req RegisterStudentRequest) (*dto.StudentItem, error) {
	const op = "register_student"
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordOperation(op, OutcomeInvalid)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := models.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DateOfBirth: models.Date{
			Day:   req.DateOfBirth.Day,
			Month: req.DateOfBirth.Month,
			Year:  req.DateOfBirth.Year,
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.reg.RegisterStudent(student) {
		s.metrics.RecordOperation(op, OutcomeRejected)
		return nil, appErrors.Clone(appErrors.ErrConflict, "the same student already exists in the system")
	}
	index := s.reg.StudentCount() - 1
	s.mutated(ctx, op, zap.Int("student_index", index), zap.String("student", student.FullName()))
	return &dto.StudentItem{Index: index, Student: student}, nil
}

// RemoveStudent deletes the student at index and its enrollments. Later
// students move down by one.
func (s *SchoolService) RemoveStudent(ctx context.Context, index int) error {
	const op = "remove_student"
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStudent(index); err != nil {
		s.metrics.RecordOperation(op, OutcomeInvalid)
		return err
	}
	s.reg.RemoveStudent(index)
	s.mutated(ctx, op, zap.Int("student_index", index))
	return nil
}

// ListCourses returns every course in index order.
func (s *SchoolService) ListCourses(ctx context.Context) []dto.CourseItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	courses := s.reg.Courses()
	items := make([]dto.CourseItem, len(courses))
	for i, c := range courses {
		items[i] = dto.CourseItem{Index: i, Course: c}
	}
	return items
}

// GetCourse returns the course at index.
func (s *SchoolService) GetCourse(ctx context.Context, index int) (*dto.CourseItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkCourse(index); err != nil {
		return nil, err
	}
	return &dto.CourseItem{Index: index, Course: s.reg.Course(index)}, nil
}

// FindCourse looks a course up by name.
func (s *SchoolService) FindCourse(ctx context.Context, name string) (*dto.CourseItem, error) {
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.reg.FindCourse(name)
	if index < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s course is not offered in the school", name))
	}
	return &dto.CourseItem{Index: index, Course: s.reg.Course(index)}, nil
}

// OfferCourse adds a course to the end of the course list.
func (s *SchoolService) OfferCourse(ctx context.Context, req OfferCourseRequest) (*dto.CourseItem, error) {
	const op = "offer_course"
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordOperation(op, OutcomeInvalid)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := models.Course{Name: req.Name, CreditHours: *req.CreditHours}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.reg.OfferCourse(course) {
		s.metrics.RecordOperation(op, OutcomeRejected)
		return nil, appErrors.Clone(appErrors.ErrConflict, "the same course already exists in the system")
	}
	index := s.reg.CourseCount() - 1
	s.mutated(ctx, op, zap.Int("course_index", index), zap.String("course", course.Name))
	return &dto.CourseItem{Index: index, Course: course}, nil
}

// SeedCourses offers every course not yet offered and returns how many were added.
func (s *SchoolService) SeedCourses(ctx context.Context, courses []models.Course) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	for _, c := range courses {
		if s.reg.OfferCourse(c) {
			added++
		}
	}
	if added > 0 {
		s.mutated(ctx, "seed_courses", zap.Int("added", added), zap.Int("skipped", len(courses)-added))
	}
	return added
}

// RemoveCourse withdraws every student from the course and removes it.
// Later courses move down by one in every student's enrollments.
func (s *SchoolService) RemoveCourse(ctx context.Context, index int) error {
	const op = "remove_course"
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkCourse(index); err != nil {
		s.metrics.RecordOperation(op, OutcomeInvalid)
		return err
	}
	name := s.reg.Course(index).Name
	s.reg.RemoveCourse(index)
	s.mutated(ctx, op, zap.Int("course_index", index), zap.String("course", name))
	return nil
}

// Enrollments returns the student's enrollments with its GPA.
func (s *SchoolService) Enrollments(ctx context.Context, studentIndex int) (*dto.StudentEnrollments, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStudent(studentIndex); err != nil {
		return nil, err
	}
	m := s.reg.StudentMap(studentIndex)
	items := make([]dto.EnrollmentItem, 0, m.Len())
	for j := 0; j < m.Len(); j++ {
		items = append(items, s.enrollmentItem(*m.KeyAt(j), *m.ValueAt(j)))
	}
	return &dto.StudentEnrollments{
		StudentIndex: studentIndex,
		Student:      s.reg.Student(studentIndex),
		Enrollments:  items,
		GPA:          s.reg.StudentGPA(studentIndex),
	}, nil
}

// Enrol enrols the student in a course with grade N.
func (s *SchoolService) Enrol(ctx context.Context, studentIndex int, req EnrolRequest) (*dto.EnrollmentItem, error) {
	const op = "enrol_student"
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordOperation(op, OutcomeInvalid)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	courseIndex := *req.CourseIndex

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkPair(studentIndex, courseIndex); err != nil {
		s.metrics.RecordOperation(op, OutcomeInvalid)
		return nil, err
	}
	if !s.reg.EnrolStudent(studentIndex, courseIndex) {
		s.metrics.RecordOperation(op, OutcomeRejected)
		return nil, appErrors.Clone(appErrors.ErrConflict, "student is already enrolled in the course")
	}
	s.mutated(ctx, op, zap.Int("student_index", studentIndex), zap.Int("course_index", courseIndex))
	item := s.enrollmentItem(courseIndex, models.GradeNotGraded)
	return &item, nil
}

// Withdraw removes the student's enrollment in a course.
func (s *SchoolService) Withdraw(ctx context.Context, studentIndex, courseIndex int) error {
	const op = "withdraw_student"
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkPair(studentIndex, courseIndex); err != nil {
		s.metrics.RecordOperation(op, OutcomeInvalid)
		return err
	}
	if !s.reg.WithdrawStudent(studentIndex, courseIndex) {
		s.metrics.RecordOperation(op, OutcomeRejected)
		return appErrors.Clone(appErrors.ErrNotFound, "student is not enrolled in the course")
	}
	s.mutated(ctx, op, zap.Int("student_index", studentIndex), zap.Int("course_index", courseIndex))
	return nil
}

// AssignGrade records a final grade for an existing enrollment.
func (s *SchoolService) AssignGrade(ctx context.Context, studentIndex, courseIndex int, req AssignGradeRequest) (*dto.EnrollmentItem, error) {
	const op = "assign_grade"
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordOperation(op, OutcomeInvalid)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "grade must be one of A, B, C, D, F")
	}
	grade := models.LetterGrade(req.Grade)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkPair(studentIndex, courseIndex); err != nil {
		s.metrics.RecordOperation(op, OutcomeInvalid)
		return nil, err
	}
	if !s.reg.AssignLetterGrade(studentIndex, courseIndex, grade) {
		s.metrics.RecordOperation(op, OutcomeRejected)
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student is not enrolled in the course")
	}
	s.mutated(ctx, op, zap.Int("student_index", studentIndex), zap.Int("course_index", courseIndex), zap.String("grade", string(grade)))
	item := s.enrollmentItem(courseIndex, grade)
	return &item, nil
}

// GPA returns the student's credit-weighted grade point average.
func (s *SchoolService) GPA(ctx context.Context, studentIndex int) (*dto.GPAResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStudent(studentIndex); err != nil {
		return nil, err
	}
	return &dto.GPAResponse{StudentIndex: studentIndex, GPA: s.reg.StudentGPA(studentIndex)}, nil
}

// TopStudent returns the student with the highest GPA, earliest index first.
func (s *SchoolService) TopStudent(ctx context.Context) (*dto.TopStudentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.reg.TryTopStudentIndex()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no student has been registered yet")
	}
	return &dto.TopStudentResponse{
		StudentIndex: index,
		Student:      s.reg.Student(index),
		GPA:          s.reg.StudentGPA(index),
	}, nil
}

func (s *SchoolService) enrollmentItem(courseIndex int, grade models.LetterGrade) dto.EnrollmentItem {
	c := s.reg.Course(courseIndex)
	return dto.EnrollmentItem{CourseIndex: courseIndex, Course: c.Name, CreditHours: c.CreditHours, Grade: grade}
}

func (s *SchoolService) checkStudent(index int) error {
	if !s.reg.ValidStudent(index) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no student at index %d", index))
	}
	return nil
}

func (s *SchoolService) checkCourse(index int) error {
	if !s.reg.ValidCourse(index) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no course at index %d", index))
	}
	return nil
}

func (s *SchoolService) checkPair(studentIndex, courseIndex int) error {
	if err := s.checkStudent(studentIndex); err != nil {
		return err
	}
	return s.checkCourse(courseIndex)
}

// mutated runs after every successful change. Caller holds s.mu.
// mutated must run under s.mu.
func (s *SchoolService) mutated(ctx context.Context, op string, fields ...zap.Field) {
	s.version++
	s.metrics.RecordOperation(op, OutcomeOK)
	s.metrics.SetRegistrySize(s.reg.StudentCount(), s.reg.CourseCount())
	s.logger.Info("school record changed", append([]zap.Field{zap.String("operation", op)}, fields...)...)
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ReportCachePrefix); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.String("operation", op), zap.Error(err))
	}
}
