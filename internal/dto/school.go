package dto

import "github.com/noah-isme/school-records/internal/models"

// StudentItem is a student together with its current index.
type StudentItem struct {
	Index int `json:"index"`
	models.Student
}

// CourseItem is a course together with its current index.
type CourseItem struct {
	Index int `json:"index"`
	models.Course
}

// EnrollmentItem describes one course a student is enrolled in.
type EnrollmentItem struct {
	CourseIndex int                `json:"course_index"`
	Course      string             `json:"course"`
	CreditHours int                `json:"credit_hours"`
	Grade       models.LetterGrade `json:"grade"`
}

// StudentEnrollments is a student's enrollment map in insertion order.
type StudentEnrollments struct {
	StudentIndex int              `json:"student_index"`
	Student      models.Student   `json:"student"`
	Enrollments  []EnrollmentItem `json:"enrollments"`
	GPA          float64          `json:"gpa"`
}

// GPAResponse carries a student's grade point average.
type GPAResponse struct {
	StudentIndex int     `json:"student_index"`
	GPA          float64 `json:"gpa"`
}

// TopStudentResponse identifies the student with the highest GPA.
type TopStudentResponse struct {
	StudentIndex int            `json:"student_index"`
	Student      models.Student `json:"student"`
	GPA          float64        `json:"gpa"`
}

// SchoolSummary reports registry sizes.
type SchoolSummary struct {
	Students int `json:"students"`
	Courses  int `json:"courses"`
}
