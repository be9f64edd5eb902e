package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-records/internal/dto"
	"github.com/noah-isme/school-records/internal/service"
	"github.com/noah-isme/school-records/pkg/response"
)

type enrollmentService interface {
	Enrollments(ctx context.Context, studentIndex int) (*dto.StudentEnrollments, error)
	Enrol(ctx context.Context, studentIndex int, req service.EnrolRequest) (*dto.EnrollmentItem, error)
	Withdraw(ctx context.Context, studentIndex, courseIndex int) error
	AssignGrade(ctx context.Context, studentIndex, courseIndex int, req service.AssignGradeRequest) (*dto.EnrollmentItem, error)
}

// EnrollmentHandler exposes a student's enrollments and grades.
type EnrollmentHandler struct {
	enrollments enrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// List godoc
// @Summary List a student's enrollments
// @Tags Enrollments
// @Produce json
// @Param index path int true "Student index"
// @Success 200 {object} response.Envelope
// @Router /students/{index}/enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	studentIndex, ok := indexParam(c, "index")
	if !ok {
		return
	}
	enrollments, err := h.enrollments.Enrollments(c.Request.Context(), studentIndex)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments)
}

// Enrol godoc
// @Summary Enrol a student in a course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param index path int true "Student index"
// @Param payload body service.EnrolRequest true "Course to enrol in"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/{index}/enrollments [post]
func (h *EnrollmentHandler) Enrol(c *gin.Context) {
	studentIndex, ok := indexParam(c, "index")
	if !ok {
		return
	}
	var req service.EnrolRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.enrollments.Enrol(c.Request.Context(), studentIndex, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Withdraw godoc
// @Summary Withdraw a student from a course
// @Tags Enrollments
// @Param index path int true "Student index"
// @Param course path int true "Course index"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /students/{index}/enrollments/{course} [delete]
func (h *EnrollmentHandler) Withdraw(c *gin.Context) {
	studentIndex, ok := indexParam(c, "index")
	if !ok {
		return
	}
	courseIndex, ok := indexParam(c, "course")
	if !ok {
		return
	}
	if err := h.enrollments.Withdraw(c.Request.Context(), studentIndex, courseIndex); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AssignGrade godoc
// @Summary Assign a letter grade
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param index path int true "Student index"
// @Param course path int true "Course index"
// @Param payload body service.AssignGradeRequest true "Grade A, B, C, D or F"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{index}/enrollments/{course}/grade [put]
func (h *EnrollmentHandler) AssignGrade(c *gin.Context) {
	studentIndex, ok := indexParam(c, "index")
	if !ok {
		return
	}
	courseIndex, ok := indexParam(c, "course")
	if !ok {
		return
	}
	var req service.AssignGradeRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.enrollments.AssignGrade(c.Request.Context(), studentIndex, courseIndex, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}
