package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-records/internal/dto"
	"github.com/noah-isme/school-records/internal/middleware"
	"github.com/noah-isme/school-records/internal/service"
	"github.com/noah-isme/school-records/pkg/response"
)

type studentService interface {
	ListStudents(ctx context.Context) []dto.StudentItem
	GetStudent(ctx context.Context, index int) (*dto.StudentItem, error)
	FindStudent(ctx context.Context, firstName, lastName string) (*dto.StudentItem, error)
	RegisterStudent(ctx context.Context, req service.RegisterStudentRequest) (*dto.StudentItem, error)
	RemoveStudent(ctx context.Context, index int) error
	GPA(ctx context.Context, studentIndex int) (*dto.GPAResponse, error)
	TopStudent(ctx context.Context) (*dto.TopStudentResponse, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List registered students
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students := h.students.ListStudents(c.Request.Context())
	meta := middleware.Meta(c)
	meta["total"] = len(students)
	response.JSON(c, http.StatusOK, students, meta)
}

// Search godoc
// @Summary Find a student by name
// @Tags Students
// @Produce json
// @Param first query string true "First name"
// @Param last query string true "Last name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/search [get]
func (h *StudentHandler) Search(c *gin.Context) {
	student, err := h.students.FindStudent(c.Request.Context(), strings.TrimSpace(c.Query("first")), strings.TrimSpace(c.Query("last")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Get godoc
// @Summary Get the student at an index
// @Tags Students
// @Produce json
// @Param index path int true "Student index"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{index} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	index, ok := indexParam(c, "index")
	if !ok {
		return
	}
	student, err := h.students.GetStudent(c.Request.Context(), index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Register a student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.RegisterStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.RegisterStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.RegisterStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Delete godoc
// @Summary Remove a student and its enrollments
// @Tags Students
// @Param index path int true "Student index"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /students/{index} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	index, ok := indexParam(c, "index")
	if !ok {
		return
	}
	if err := h.students.RemoveStudent(c.Request.Context(), index); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GPA godoc
// @Summary Get a student's GPA
// @Tags Students
// @Produce json
// @Param index path int true "Student index"
// @Success 200 {object} response.Envelope
// @Router /students/{index}/gpa [get]
func (h *StudentHandler) GPA(c *gin.Context) {
	index, ok := indexParam(c, "index")
	if !ok {
		return
	}
	gpa, err := h.students.GPA(c.Request.Context(), index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gpa)
}

// Top godoc
// @Summary Get the student with the highest GPA
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/top [get]
func (h *StudentHandler) Top(c *gin.Context) {
	top, err := h.students.TopStudent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, top)
}
