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

type courseService interface {
	ListCourses(ctx context.Context) []dto.CourseItem
	GetCourse(ctx context.Context, index int) (*dto.CourseItem, error)
	FindCourse(ctx context.Context, name string) (*dto.CourseItem, error)
	OfferCourse(ctx context.Context, req service.OfferCourseRequest) (*dto.CourseItem, error)
	RemoveCourse(ctx context.Context, index int) error
}

// CourseHandler exposes course endpoints.
type CourseHandler struct {
	courses courseService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses courseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List godoc
// @Summary List offered courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses := h.courses.ListCourses(c.Request.Context())
	meta := middleware.Meta(c)
	meta["total"] = len(courses)
	response.JSON(c, http.StatusOK, courses, meta)
}

// Search godoc
// @Summary Find a course by name
// @Tags Courses
// @Produce json
// @Param name query string true "Course name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/search [get]
func (h *CourseHandler) Search(c *gin.Context) {
	course, err := h.courses.FindCourse(c.Request.Context(), strings.TrimSpace(c.Query("name")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Get godoc
// @Summary Get the course at an index
// @Tags Courses
// @Produce json
// @Param index path int true "Course index"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{index} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	index, ok := indexParam(c, "index")
	if !ok {
		return
	}
	course, err := h.courses.GetCourse(c.Request.Context(), index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create godoc
// @Summary Offer a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.OfferCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.OfferCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.courses.OfferCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Delete godoc
// @Summary Remove a course and withdraw its students
// @Description Courses after the removed one move down by one index.
// @Tags Courses
// @Param index path int true "Course index"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /courses/{index} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	index, ok := indexParam(c, "index")
	if !ok {
		return
	}
	if err := h.courses.RemoveCourse(c.Request.Context(), index); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
