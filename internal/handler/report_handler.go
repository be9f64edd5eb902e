package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-records/internal/middleware"
	"github.com/noah-isme/school-records/internal/service"
	"github.com/noah-isme/school-records/pkg/response"
)

type reportService interface {
	Text(ctx context.Context) (string, bool, error)
	Export(ctx context.Context, format string) (*service.ExportFile, error)
}

// ReportHandler serves the whole-school report.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// School godoc
// @Summary Formatted school report
// @Description Students, courses and every student's enrollments with GPA, as plain text.
// @Tags Reports
// @Produce plain
// @Success 200 {string} string
// @Router /reports/school [get]
func (h *ReportHandler) School(c *gin.Context) {
	text, hit, err := h.reports.Text(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	if hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	response.Text(c, http.StatusOK, text)
}

// Export godoc
// @Summary Download the school report
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/school/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	file, err := h.reports.Export(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Content)
}
