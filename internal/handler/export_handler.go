package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-records/internal/dto"
	"github.com/noah-isme/school-records/internal/middleware"
	"github.com/noah-isme/school-records/internal/service"
	"github.com/noah-isme/school-records/pkg/export"
	"github.com/noah-isme/school-records/pkg/response"
)

const anonymousActor = "anonymous"

type exportJobService interface {
	CreateJob(ctx context.Context, req dto.ExportJobRequest, actor string) (*dto.ExportJobResponse, error)
	GetStatus(ctx context.Context, id string) (*dto.ExportStatusResponse, error)
	ResolveDownload(ctx context.Context, token string) (*service.ExportDownload, error)
}

// ExportHandler exposes asynchronous report exports.
type ExportHandler struct {
	exports exportJobService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports exportJobService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Create godoc
// @Summary Queue a school report export
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.ExportJobRequest true "Export format"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/school/exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	var req dto.ExportJobRequest
	if !bindJSON(c, &req) {
		return
	}
	actor := anonymousActor
	if claims := middleware.ClaimsFromContext(c); claims != nil {
		actor = claims.Email
	}
	job, err := h.exports.CreateJob(c.Request.Context(), req, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job)
}

// Status godoc
// @Summary Export job status
// @Tags Reports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/school/exports/{id} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	status, err := h.exports.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// Download godoc
// @Summary Download a finished export
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /reports/files/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	download, err := h.exports.ResolveDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close() //nolint:errcheck

	var size int64 = -1
	if info, statErr := download.File.Stat(); statErr == nil {
		size = info.Size()
	}
	contentType := "application/octet-stream"
	if exporter, err := export.ForFormat(string(download.Format)); err == nil {
		contentType = exporter.ContentType()
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, size, contentType, download.File, nil)
}
