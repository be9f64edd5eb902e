package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-records/internal/dto"
)

type summaryProvider interface {
	Summary(ctx context.Context) dto.SchoolSummary
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics http.Handler
	school  summaryProvider
}

// NewMetricsHandler constructs a metrics handler. metrics may be nil.
func NewMetricsHandler(metrics http.Handler, school summaryProvider) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, school: school}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.ServeHTTP(c.Writer, c.Request)
}

// Health reports liveness.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness together with the registry size.
func (h *MetricsHandler) Ready(c *gin.Context) {
	body := gin.H{"status": "ready"}
	if h.school != nil {
		body["school"] = h.school.Summary(c.Request.Context())
	}
	c.JSON(http.StatusOK, body)
}
