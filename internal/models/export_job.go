package models

import "time"

// ExportFormat enumerates downloadable report formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus captures the background job lifecycle.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// ExportJob tracks one asynchronous rendering of the school report.
type ExportJob struct {
	ID           string       `json:"id"`
	Format       ExportFormat `json:"format"`
	Status       ExportStatus `json:"status"`
	Progress     int          `json:"progress"`
	ResultURL    *string      `json:"result_url,omitempty"`
	FilePath     string       `json:"-"`
	CreatedBy    string       `json:"created_by"`
	CreatedAt    time.Time    `json:"created_at"`
	FinishedAt   *time.Time   `json:"finished_at,omitempty"`
	ErrorMessage *string      `json:"error_message,omitempty"`
}
