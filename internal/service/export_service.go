package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-records/internal/models"
)

type fileStorage interface {
	Save(name string, data []byte) (string, error)
	Open(name string) (*os.File, error)
	Delete(name string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type downloadSigner interface {
	Sign(id, name string) (string, time.Time, error)
	Verify(token string) (id, name string, expiresAt time.Time, err error)
}

type reportExporter interface {
	Export(ctx context.Context, format string) (*ExportFile, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	FilePath  string
	Token     string
	URL       string
	Format    models.ExportFormat
	ExpiresAt time.Time
}

// ExportService renders export jobs to files and signs their download links.
type ExportService struct {
	reports reportExporter
	storage fileStorage
	signer  downloadSigner
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(reports reportExporter, storage fileStorage, signer downloadSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.APIPrefix = strings.TrimRight(cfg.APIPrefix, "/"); cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	return &ExportService{reports: reports, storage: storage, signer: signer, logger: logger, cfg: cfg}
}

// Generate renders the school report in the job's format and stores it under
// the job's ID.
func (s *ExportService) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("export job is nil")
	}
	file, err := s.reports.Export(ctx, string(job.Format))
	if err != nil {
		return nil, err
	}

	path, err := s.storage.Save(job.ID+"/"+file.Filename, file.Content)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.signer.Sign(job.ID, path)
	if err != nil {
		return nil, err
	}
	s.logger.Info("export stored", zap.String("job_id", job.ID), zap.String("path", path))

	return &ExportResult{
		FilePath:  path,
		Token:     token,
		URL:       fmt.Sprintf("%s/reports/files/%s", s.cfg.APIPrefix, token),
		Format:    job.Format,
		ExpiresAt: expiresAt,
	}, nil
}

// ParseToken validates a download token.
func (s *ExportService) ParseToken(token string) (jobID, path string, expiresAt time.Time, err error) {
	return s.signer.Verify(token)
}

// Open returns a handle to a stored export.
func (s *ExportService) Open(path string) (*os.File, error) {
	return s.storage.Open(path)
}

// Delete removes a stored export.
func (s *ExportService) Delete(path string) error {
	return s.storage.Delete(path)
}

// Cleanup removes files older than ttl, or the configured ResultTTL when
// ttl <= 0.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}
