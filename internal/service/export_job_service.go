package service

import (
	"context"
	"errors"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-records/internal/dto"
	"github.com/noah-isme/school-records/internal/models"
	"github.com/noah-isme/school-records/internal/repository"
	appErrors "github.com/noah-isme/school-records/pkg/errors"
	"github.com/noah-isme/school-records/pkg/jobs"
)

const cleanupBatchSize = 100

type exportJobStore interface {
	Create(ctx context.Context, job *models.ExportJob) error
	GetByID(ctx context.Context, id string) (*models.ExportJob, error)
	Update(ctx context.Context, id string, params repository.UpdateExportJobParams) error
	ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error)
	Delete(ctx context.Context, id string) error
}

type exportDispatcher interface {
	Enqueue(job jobs.Job[models.ExportFormat]) error
}

type exportGenerator interface {
	Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error)
}

type exportFiles interface {
	ParseToken(token string) (jobID, path string, expiresAt time.Time, err error)
	Open(path string) (*os.File, error)
	Delete(path string) error
	Cleanup(ttl time.Duration) ([]string, error)
}

// ExportJobConfig governs cleanup of finished exports.
type ExportJobConfig struct {
	ResultTTL       time.Duration
	CleanupInterval time.Duration
}

// ExportDownload aggregates resolved download data.
type ExportDownload struct {
	File      *os.File
	Filename  string
	Format    models.ExportFormat
	ExpiresAt time.Time
}

// ExportJobService manages the lifecycle of asynchronous report exports.
type ExportJobService struct {
	repo     exportJobStore
	queue    exportDispatcher
	files    exportFiles
	validate *validator.Validate
	logger   *zap.Logger
	cfg      ExportJobConfig
	now      func() time.Time
}

// NewExportJobService constructs the export job service.
func NewExportJobService(repo exportJobStore, queue exportDispatcher, files exportFiles, validate *validator.Validate, logger *zap.Logger, cfg ExportJobConfig) *ExportJobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportJobService{
		repo:     repo,
		queue:    queue,
		files:    files,
		validate: validate,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// CreateJob records a queued export and hands it to the worker pool.
func (s *ExportJobService) CreateJob(ctx context.Context, req dto.ExportJobRequest, actor string) (*dto.ExportJobResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	job := &models.ExportJob{
		Format:    req.Format,
		Status:    models.ExportStatusQueued,
		CreatedBy: actor,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create export job")
	}
	if err := s.queue.Enqueue(jobs.Job[models.ExportFormat]{ID: job.ID, Payload: job.Format}); err != nil {
		s.markFailed(ctx, job.ID, "failed to enqueue job")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export job")
	}
	s.logger.Info("export job queued", zap.String("job_id", job.ID), zap.String("format", string(job.Format)), zap.String("actor", actor))
	return &dto.ExportJobResponse{ID: job.ID, Status: job.Status, Progress: job.Progress}, nil
}

// GetStatus reports the job's progress and, once finished, its download URL.
func (s *ExportJobService) GetStatus(ctx context.Context, id string) (*dto.ExportStatusResponse, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err)
	}
	return &dto.ExportStatusResponse{
		ID:         job.ID,
		Format:     job.Format,
		Status:     job.Status,
		Progress:   job.Progress,
		ResultURL:  job.ResultURL,
		Error:      job.ErrorMessage,
		CreatedAt:  job.CreatedAt,
		FinishedAt: job.FinishedAt,
	}, nil
}

// ResolveDownload validates token and opens the stored export file.
func (s *ExportJobService) ResolveDownload(ctx context.Context, token string) (*ExportDownload, error) {
	jobID, filePath, expiresAt, err := s.files.ParseToken(token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, s.lookupError(err)
	}
	if job.Status != models.ExportStatusFinished || job.FilePath != filePath {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "export not available")
	}
	file, err := s.files.Open(filePath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export file")
	}
	return &ExportDownload{
		File:      file,
		Filename:  path.Base(filePath),
		Format:    job.Format,
		ExpiresAt: expiresAt,
	}, nil
}

// StartCleanup purges expired exports every CleanupInterval until ctx ends.
func (s *ExportJobService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CleanupExpired(ctx)
			}
		}
	}()
}

// CleanupExpired deletes jobs, and their files, that finished more than
// ResultTTL ago.
func (s *ExportJobService) CleanupExpired(ctx context.Context) {
	cutoff := s.now().Add(-s.cfg.ResultTTL)
	for {
		expired, err := s.repo.ListFinishedBefore(ctx, cutoff, cleanupBatchSize)
		if err != nil {
			s.logger.Warn("export cleanup list failed", zap.Error(err))
			return
		}
		for _, job := range expired {
			if job.FilePath != "" {
				if err := s.files.Delete(job.FilePath); err != nil {
					s.logger.Warn("export cleanup delete failed", zap.String("job_id", job.ID), zap.Error(err))
				}
			}
			if err := s.repo.Delete(ctx, job.ID); err != nil {
				s.logger.Warn("export job delete failed", zap.String("job_id", job.ID), zap.Error(err))
			}
		}
		if len(expired) < cleanupBatchSize {
			break
		}
	}
	if removed, err := s.files.Cleanup(s.cfg.ResultTTL); err != nil {
		s.logger.Warn("export filesystem cleanup failed", zap.Error(err))
	} else if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("files", len(removed)))
	}
}

func (s *ExportJobService) markFailed(ctx context.Context, id, msg string) {
	failed := models.ExportStatusFailed
	progress := 100
	now := s.now().UTC()
	if err := s.repo.Update(ctx, id, repository.UpdateExportJobParams{
		Status:       &failed,
		Progress:     &progress,
		ErrorMessage: &msg,
		FinishedAt:   &now,
	}); err != nil {
		s.logger.Warn("failed to mark export job failed", zap.String("job_id", id), zap.Error(err))
	}
}

func (s *ExportJobService) lookupError(err error) error {
	if errors.Is(err, appErrors.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load export job")
}

// ExportWorker bridges queued export jobs to the ExportService.
type ExportWorker struct {
	repo       exportJobStore
	exporter   exportGenerator
	logger     *zap.Logger
	maxRetries int
	now        func() time.Time
}

// NewExportWorker constructs a worker. maxRetries should match the queue's.
func NewExportWorker(repo exportJobStore, exporter exportGenerator, maxRetries int, logger *zap.Logger) *ExportWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &ExportWorker{repo: repo, exporter: exporter, logger: logger, maxRetries: maxRetries, now: time.Now}
}

// Handle processes one queued export.
func (w *ExportWorker) Handle(ctx context.Context, job jobs.Job[models.ExportFormat]) error {
	record, err := w.repo.GetByID(ctx, job.ID)
	if err != nil {
		return err
	}
	processing := models.ExportStatusProcessing
	progress := 10
	if err := w.repo.Update(ctx, job.ID, repository.UpdateExportJobParams{Status: &processing, Progress: &progress}); err != nil {
		return err
	}

	result, err := w.exporter.Generate(ctx, record)
	if err != nil {
		msg := err.Error()
		params := repository.UpdateExportJobParams{ErrorMessage: &msg}
		if job.Attempt >= w.maxRetries {
			failed := models.ExportStatusFailed
			done := 100
			now := w.now().UTC()
			params.Status, params.Progress, params.FinishedAt = &failed, &done, &now
		} else {
			queued := models.ExportStatusQueued
			reset := 0
			params.Status, params.Progress = &queued, &reset
		}
		if updateErr := w.repo.Update(ctx, job.ID, params); updateErr != nil {
			w.logger.Warn("failed to record export failure", zap.String("job_id", job.ID), zap.Error(updateErr))
		}
		return err
	}

	finished := models.ExportStatusFinished
	progress = 100
	now := w.now().UTC()
	noError := ""
	if err := w.repo.Update(ctx, job.ID, repository.UpdateExportJobParams{
		Status:       &finished,
		Progress:     &progress,
		ResultURL:    &result.URL,
		FilePath:     &result.FilePath,
		ErrorMessage: &noError,
		FinishedAt:   &now,
	}); err != nil {
		w.logger.Warn("failed to mark export finished", zap.String("job_id", job.ID), zap.Error(err))
		return err
	}
	w.logger.Info("export finished", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
	return nil
}
