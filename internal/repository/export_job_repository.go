package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/school-records/internal/models"
	appErrors "github.com/noah-isme/school-records/pkg/errors"
)

// UpdateExportJobParams lists the mutable fields of an export job. Nil
// fields are left unchanged.
type UpdateExportJobParams struct {
	Status       *models.ExportStatus
	Progress     *int
	ResultURL    *string
	FilePath     *string
	ErrorMessage *string
	FinishedAt   *time.Time
}

// ExportJobRepository keeps export jobs in memory. Jobs do not survive a
// restart, matching the records they were rendered from.
type ExportJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]models.ExportJob
	now  func() time.Time
}

// NewExportJobRepository returns an empty repository.
func NewExportJobRepository() *ExportJobRepository {
	return &ExportJobRepository{jobs: make(map[string]models.ExportJob), now: time.Now}
}

// Create stores job, assigning an ID and creation time when unset.
func (r *ExportJobRepository) Create(_ context.Context, job *models.ExportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = r.now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.jobs[job.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, "export job already exists")
	}
	r.jobs[job.ID] = *job
	return nil
}

// GetByID returns a copy of the job or appErrors.ErrNotFound.
func (r *ExportJobRepository) GetByID(_ context.Context, id string) (*models.ExportJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &job, nil
}

// Update applies params to the job.
func (r *ExportJobRepository) Update(_ context.Context, id string, params UpdateExportJobParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return appErrors.ErrNotFound
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.Progress != nil {
		job.Progress = *params.Progress
	}
	if params.ResultURL != nil {
		job.ResultURL = params.ResultURL
	}
	if params.FilePath != nil {
		job.FilePath = *params.FilePath
	}
	if params.ErrorMessage != nil {
		if *params.ErrorMessage == "" {
			job.ErrorMessage = nil
		} else {
			job.ErrorMessage = params.ErrorMessage
		}
	}
	if params.FinishedAt != nil {
		job.FinishedAt = params.FinishedAt
	}
	r.jobs[id] = job
	return nil
}

// ListFinishedBefore returns up to limit jobs that finished before cutoff,
// oldest first.
func (r *ExportJobRepository) ListFinishedBefore(_ context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error) {
	r.mu.RLock()
	var result []models.ExportJob
	for _, job := range r.jobs {
		if job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			result = append(result, job)
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].FinishedAt.Before(*result[j].FinishedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Delete forgets the job.
func (r *ExportJobRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
	return nil
}
