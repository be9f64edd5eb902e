package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-records/internal/models"
	appErrors "github.com/noah-isme/school-records/pkg/errors"
)

func TestExportJobRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewExportJobRepository()

	job := &models.ExportJob{Format: models.ExportFormatCSV, Status: models.ExportStatusQueued}
	require.NoError(t, repo.Create(ctx, job))
	require.NotEmpty(t, job.ID)
	require.False(t, job.CreatedAt.IsZero())

	finished := models.ExportStatusFinished
	progress := 100
	url := "/api/v1/reports/files/token"
	msg := ""
	require.NoError(t, repo.Update(ctx, job.ID, UpdateExportJobParams{
		Status:       &finished,
		Progress:     &progress,
		ResultURL:    &url,
		ErrorMessage: &msg,
	}))

	stored, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusFinished, stored.Status)
	assert.Equal(t, 100, stored.Progress)
	assert.Equal(t, url, *stored.ResultURL)
	assert.Nil(t, stored.ErrorMessage)

	stored.Status = models.ExportStatusFailed
	again, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusFinished, again.Status, "GetByID returns a copy")

	assert.ErrorIs(t, repo.Create(ctx, job), appErrors.ErrConflict)

	require.NoError(t, repo.Delete(ctx, job.ID))
	_, err = repo.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, job.ID, UpdateExportJobParams{}), appErrors.ErrNotFound)
}

func TestExportJobRepositoryListFinishedBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewExportJobRepository()
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Create(ctx, &models.ExportJob{ID: id}))
		finishedAt := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Update(ctx, id, UpdateExportJobParams{FinishedAt: &finishedAt}))
	}
	require.NoError(t, repo.Create(ctx, &models.ExportJob{ID: "pending"}))

	jobs, err := repo.ListFinishedBefore(ctx, base.Add(90*time.Second), 0)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "c", jobs[0].ID)
	assert.Equal(t, "a", jobs[1].ID)

	jobs, err = repo.ListFinishedBefore(ctx, base.Add(time.Hour), 1)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "c", jobs[0].ID)
}
