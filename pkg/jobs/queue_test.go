package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsJobs(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]string{}
	done := make(chan struct{}, 3)

	q := NewQueue("test", func(_ context.Context, job Job[string]) error {
		mu.Lock()
		seen[job.ID] = job.Payload
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(Job[string]{ID: id, Payload: "csv"}))
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("jobs were not processed")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[string]string{"a": "csv", "b": "csv", "c": "csv"}, seen)
}

func TestQueueRetriesUntilBudgetSpent(t *testing.T) {
	var calls int32
	finished := make(chan int, 1)

	q := NewQueue("retry", func(_ context.Context, job Job[int]) error {
		n := atomic.AddInt32(&calls, 1)
		if job.Attempt == 2 {
			finished <- int(n)
		}
		return errors.New("boom")
	}, QueueConfig{MaxRetries: 2, RetryDelay: time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job[int]{ID: "job"}))
	select {
	case n := <-finished:
		assert.Equal(t, 3, n)
	case <-time.After(2 * time.Second):
		t.Fatal("retries did not happen")
	}

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestEnqueueRequiresRunningQueue(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job[int]) error { return nil }, QueueConfig{})

	assert.ErrorIs(t, q.Enqueue(Job[int]{ID: "early"}), ErrNotRunning)

	q.Start(context.Background())
	q.Stop()
	assert.ErrorIs(t, q.Enqueue(Job[int]{ID: "late"}), ErrNotRunning)
}
