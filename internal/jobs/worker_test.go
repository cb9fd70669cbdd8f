package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_EnqueueAsyncTracksFailures(t *testing.T) {
	w := NewWorker(1)

	var ran atomic.Int32
	w.EnqueueAsync(func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	w.EnqueueAsync(func(ctx context.Context) error {
		ran.Add(1)
		return errors.New("boom")
	})
	w.EnqueueAsync(func(ctx context.Context) error {
		ran.Add(1)
		panic("kaboom")
	})

	require.Eventually(t, func() bool {
		return w.GetStats().CompletedJobs == 3
	}, time.Second, 5*time.Millisecond)
	w.Shutdown()

	stats := w.GetStats()
	assert.Equal(t, int32(3), ran.Load())
	assert.Equal(t, int64(2), stats.FailedJobs)
	assert.Equal(t, 0, stats.ActiveJobs)
}

func TestWorker_ScheduleEveryImmediateRecordsRuns(t *testing.T) {
	w := NewWorker(1)

	calls := make(chan struct{}, 10)
	w.ScheduleEveryImmediate("overdue_marker", 10*time.Millisecond, func(ctx context.Context) error {
		calls <- struct{}{}
		return nil
	})

	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("scheduled job did not run")
		}
	}
	w.Shutdown()

	run, ok := w.GetStats().Scheduled["overdue_marker"]
	require.True(t, ok)
	assert.Equal(t, "10ms", run.Interval)
	assert.GreaterOrEqual(t, run.Runs, int64(2))
	assert.Empty(t, run.LastError)
	assert.False(t, run.LastRunAt.IsZero())
}
