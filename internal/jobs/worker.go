package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sjperalta/fintera-homes/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs fire-and-forget side effects (client emails) and named periodic
// jobs (the overdue installment marker). Request handling never waits on it.
type Worker struct {
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	queue         chan Job
	asyncSem      chan struct{}
	maxConcurrent int
	stats         WorkerStats
	statsMu       sync.RWMutex
}

// WorkerStats holds statistics about the worker. CompletedJobs counts every
// finished job; FailedJobs is the subset that returned an error or panicked.
type WorkerStats struct {
	ActiveJobs    int                     `json:"active_jobs"`
	CompletedJobs int64                   `json:"completed_jobs"`
	FailedJobs    int64                   `json:"failed_jobs"`
	QueueLength   int                     `json:"queue_length"`
	MaxConcurrent int                     `json:"max_concurrent"`
	Scheduled     map[string]ScheduledRun `json:"scheduled"`
}

// ScheduledRun describes the last execution of a named periodic job
type ScheduledRun struct {
	Interval  string    `json:"interval"`
	LastRunAt time.Time `json:"last_run_at,omitempty"`
	LastError string    `json:"last_error,omitempty"`
	Runs      int64     `json:"runs"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	// Allow 2x workers for async jobs
	asyncLimit := numWorkers * 2
	if asyncLimit < 10 {
		asyncLimit = 10
	}

	w := &Worker{
		ctx:           ctx,
		cancel:        cancel,
		queue:         make(chan Job, 100),
		asyncSem:      make(chan struct{}, asyncLimit),
		maxConcurrent: asyncLimit,
		stats:         WorkerStats{Scheduled: make(map[string]ScheduledRun)},
	}

	// Start worker goroutines
	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to be processed by the worker pool
func (w *Worker) Enqueue(job Job) {
	select {
	case w.queue <- job:
	default:
		logger.Warn("[Worker] Queue full, running job synchronously")
		if err := job(w.ctx); err != nil {
			logger.Error(fmt.Sprintf("[Worker] Job error: %v", err))
		}
	}
}

// EnqueueAsync runs a job in a new goroutine (fire-and-forget), bounded by semaphore
func (w *Worker) EnqueueAsync(job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		// Acquire semaphore to limit concurrency
		select {
		case w.asyncSem <- struct{}{}:
		case <-w.ctx.Done():
			return
		}
		defer func() { <-w.asyncSem }()

		w.trackJobStart()
		defer w.trackJobEnd()

		// Recover from panics
		defer func() {
			if r := recover(); r != nil {
				logger.Error(fmt.Sprintf("[Worker] Async job panic: %v", r))
				w.trackJobFailure()
			}
		}()

		if err := job(w.ctx); err != nil {
			logger.Error(fmt.Sprintf("[Worker] Async job error: %v", err))
			w.trackJobFailure()
		}
	}()
}

// process handles jobs from the queue
func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.trackJobStart()
			start := time.Now()
			if err := job(w.ctx); err != nil {
				logger.Error(fmt.Sprintf("[Worker %d] Job error: %v", workerID, err))
				w.trackJobFailure()
			} else {
				logger.Debug(fmt.Sprintf("[Worker %d] Job completed in %v", workerID, time.Since(start)))
			}
			w.trackJobEnd()
		}
	}
}

// ScheduleEvery runs a named job at fixed intervals. The first run happens after the interval (not at startup).
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, false, job)
}

// ScheduleEveryImmediate runs a named job once at startup, then at fixed
// intervals, so a restarted process catches up without waiting a full interval.
func (w *Worker) ScheduleEveryImmediate(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, true, job)
}

func (w *Worker) schedule(name string, interval time.Duration, immediate bool, job Job) {
	w.statsMu.Lock()
	w.stats.Scheduled[name] = ScheduledRun{Interval: interval.String()}
	w.statsMu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if immediate {
			w.runScheduledJob(name, job)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.runScheduledJob(name, job)
			}
		}
	}()
}

func (w *Worker) runScheduledJob(name string, job Job) {
	var err error
	w.trackJobStart()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			logger.Error("[Scheduler] Job failed", slog.String("job", name), slog.String("error", err.Error()))
			w.trackJobFailure()
		} else {
			logger.Info("[Scheduler] Job completed", slog.String("job", name), slog.Duration("elapsed", time.Since(start)))
		}
		w.trackScheduledRun(name, start, err)
		w.trackJobEnd()
	}()

	err = job(w.ctx)
}

// Shutdown gracefully stops all workers
func (w *Worker) Shutdown() {
	w.cancel()
	close(w.queue)
	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.MaxConcurrent = w.maxConcurrent
	stats.Scheduled = make(map[string]ScheduledRun, len(w.stats.Scheduled))
	for name, run := range w.stats.Scheduled {
		stats.Scheduled[name] = run
	}
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}

func (w *Worker) trackScheduledRun(name string, at time.Time, err error) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	run := w.stats.Scheduled[name]
	run.LastRunAt = at
	run.Runs++
	run.LastError = ""
	if err != nil {
		run.LastError = err.Error()
	}
	w.stats.Scheduled[name] = run
}
