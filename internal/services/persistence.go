package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sjperalta/fintera-homes/pkg/logger"
	"gorm.io/gorm"
)

const (
	persistenceAttempts = 2
	retryDelay          = 50 * time.Millisecond
)

// persistence runs units of database work under a per-attempt timeout and
// retries a unit once when it fails transiently.
type persistence struct {
	timeout time.Duration
}

func newPersistence(timeout time.Duration) persistence {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return persistence{timeout: timeout}
}

// run executes fn. Domain errors are returned as-is; any other failure is
// retried once if transient and then surfaced as *PersistenceError.
func (p persistence) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= persistenceAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
		err = fn(attemptCtx)
		cancel()

		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if isDomainError(err) {
			return err
		}
		if ctx.Err() != nil || !isTransient(err) || attempt == persistenceAttempts {
			break
		}

		logger.Warn("transient persistence failure, retrying",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)

		select {
		case <-ctx.Done():
			return &PersistenceError{Op: op, Err: ctx.Err()}
		case <-time.After(retryDelay):
		}
	}

	return &PersistenceError{Op: op, Err: err}
}

// isTransient classifies failures worth a second attempt: dropped
// connections, the per-attempt deadline, Postgres serialization failures and
// deadlocks, and errors pgconn marks safe to retry.
func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return true
		}
	}
	return false
}
