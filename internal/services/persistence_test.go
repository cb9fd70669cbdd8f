package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPersistence_RetriesTransientOnce(t *testing.T) {
	store := newPersistence(time.Second)

	calls := 0
	err := store.run(context.Background(), "op", func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return driver.ErrBadConn
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestPersistence_SurfacesAfterSecondFailure(t *testing.T) {
	store := newPersistence(time.Second)

	calls := 0
	err := store.run(context.Background(), "save contract", func(ctx context.Context) error {
		calls++
		return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
	})
	assert.Equal(t, 2, calls)
	assert.ErrorIs(t, err, ErrPersistence)

	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Equal(t, "save contract", persistenceErr.Op)

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)
}

func TestPersistence_PerAttemptTimeout(t *testing.T) {
	store := newPersistence(20 * time.Millisecond)

	calls := 0
	err := store.run(context.Background(), "slow", func(ctx context.Context) error {
		calls++
		<-ctx.Done()
		return ctx.Err()
	})
	assert.Equal(t, 2, calls)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPersistence_NonTransientIsNotRetried(t *testing.T) {
	store := newPersistence(time.Second)

	calls := 0
	err := store.run(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return errors.New("syntax error")
	})
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestPersistence_DomainErrorsPassThrough(t *testing.T) {
	store := newPersistence(time.Second)

	err := store.run(context.Background(), "op", func(ctx context.Context) error {
		return gorm.ErrRecordNotFound
	})
	assert.Equal(t, ErrNotFound, err)

	err = store.run(context.Background(), "op", func(ctx context.Context) error {
		return &PlanChangeRejectedError{Report: &PlanChangeReport{ValidationErrors: []string{"x"}}}
	})
	assert.ErrorIs(t, err, ErrPlanChangeRejected)
	assert.NotErrorIs(t, err, ErrPersistence)
}

func TestPersistence_CancelledParentStopsRetry(t *testing.T) {
	store := newPersistence(time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := store.run(ctx, "op", func(ctx context.Context) error {
		calls++
		cancel()
		return driver.ErrBadConn
	})
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, ErrPersistence)
}
