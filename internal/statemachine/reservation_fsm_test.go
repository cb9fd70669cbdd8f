package statemachine

import (
	"context"
	"testing"
	"time"

	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationFSM_Transitions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		from    string
		event   func(*ReservationFSM) error
		want    string
		wantErr bool
	}{
		{"approve pending", models.ReservationStatusPending, func(f *ReservationFSM) error { return f.Approve(ctx) }, models.ReservationStatusApproved, false},
		{"reject pending", models.ReservationStatusPending, func(f *ReservationFSM) error { return f.Reject(ctx) }, models.ReservationStatusRejected, false},
		{"revert approved", models.ReservationStatusApproved, func(f *ReservationFSM) error { return f.Revert(ctx) }, models.ReservationStatusPending, false},
		{"revert rejected", models.ReservationStatusRejected, func(f *ReservationFSM) error { return f.Revert(ctx) }, models.ReservationStatusPending, false},
		{"approve approved", models.ReservationStatusApproved, func(f *ReservationFSM) error { return f.Approve(ctx) }, models.ReservationStatusApproved, true},
		{"approve rejected", models.ReservationStatusRejected, func(f *ReservationFSM) error { return f.Approve(ctx) }, models.ReservationStatusRejected, true},
		{"reject approved", models.ReservationStatusApproved, func(f *ReservationFSM) error { return f.Reject(ctx) }, models.ReservationStatusApproved, true},
		{"revert pending", models.ReservationStatusPending, func(f *ReservationFSM) error { return f.Revert(ctx) }, models.ReservationStatusPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &models.Reservation{Status: tt.from}
			err := tt.event(NewReservationFSM(r))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, r.Status)
		})
	}
}

func TestReservationFSM_Can(t *testing.T) {
	f := NewReservationFSM(&models.Reservation{Status: models.ReservationStatusPending})
	assert.True(t, f.Can(EventApprove))
	assert.True(t, f.Can(EventReject))
	assert.False(t, f.Can(EventRevert))
}

func TestScheduleFSM_Pay(t *testing.T) {
	ctx := context.Background()
	paidAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, status := range []string{models.PaymentStatusPending, models.PaymentStatusOverdue} {
		entry := &models.PaymentSchedule{PaymentStatus: status}
		require.NoError(t, NewScheduleFSM(entry).Pay(ctx, paidAt))
		assert.Equal(t, models.PaymentStatusPaid, entry.PaymentStatus)
		require.NotNil(t, entry.PaidAt)
		assert.True(t, paidAt.Equal(*entry.PaidAt))
	}

	paid := &models.PaymentSchedule{PaymentStatus: models.PaymentStatusPaid}
	assert.ErrorIs(t, NewScheduleFSM(paid).Pay(ctx, paidAt), ErrInvalidTransition)
}

func TestScheduleFSM_MarkOverdue(t *testing.T) {
	ctx := context.Background()
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	entry := &models.PaymentSchedule{PaymentStatus: models.PaymentStatusPending, DueDate: due}
	assert.ErrorIs(t, NewScheduleFSM(entry).MarkOverdue(ctx, due.Add(-time.Hour)), ErrInvalidTransition)
	assert.Equal(t, models.PaymentStatusPending, entry.PaymentStatus)

	require.NoError(t, NewScheduleFSM(entry).MarkOverdue(ctx, due.Add(24*time.Hour)))
	assert.Equal(t, models.PaymentStatusOverdue, entry.PaymentStatus)

	assert.ErrorIs(t, NewScheduleFSM(entry).MarkOverdue(ctx, due.Add(48*time.Hour)), ErrInvalidTransition)
}
