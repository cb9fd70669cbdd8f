package statemachine

import (
	"context"
	"fmt"
	"time"

	"github.com/looplab/fsm"
	"github.com/sjperalta/fintera-homes/internal/models"
)

// Installment events
const (
	EventPay         = "pay"
	EventMarkOverdue = "mark_overdue"
)

// ScheduleFSM wraps a payment schedule entry with its state machine
type ScheduleFSM struct {
	entry *models.PaymentSchedule
	fsm   *fsm.FSM
}

// NewScheduleFSM creates a new installment state machine
func NewScheduleFSM(entry *models.PaymentSchedule) *ScheduleFSM {
	sfsm := &ScheduleFSM{
		entry: entry,
	}

	sfsm.fsm = fsm.NewFSM(
		entry.PaymentStatus,
		fsm.Events{
			// pending/overdue → paid
			{Name: EventPay, Src: []string{models.PaymentStatusPending, models.PaymentStatusOverdue}, Dst: models.PaymentStatusPaid},

			// pending → overdue
			{Name: EventMarkOverdue, Src: []string{models.PaymentStatusPending}, Dst: models.PaymentStatusOverdue},
		},
		fsm.Callbacks{},
	)

	return sfsm
}

// Pay marks the installment as collected at paidAt
func (s *ScheduleFSM) Pay(ctx context.Context, paidAt time.Time) error {
	if !s.entry.MayPay() {
		return fmt.Errorf("%w: installment cannot be paid in current state: %s", ErrInvalidTransition, s.entry.PaymentStatus)
	}

	if err := s.fsm.Event(ctx, EventPay); err != nil {
		return fmt.Errorf("%w: failed to pay installment: %v", ErrInvalidTransition, err)
	}

	s.entry.PaymentStatus = s.fsm.Current()
	s.entry.PaidAt = &paidAt
	return nil
}

// MarkOverdue flags a pending installment whose due date has passed
func (s *ScheduleFSM) MarkOverdue(ctx context.Context, now time.Time) error {
	if !s.entry.MayMarkOverdue(now) {
		return fmt.Errorf("%w: installment %d is not past due or not pending", ErrInvalidTransition, s.entry.InstallmentNumber)
	}

	if err := s.fsm.Event(ctx, EventMarkOverdue); err != nil {
		return fmt.Errorf("%w: failed to mark installment overdue: %v", ErrInvalidTransition, err)
	}

	s.entry.PaymentStatus = s.fsm.Current()
	return nil
}

// Current returns the current state
func (s *ScheduleFSM) Current() string {
	return s.fsm.Current()
}
