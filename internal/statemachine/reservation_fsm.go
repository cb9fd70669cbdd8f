package statemachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sjperalta/fintera-homes/internal/models"
)

// ErrInvalidTransition is returned when an event is not allowed from the current state
var ErrInvalidTransition = errors.New("transición de estado inválida")

// Reservation events
const (
	EventApprove = "approve"
	EventReject  = "reject"
	EventRevert  = "revert"
)

// ReservationFSM wraps a reservation with its state machine
type ReservationFSM struct {
	reservation *models.Reservation
	fsm         *fsm.FSM
}

// NewReservationFSM creates a new reservation state machine
func NewReservationFSM(reservation *models.Reservation) *ReservationFSM {
	rfsm := &ReservationFSM{
		reservation: reservation,
	}

	rfsm.fsm = fsm.NewFSM(
		reservation.Status,
		fsm.Events{
			// pending → approved
			{Name: EventApprove, Src: []string{models.ReservationStatusPending}, Dst: models.ReservationStatusApproved},

			// pending → rejected
			{Name: EventReject, Src: []string{models.ReservationStatusPending}, Dst: models.ReservationStatusRejected},

			// approved/rejected → pending
			{Name: EventRevert, Src: []string{models.ReservationStatusApproved, models.ReservationStatusRejected}, Dst: models.ReservationStatusPending},
		},
		fsm.Callbacks{},
	)

	return rfsm
}

// Approve transitions reservation to approved state
func (r *ReservationFSM) Approve(ctx context.Context) error {
	if !r.reservation.MayApprove() {
		return fmt.Errorf("%w: reservation cannot be approved in current state: %s", ErrInvalidTransition, r.reservation.Status)
	}
	return r.fire(ctx, EventApprove)
}

// Reject transitions reservation to rejected state
func (r *ReservationFSM) Reject(ctx context.Context) error {
	if !r.reservation.MayReject() {
		return fmt.Errorf("%w: reservation cannot be rejected in current state: %s", ErrInvalidTransition, r.reservation.Status)
	}
	return r.fire(ctx, EventReject)
}

// Revert transitions a reviewed reservation back to pending
func (r *ReservationFSM) Revert(ctx context.Context) error {
	if !r.reservation.MayRevert() {
		return fmt.Errorf("%w: reservation cannot be reverted in current state: %s", ErrInvalidTransition, r.reservation.Status)
	}
	return r.fire(ctx, EventRevert)
}

func (r *ReservationFSM) fire(ctx context.Context, event string) error {
	if err := r.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("%w: failed to %s reservation: %v", ErrInvalidTransition, event, err)
	}

	r.reservation.Status = r.fsm.Current()
	return nil
}

// Current returns the current state
func (r *ReservationFSM) Current() string {
	return r.fsm.Current()
}

// Can checks if a transition is possible
func (r *ReservationFSM) Can(event string) bool {
	return r.fsm.Can(event)
}
