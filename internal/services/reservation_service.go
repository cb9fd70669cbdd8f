package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/jobs"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/repository"
	"github.com/sjperalta/fintera-homes/internal/statemachine"
	"github.com/sjperalta/fintera-homes/pkg/logger"
	"gorm.io/gorm"
)

// ReservationInput holds the intake fields of a new reservation
type ReservationInput struct {
	ClientName       string
	ClientEmail      string
	ClientPhone      string
	ClientAddress    *string
	EmployerName     *string
	Occupation       *string
	EmploymentStatus string
	YearsEmployed    int
	MonthlyIncome    decimal.Decimal
	OtherIncome      decimal.Decimal
	PropertyID       uint
	ReservationFee   decimal.Decimal
	Source           string
}

type ReservationService struct {
	repos    *repository.Repositories
	emailSvc *EmailService
	auditSvc *AuditService
	worker   *jobs.Worker
	store    persistence
	now      func() time.Time
}

func NewReservationService(repos *repository.Repositories, emailSvc *EmailService, auditSvc *AuditService, worker *jobs.Worker, operationTimeout time.Duration) *ReservationService {
	return &ReservationService{
		repos:    repos,
		emailSvc: emailSvc,
		auditSvc: auditSvc,
		worker:   worker,
		store:    newPersistence(operationTimeout),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create validates and stores a new pending reservation
func (s *ReservationService) Create(ctx context.Context, input ReservationInput, actorID uint) (*models.Reservation, error) {
	if err := validateReservationInput(input); err != nil {
		return nil, err
	}

	source := input.Source
	if source == "" {
		source = models.ReservationSourceWeb
	}

	reservation := &models.Reservation{
		ClientName:       strings.TrimSpace(input.ClientName),
		ClientEmail:      strings.TrimSpace(input.ClientEmail),
		ClientPhone:      input.ClientPhone,
		ClientAddress:    input.ClientAddress,
		EmployerName:     input.EmployerName,
		Occupation:       input.Occupation,
		EmploymentStatus: input.EmploymentStatus,
		YearsEmployed:    input.YearsEmployed,
		MonthlyIncome:    input.MonthlyIncome,
		OtherIncome:      input.OtherIncome,
		PropertyID:       input.PropertyID,
		ReservationFee:   input.ReservationFee,
		Status:           models.ReservationStatusPending,
		Source:           source,
	}
	if reservation.EmploymentStatus == "" {
		reservation.EmploymentStatus = "employed"
	}

	err := s.store.run(ctx, "create reservation", func(ctx context.Context) error {
		property, err := s.repos.Property.FindByID(ctx, input.PropertyID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: la propiedad %d no existe", ErrInvalidProperty, input.PropertyID)
		}
		if err != nil {
			return err
		}
		if property.Status == models.PropertyStatusSold {
			return fmt.Errorf("%w: la propiedad %s ya fue vendida", ErrInvalidProperty, property.Name)
		}
		if input.ReservationFee.GreaterThan(property.Price) {
			return fmt.Errorf("%w: la reserva (%s) excede el precio de la propiedad (%s)",
				ErrInvalidReservation, formatMoney(input.ReservationFee), formatMoney(property.Price))
		}

		reservation.ID = 0
		if err := s.repos.Reservation.Create(ctx, reservation); err != nil {
			return err
		}
		reservation.Property = *property
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, models.AuditActionCreate, models.AuditEntityReservation, reservation.ID,
		fmt.Sprintf("Reserva %s creada para %s sobre %s", reservation.TrackingNumber(), reservation.ClientName, reservation.Property.Name))

	return reservation, nil
}

func validateReservationInput(input ReservationInput) error {
	if strings.TrimSpace(input.ClientName) == "" {
		return fmt.Errorf("%w: el nombre del cliente es requerido", ErrInvalidReservation)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(input.ClientEmail)); err != nil {
		return fmt.Errorf("%w: correo electrónico inválido", ErrInvalidReservation)
	}
	if input.PropertyID == 0 {
		return fmt.Errorf("%w: la propiedad es requerida", ErrInvalidReservation)
	}
	if input.ReservationFee.IsNegative() {
		return fmt.Errorf("%w: el monto de reserva no puede ser negativo", ErrInvalidReservation)
	}
	if input.MonthlyIncome.IsNegative() || input.OtherIncome.IsNegative() {
		return fmt.Errorf("%w: los ingresos no pueden ser negativos", ErrInvalidReservation)
	}
	switch input.Source {
	case "", models.ReservationSourceWeb, models.ReservationSourceMobile, models.ReservationSourceOffice:
	default:
		return fmt.Errorf("%w: origen desconocido %q", ErrInvalidReservation, input.Source)
	}
	return nil
}

// Approve moves a pending reservation to approved and holds its property
func (s *ReservationService) Approve(ctx context.Context, id, actorID uint) (*models.Reservation, error) {
	reservation, err := s.transition(ctx, "approve reservation", id, actorID, func(ctx context.Context, tx *repository.Repositories, r *models.Reservation) error {
		if err := statemachine.NewReservationFSM(r).Approve(ctx); err != nil {
			return err
		}
		if err := ensurePropertyHeldBy(ctx, tx, r); err != nil {
			return err
		}
		r.RejectionReason = nil
		if r.Property.IsAvailable() {
			if err := tx.Property.UpdateStatus(ctx, r.PropertyID, models.PropertyStatusReserved); err != nil {
				return err
			}
			r.Property.Status = models.PropertyStatusReserved
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, models.AuditActionApprove, models.AuditEntityReservation, reservation.ID,
		fmt.Sprintf("Reserva %s aprobada", reservation.TrackingNumber()))
	enqueue(s.worker, func(ctx context.Context) error {
		return s.emailSvc.SendReservationApproved(ctx, reservation)
	})

	return reservation, nil
}

// ensurePropertyHeldBy fails unless r is the only approved reservation on an
// unsold property
func ensurePropertyHeldBy(ctx context.Context, tx *repository.Repositories, r *models.Reservation) error {
	if r.Property.Status == models.PropertyStatusSold {
		return fmt.Errorf("%w: la propiedad %s ya fue vendida", ErrPropertyUnavailable, r.Property.Name)
	}
	others, err := tx.Reservation.CountApprovedForProperty(ctx, r.PropertyID, r.ID)
	if err != nil {
		return err
	}
	if others > 0 {
		return fmt.Errorf("%w: la propiedad %s está reservada por otra solicitud", ErrPropertyUnavailable, r.Property.Name)
	}
	return nil
}

// Reject moves a pending reservation to rejected, storing reason or the default one
func (s *ReservationService) Reject(ctx context.Context, id, actorID uint, reason *string) (*models.Reservation, error) {
	stored := models.DefaultRejectionReason
	if reason != nil && strings.TrimSpace(*reason) != "" {
		stored = strings.TrimSpace(*reason)
	}

	reservation, err := s.transition(ctx, "reject reservation", id, actorID, func(ctx context.Context, tx *repository.Repositories, r *models.Reservation) error {
		if err := statemachine.NewReservationFSM(r).Reject(ctx); err != nil {
			return err
		}
		r.RejectionReason = &stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, models.AuditActionReject, models.AuditEntityReservation, reservation.ID,
		fmt.Sprintf("Reserva %s rechazada. Motivo: %s", reservation.TrackingNumber(), stored))
	enqueue(s.worker, func(ctx context.Context) error {
		return s.emailSvc.SendReservationRejected(ctx, reservation)
	})

	return reservation, nil
}

// Revert moves a reviewed reservation back to pending. A contract already
// created from it stays active; the audit entry records that it exists.
func (s *ReservationService) Revert(ctx context.Context, id, actorID uint) (*models.Reservation, error) {
	var contract *models.Contract

	reservation, err := s.transition(ctx, "revert reservation", id, actorID, func(ctx context.Context, tx *repository.Repositories, r *models.Reservation) error {
		wasApproved := r.Status == models.ReservationStatusApproved
		if err := statemachine.NewReservationFSM(r).Revert(ctx); err != nil {
			return err
		}
		r.RejectionReason = nil

		var err error
		contract, err = tx.Contract.FindByReservation(ctx, r.ID)
		if err != nil {
			return err
		}
		if wasApproved && contract == nil && r.Property.Status == models.PropertyStatusReserved {
			if err := tx.Property.UpdateStatus(ctx, r.PropertyID, models.PropertyStatusAvailable); err != nil {
				return err
			}
			r.Property.Status = models.PropertyStatusAvailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Reserva %s revertida a pendiente", reservation.TrackingNumber())
	if contract != nil {
		logger.Warn("reservation reverted with an active contract",
			slog.Uint64("reservation_id", uint64(reservation.ID)),
			slog.String("contract_number", contract.ContractNumber),
		)
		details += fmt.Sprintf(". El contrato %s permanece activo", contract.ContractNumber)
	}
	s.auditSvc.Record(ctx, actorID, models.AuditActionRevert, models.AuditEntityReservation, reservation.ID, details)

	return reservation, nil
}

// transition locks the reservation, applies fn and stores the result with the reviewer stamp
func (s *ReservationService) transition(ctx context.Context, op string, id, actorID uint, fn func(ctx context.Context, tx *repository.Repositories, r *models.Reservation) error) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := s.store.run(ctx, op, func(ctx context.Context) error {
		return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
			r, err := tx.Reservation.FindByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if err := fn(ctx, tx, r); err != nil {
				return err
			}

			reviewedAt := s.now()
			r.ReviewedAt = &reviewedAt
			r.ReviewedByID = optionalID(actorID)
			if err := tx.Reservation.Update(ctx, r); err != nil {
				return err
			}
			reservation = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info("reservation status changed",
		slog.String("op", op),
		slog.Uint64("reservation_id", uint64(reservation.ID)),
		slog.String("status", reservation.Status),
	)
	return reservation, nil
}

func (s *ReservationService) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := s.store.run(ctx, "find reservation", func(ctx context.Context) error {
		var err error
		reservation, err = s.repos.Reservation.FindByID(ctx, id)
		return err
	})
	return reservation, err
}

func (s *ReservationService) List(ctx context.Context, query *repository.ListQuery) ([]models.Reservation, int64, error) {
	var reservations []models.Reservation
	var total int64
	err := s.store.run(ctx, "list reservations", func(ctx context.Context) error {
		var err error
		reservations, total, err = s.repos.Reservation.List(ctx, query)
		return err
	})
	return reservations, total, err
}

// GetStats counts reservations per status
func (s *ReservationService) GetStats(ctx context.Context) (*repository.ReservationStats, error) {
	var stats *repository.ReservationStats
	err := s.store.run(ctx, "reservation stats", func(ctx context.Context) error {
		var err error
		stats, err = s.repos.Reservation.GetStats(ctx)
		return err
	})
	return stats, err
}
