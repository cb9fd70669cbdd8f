package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/jobs"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/pricing"
	"github.com/sjperalta/fintera-homes/internal/repository"
	"github.com/sjperalta/fintera-homes/internal/statemachine"
	"github.com/sjperalta/fintera-homes/pkg/logger"
)

// largeChangePercent is the installment change above which a plan change is flagged
var largeChangePercent = decimal.NewFromInt(25)

// ContractResult is a contract together with its full installment schedule
type ContractResult struct {
	Contract  *models.Contract         `json:"contract"`
	Schedules []models.PaymentSchedule `json:"payment_schedules"`
	// Created is false when an existing contract was returned
	Created bool `json:"created"`
}

// PlanChangeImpact quantifies how a proposed plan differs from the current one
type PlanChangeImpact struct {
	MonthlyPaymentDifference    decimal.Decimal `json:"monthly_payment_difference"`
	MonthlyPaymentChangePercent decimal.Decimal `json:"monthly_payment_change_percent"`
	SchedulesToRecalculate      int             `json:"schedules_to_recalculate"`
}

// PlanChangeReport is the outcome of validating a plan change
type PlanChangeReport struct {
	Allowed             bool             `json:"allowed"`
	ValidationErrors    []string         `json:"validation_errors"`
	Warnings            []string         `json:"warnings"`
	Impact              PlanChangeImpact `json:"impact"`
	CurrentMonths       int              `json:"current_months"`
	NewMonths           int              `json:"new_months"`
	CurrentInstallment  decimal.Decimal  `json:"current_installment"`
	ProposedInstallment decimal.Decimal  `json:"proposed_installment"`
	PaidInstallments    int              `json:"paid_installments"`
	Version             int              `json:"version"`
}

// PlanChangeRequest carries the inputs of ChangePlan
type PlanChangeRequest struct {
	ContractID uint
	NewMonths  int
	Reason     *string
	// ExpectedVersion is the version the caller validated against. Any other
	// stored version fails with ErrConcurrentModification.
	ExpectedVersion int
	ActorID         uint
}

type ContractService struct {
	repos           *repository.Repositories
	paymentSchedule *PaymentScheduleService
	emailSvc        *EmailService
	auditSvc        *AuditService
	worker          *jobs.Worker
	store           persistence
	now             func() time.Time
}

func NewContractService(
	repos *repository.Repositories,
	paymentSchedule *PaymentScheduleService,
	emailSvc *EmailService,
	auditSvc *AuditService,
	worker *jobs.Worker,
	operationTimeout time.Duration,
) *ContractService {
	return &ContractService{
		repos:           repos,
		paymentSchedule: paymentSchedule,
		emailSvc:        emailSvc,
		auditSvc:        auditSvc,
		worker:          worker,
		store:           newPersistence(operationTimeout),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// CreateContract turns an approved reservation into a contract with a
// months-long installment schedule. Calling it again for the same
// reservation returns the existing contract.
func (s *ContractService) CreateContract(ctx context.Context, reservationID uint, months int, actorID uint) (*ContractResult, error) {
	if err := pricing.ValidatePlanMonths(months); err != nil {
		return nil, err
	}

	var result *ContractResult
	var reservation *models.Reservation

	err := s.store.run(ctx, "create contract", func(ctx context.Context) error {
		return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
			r, err := tx.Reservation.FindByIDForUpdate(ctx, reservationID)
			if err != nil {
				return err
			}
			existing, err := tx.Contract.FindByReservation(ctx, reservationID)
			if err != nil {
				return err
			}
			if existing != nil {
				result = &ContractResult{Contract: existing, Schedules: existing.PaymentSchedules}
				return nil
			}

			if r.Status != models.ReservationStatusApproved {
				return fmt.Errorf("%w: la reserva %s está en estado %s", ErrReservationNotApproved, r.TrackingNumber(), r.Status)
			}
			if err := ensurePropertyHeldBy(ctx, tx, r); err != nil {
				return err
			}

			now := s.now()
			split := pricing.ComputeDownpaymentSplit(r.Property.Price, r.ReservationFee)
			installment, err := pricing.ComputeMonthlyInstallment(split.RemainingDownpayment, months)
			if err != nil {
				return err
			}
			remaining := split.RemainingDownpayment.Round(2)

			contract := &models.Contract{
				ContractNumber:       models.BuildContractNumber(r.TrackingNumber(), now),
				ReservationID:        r.ID,
				PropertyID:           r.PropertyID,
				CreatedByID:          optionalID(actorID),
				PaymentPlanMonths:    months,
				TotalContractPrice:   r.Property.Price,
				DownpaymentTotal:     split.DownpaymentTotal.Round(2),
				BankFinancing:        split.BankFinancing.Round(2),
				ReservationFeePaid:   r.ReservationFee,
				RemainingDownpayment: remaining,
				RemainingBalance:     remaining,
				MonthlyInstallment:   installment.Round(2),
				ScheduleStartDate:    scheduleDate(now),
			}
			if err := tx.Contract.Create(ctx, contract); err != nil {
				return err
			}

			schedules, err := s.paymentSchedule.GenerateSchedule(contract.ID, contract.ScheduleStartDate, remaining, months)
			if err != nil {
				return err
			}
			if err := tx.PaymentSchedule.CreateBatch(ctx, schedules); err != nil {
				return err
			}

			if err := tx.Property.UpdateStatus(ctx, r.PropertyID, models.PropertyStatusSold); err != nil {
				return err
			}

			if split.FeeExceedsDownpayment {
				logger.Warn("reservation fee exceeds downpayment, remaining downpayment clamped to zero",
					slog.Uint64("reservation_id", uint64(r.ID)),
					slog.String("fee", r.ReservationFee.String()),
					slog.String("downpayment", split.DownpaymentTotal.String()),
				)
			}

			contract.PaymentSchedules = schedules
			result = &ContractResult{Contract: contract, Schedules: schedules, Created: true}
			reservation = r
			return nil
		})
	})

	if errors.Is(err, repository.ErrDuplicateKey) {
		// another request created the contract between our check and insert
		winner, findErr := s.GetContractByReservation(ctx, reservationID)
		if findErr != nil || winner == nil {
			return nil, fmt.Errorf("%w: contrato de la reserva %d", ErrUniqueConstraintViolation, reservationID)
		}
		return &ContractResult{Contract: winner, Schedules: winner.PaymentSchedules}, nil
	}
	if err != nil {
		return nil, err
	}

	if result.Created {
		contract := result.Contract
		logger.Info("contract created",
			slog.Uint64("contract_id", uint64(contract.ID)),
			slog.String("contract_number", contract.ContractNumber),
			slog.Int("months", months),
			slog.String("remaining_downpayment", contract.RemainingDownpayment.String()),
		)
		s.auditSvc.Record(ctx, actorID, models.AuditActionCreate, models.AuditEntityContract, contract.ID,
			fmt.Sprintf("Contrato %s creado para la reserva %s a %d meses. Cuota mensual: %s",
				contract.ContractNumber, reservation.TrackingNumber(), months, formatMoney(contract.MonthlyInstallment)))
		enqueue(s.worker, func(ctx context.Context) error {
			return s.emailSvc.SendContractCreated(ctx, contract, reservation)
		})
	}

	return result, nil
}

// ValidatePlanChange reports whether the contract's plan may move to
// newMonths and what the change would do. A refused change is reported
// through Allowed, not as an error.
func (s *ContractService) ValidatePlanChange(ctx context.Context, contractID uint, newMonths int) (*PlanChangeReport, error) {
	var report *PlanChangeReport
	err := s.store.run(ctx, "validate plan change", func(ctx context.Context) error {
		contract, err := s.repos.Contract.FindByID(ctx, contractID)
		if err != nil {
			return err
		}
		entries, err := s.repos.PaymentSchedule.FindByContract(ctx, contractID)
		if err != nil {
			return err
		}
		report = evaluatePlanChange(contract, entries, newMonths)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ChangePlan replaces the unpaid part of a contract's schedule with a plan
// of req.NewMonths. Paid installments are kept as they are.
func (s *ContractService) ChangePlan(ctx context.Context, req PlanChangeRequest) (*ContractResult, error) {
	var result *ContractResult
	var revision *models.PlanRevision

	err := s.store.run(ctx, "change plan", func(ctx context.Context) error {
		return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
			contract, err := tx.Contract.FindByIDForUpdate(ctx, req.ContractID)
			if err != nil {
				return err
			}
			if req.ExpectedVersion != contract.Version {
				return fmt.Errorf("%w: versión esperada %d, actual %d", ErrConcurrentModification, req.ExpectedVersion, contract.Version)
			}

			entries, err := tx.PaymentSchedule.FindByContract(ctx, contract.ID)
			if err != nil {
				return err
			}
			report := evaluatePlanChange(contract, entries, req.NewMonths)
			if !report.Allowed {
				return &PlanChangeRejectedError{Report: report}
			}

			paid := paidEntries(entries)
			replaced, err := tx.PaymentSchedule.DeleteUnpaidByContract(ctx, contract.ID)
			if err != nil {
				return err
			}

			remaining := remainingAfterPaid(contract, paid)
			fresh, err := s.paymentSchedule.Regenerate(contract.ID, contract.ScheduleStartDate, remaining, req.NewMonths, paid)
			if err != nil {
				return err
			}
			if err := tx.PaymentSchedule.CreateBatch(ctx, fresh); err != nil {
				return err
			}

			previousMonths := contract.PaymentPlanMonths
			previousInstallment := contract.MonthlyInstallment
			contract.PaymentPlanMonths = req.NewMonths
			contract.RemainingBalance = remaining
			contract.MonthlyInstallment = fresh[0].ScheduledAmount

			if err := tx.Contract.UpdateVersioned(ctx, contract, contract.Version); err != nil {
				if errors.Is(err, repository.ErrStaleVersion) {
					return fmt.Errorf("%w: contrato %d", ErrConcurrentModification, contract.ID)
				}
				return err
			}

			revision = &models.PlanRevision{
				ContractID:          contract.ID,
				PreviousMonths:      previousMonths,
				NewMonths:           req.NewMonths,
				PreviousInstallment: previousInstallment,
				NewInstallment:      contract.MonthlyInstallment,
				SchedulesReplaced:   int(replaced),
				Reason:              req.Reason,
				ActorID:             optionalID(req.ActorID),
			}
			if err := tx.PlanRevision.Create(ctx, revision); err != nil {
				return err
			}

			schedules := mergeSchedules(paid, fresh)
			contract.PaymentSchedules = schedules
			result = &ContractResult{Contract: contract, Schedules: schedules}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	contract := result.Contract
	logger.Info("payment plan changed",
		slog.Uint64("contract_id", uint64(contract.ID)),
		slog.Int("previous_months", revision.PreviousMonths),
		slog.Int("new_months", revision.NewMonths),
		slog.Int("schedules_replaced", revision.SchedulesReplaced),
	)

	details := fmt.Sprintf("Plan cambiado de %d a %d meses. Cuota: %s -> %s",
		revision.PreviousMonths, revision.NewMonths,
		formatMoney(revision.PreviousInstallment), formatMoney(revision.NewInstallment))
	if req.Reason != nil && *req.Reason != "" {
		details += ". Motivo: " + *req.Reason
	}
	s.auditSvc.Record(ctx, req.ActorID, models.AuditActionPlanChange, models.AuditEntityContract, contract.ID, details)

	previousMonths := revision.PreviousMonths
	enqueue(s.worker, func(ctx context.Context) error {
		reservation, err := s.repos.Reservation.FindByID(ctx, contract.ReservationID)
		if err != nil {
			return err
		}
		return s.emailSvc.SendPlanChanged(ctx, contract, reservation, previousMonths)
	})

	return result, nil
}

// GetContractByReservation returns the reservation's contract, or nil when it has none
func (s *ContractService) GetContractByReservation(ctx context.Context, reservationID uint) (*models.Contract, error) {
	var contract *models.Contract
	err := s.store.run(ctx, "get contract by reservation", func(ctx context.Context) error {
		var err error
		contract, err = s.repos.Contract.FindByReservation(ctx, reservationID)
		return err
	})
	return contract, err
}

// FindByIDWithSchedules gets a contract with its reservation, property and ordered schedule
func (s *ContractService) FindByIDWithSchedules(ctx context.Context, id uint) (*models.Contract, error) {
	var contract *models.Contract
	err := s.store.run(ctx, "find contract", func(ctx context.Context) error {
		var err error
		contract, err = s.repos.Contract.FindByIDWithSchedules(ctx, id)
		return err
	})
	return contract, err
}

func (s *ContractService) List(ctx context.Context, query *repository.ListQuery) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var total int64
	err := s.store.run(ctx, "list contracts", func(ctx context.Context) error {
		var err error
		contracts, total, err = s.repos.Contract.List(ctx, query)
		return err
	})
	return contracts, total, err
}

// Revisions returns the plan change history of a contract, newest first
func (s *ContractService) Revisions(ctx context.Context, contractID uint) ([]models.PlanRevision, error) {
	var revisions []models.PlanRevision
	err := s.store.run(ctx, "list plan revisions", func(ctx context.Context) error {
		if _, err := s.repos.Contract.FindByID(ctx, contractID); err != nil {
			return err
		}
		var err error
		revisions, err = s.repos.PlanRevision.FindByContract(ctx, contractID)
		return err
	})
	return revisions, err
}

// MarkInstallmentPaid records the collection of one installment and lowers
// the contract's remaining balance by its amount.
func (s *ContractService) MarkInstallmentPaid(ctx context.Context, contractID, scheduleID, actorID uint) (*ContractResult, error) {
	var result *ContractResult
	var entry *models.PaymentSchedule

	err := s.store.run(ctx, "mark installment paid", func(ctx context.Context) error {
		return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
			contract, err := tx.Contract.FindByIDForUpdate(ctx, contractID)
			if err != nil {
				return err
			}

			entry, err = tx.PaymentSchedule.FindByID(ctx, scheduleID)
			if err != nil {
				return err
			}
			if entry.ContractID != contract.ID {
				return fmt.Errorf("%w: la cuota %d no pertenece al contrato %d", ErrNotFound, scheduleID, contractID)
			}

			if err := statemachine.NewScheduleFSM(entry).Pay(ctx, s.now()); err != nil {
				return err
			}
			if err := tx.PaymentSchedule.Update(ctx, entry); err != nil {
				return err
			}

			balance := contract.RemainingBalance.Sub(entry.ScheduledAmount)
			if balance.IsNegative() {
				balance = decimal.Zero
			}
			contract.RemainingBalance = balance
			if err := tx.Contract.UpdateVersioned(ctx, contract, contract.Version); err != nil {
				if errors.Is(err, repository.ErrStaleVersion) {
					return fmt.Errorf("%w: contrato %d", ErrConcurrentModification, contract.ID)
				}
				return err
			}

			schedules, err := tx.PaymentSchedule.FindByContract(ctx, contract.ID)
			if err != nil {
				return err
			}
			contract.PaymentSchedules = schedules
			result = &ContractResult{Contract: contract, Schedules: schedules}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, models.AuditActionPay, models.AuditEntityPaymentSchedule, entry.ID,
		fmt.Sprintf("Cuota %d del contrato %s pagada: %s",
			entry.InstallmentNumber, result.Contract.ContractNumber, formatMoney(entry.ScheduledAmount)))

	return result, nil
}

// MarkOverdueInstallments flags every pending installment due before now as overdue
func (s *ContractService) MarkOverdueInstallments(ctx context.Context, now time.Time) (int64, error) {
	var marked int64
	err := s.store.run(ctx, "mark overdue installments", func(ctx context.Context) error {
		entries, err := s.repos.PaymentSchedule.FindPendingDueBefore(ctx, now)
		if err != nil {
			return err
		}

		marked, err = s.repos.PaymentSchedule.MarkOverdue(ctx, overdueIDs(ctx, entries, now))
		return err
	})
	if err != nil {
		return 0, err
	}

	if marked > 0 {
		logger.Info("installments marked overdue", slog.Int64("count", marked))
	}
	return marked, nil
}

// evaluatePlanChange applies the plan change rules to a contract and its
// current schedule without touching storage.
func evaluatePlanChange(contract *models.Contract, entries []models.PaymentSchedule, newMonths int) *PlanChangeReport {
	report := &PlanChangeReport{
		ValidationErrors:    []string{},
		Warnings:            []string{},
		CurrentMonths:       contract.PaymentPlanMonths,
		NewMonths:           newMonths,
		CurrentInstallment:  contract.MonthlyInstallment,
		ProposedInstallment: decimal.Zero,
		Version:             contract.Version,
		Impact: PlanChangeImpact{
			MonthlyPaymentDifference:    decimal.Zero,
			MonthlyPaymentChangePercent: decimal.Zero,
		},
	}

	paid := paidEntries(entries)
	report.PaidInstallments = len(paid)

	overdue := 0
	for _, entry := range entries {
		switch entry.PaymentStatus {
		case models.PaymentStatusPending:
			report.Impact.SchedulesToRecalculate++
		case models.PaymentStatusOverdue:
			report.Impact.SchedulesToRecalculate++
			overdue++
		}
	}

	if err := pricing.ValidatePlanMonths(newMonths); err != nil {
		report.ValidationErrors = append(report.ValidationErrors,
			fmt.Sprintf("el plazo debe estar entre %d y %d meses", pricing.MinPlanMonths, pricing.MaxPlanMonths))
		return report
	}

	if newMonths == contract.PaymentPlanMonths {
		report.ValidationErrors = append(report.ValidationErrors,
			fmt.Sprintf("el contrato ya tiene un plan de %d meses, no hay nada que cambiar", newMonths))
	}

	if len(entries) > 0 && report.Impact.SchedulesToRecalculate == 0 {
		report.ValidationErrors = append(report.ValidationErrors, "el contrato ya está pagado en su totalidad")
	}

	for _, entry := range paid {
		if entry.InstallmentNumber > newMonths {
			report.ValidationErrors = append(report.ValidationErrors,
				fmt.Sprintf("la cuota pagada #%d (vencimiento %s) queda fuera del nuevo plan de %d meses",
					entry.InstallmentNumber, entry.DueDate.Format(dateLayout), newMonths))
		}
	}

	if newMonths <= len(paid) {
		report.ValidationErrors = append(report.ValidationErrors,
			fmt.Sprintf("el nuevo plazo debe ser mayor que las %d cuotas ya pagadas", len(paid)))
	}

	if contract.ReservationFeePaid.GreaterThan(contract.DownpaymentTotal) {
		report.Warnings = append(report.Warnings,
			"la reserva pagada excedió la prima; el saldo de prima se fijó en cero")
	}

	if len(report.ValidationErrors) > 0 {
		return report
	}

	remaining := remainingAfterPaid(contract, paid)
	parts := pricing.SplitInstallments(remaining, newMonths-len(paid))
	report.ProposedInstallment = parts[0]

	diff := report.ProposedInstallment.Sub(report.CurrentInstallment)
	report.Impact.MonthlyPaymentDifference = diff
	if report.CurrentInstallment.IsPositive() {
		report.Impact.MonthlyPaymentChangePercent = diff.Div(report.CurrentInstallment).Mul(decimal.NewFromInt(100)).Round(2)
	}

	if report.Impact.MonthlyPaymentChangePercent.Abs().GreaterThan(largeChangePercent) {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("la cuota mensual cambia %s%%", report.Impact.MonthlyPaymentChangePercent.StringFixed(2)))
	}
	if overdue > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%d cuotas vencidas serán reprogramadas", overdue))
	}

	report.Allowed = true
	return report
}

func paidEntries(entries []models.PaymentSchedule) []models.PaymentSchedule {
	paid := make([]models.PaymentSchedule, 0, len(entries))
	for _, entry := range entries {
		if entry.IsPaid() {
			paid = append(paid, entry)
		}
	}
	return paid
}

// remainingAfterPaid is the downpayment still owed once paid installments are netted out
func remainingAfterPaid(contract *models.Contract, paid []models.PaymentSchedule) decimal.Decimal {
	remaining := contract.RemainingDownpayment
	for _, entry := range paid {
		remaining = remaining.Sub(entry.ScheduledAmount)
	}
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

func mergeSchedules(paid, fresh []models.PaymentSchedule) []models.PaymentSchedule {
	schedules := make([]models.PaymentSchedule, 0, len(paid)+len(fresh))
	schedules = append(schedules, paid...)
	schedules = append(schedules, fresh...)
	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].InstallmentNumber < schedules[j].InstallmentNumber
	})
	return schedules
}

func optionalID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

// overdueIDs returns the entries the installment machine lets move to
// overdue at now. Refused entries are skipped with a debug record.
func overdueIDs(ctx context.Context, entries []models.PaymentSchedule, now time.Time) []uint {
	ids := make([]uint, 0, len(entries))
	for i := range entries {
		if err := statemachine.NewScheduleFSM(&entries[i]).MarkOverdue(ctx, now); err != nil {
			logger.Debug("installment not marked overdue",
				slog.Uint64("schedule_id", uint64(entries[i].ID)),
				slog.Uint64("contract_id", uint64(entries[i].ContractID)),
				slog.String("status", entries[i].PaymentStatus),
				slog.String("error", err.Error()),
			)
			continue
		}
		ids = append(ids, entries[i].ID)
	}
	return ids
}
