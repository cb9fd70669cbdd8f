package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/pricing"
)

// PaymentScheduleService expands a plan into dated installment records
type PaymentScheduleService struct{}

// NewPaymentScheduleService creates a new payment schedule service
func NewPaymentScheduleService() *PaymentScheduleService {
	return &PaymentScheduleService{}
}

// GenerateSchedule builds months pending installments for contractID. Entry i
// (1-based) is due AddMonths(startDate, i) and amounts come from
// pricing.SplitInstallments, so they sum to total rounded to cents. Entries
// are returned in ascending installment order and are not persisted here.
func (s *PaymentScheduleService) GenerateSchedule(contractID uint, startDate time.Time, total decimal.Decimal, months int) ([]models.PaymentSchedule, error) {
	if err := pricing.ValidatePlanMonths(months); err != nil {
		return nil, err
	}

	numbers := make([]int, months)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return s.build(contractID, startDate, total, numbers), nil
}

// Regenerate builds the unpaid part of a revised plan of newMonths. The
// installment numbers held by preserved entries are skipped and remaining is
// spread over the free numbers, each keeping its calendar slot relative to
// startDate.
func (s *PaymentScheduleService) Regenerate(contractID uint, startDate time.Time, remaining decimal.Decimal, newMonths int, preserved []models.PaymentSchedule) ([]models.PaymentSchedule, error) {
	if err := pricing.ValidatePlanMonths(newMonths); err != nil {
		return nil, err
	}

	held := make(map[int]bool, len(preserved))
	for _, entry := range preserved {
		if entry.InstallmentNumber > newMonths {
			return nil, fmt.Errorf("%w: la cuota pagada %d queda fuera de un plan de %d meses", ErrPlanChangeRejected, entry.InstallmentNumber, newMonths)
		}
		held[entry.InstallmentNumber] = true
	}

	numbers := make([]int, 0, newMonths-len(held))
	for n := 1; n <= newMonths; n++ {
		if !held[n] {
			numbers = append(numbers, n)
		}
	}
	if len(numbers) == 0 {
		return nil, fmt.Errorf("%w: no quedan cuotas por programar", ErrPlanChangeRejected)
	}

	return s.build(contractID, startDate, remaining, numbers), nil
}

func (s *PaymentScheduleService) build(contractID uint, startDate time.Time, total decimal.Decimal, numbers []int) []models.PaymentSchedule {
	amounts := pricing.SplitInstallments(total, len(numbers))

	entries := make([]models.PaymentSchedule, len(numbers))
	for i, n := range numbers {
		entries[i] = models.PaymentSchedule{
			ContractID:        contractID,
			InstallmentNumber: n,
			DueDate:           pricing.AddMonths(startDate, n),
			ScheduledAmount:   amounts[i],
			PaymentStatus:     models.PaymentStatusPending,
		}
	}
	return entries
}

// scheduleDate normalizes t to midnight UTC so due dates fall on calendar days
func scheduleDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
