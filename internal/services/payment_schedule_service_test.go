package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchedule_Scenario(t *testing.T) {
	svc := NewPaymentScheduleService()
	start := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	entries, err := svc.GenerateSchedule(7, start, decimal.NewFromInt(150000), 12)
	require.NoError(t, err)
	require.Len(t, entries, 12)

	for i, entry := range entries {
		assert.Equal(t, uint(7), entry.ContractID)
		assert.Equal(t, i+1, entry.InstallmentNumber)
		assert.Equal(t, "12500.00", entry.ScheduledAmount.StringFixed(2))
		assert.Equal(t, models.PaymentStatusPending, entry.PaymentStatus)
		assert.Equal(t, pricing.AddMonths(start, i+1), entry.DueDate)
	}
	assert.Equal(t, time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), entries[0].DueDate)
}

func TestGenerateSchedule_Properties(t *testing.T) {
	svc := NewPaymentScheduleService()
	start := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	total := decimal.RequireFromString("98765.43")

	for months := pricing.MinPlanMonths; months <= pricing.MaxPlanMonths; months++ {
		entries, err := svc.GenerateSchedule(1, start, total, months)
		require.NoError(t, err)
		require.Len(t, entries, months)

		sum := decimal.Zero
		for i, entry := range entries {
			sum = sum.Add(entry.ScheduledAmount)
			assert.Equal(t, i+1, entry.InstallmentNumber)
			if i > 0 {
				assert.True(t, entry.DueDate.After(entries[i-1].DueDate), "months=%d i=%d", months, i)
			}
		}
		assert.True(t, sum.Equal(total), "months=%d sum=%s", months, sum)
	}
}

func TestGenerateSchedule_InvalidMonths(t *testing.T) {
	svc := NewPaymentScheduleService()
	for _, months := range []int{0, -3, 61} {
		_, err := svc.GenerateSchedule(1, time.Now(), decimal.NewFromInt(100), months)
		assert.ErrorIs(t, err, ErrInvalidPlan)
	}
}

func TestRegenerate_FillsFreeInstallmentNumbers(t *testing.T) {
	svc := NewPaymentScheduleService()
	start := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	preserved := []models.PaymentSchedule{
		{InstallmentNumber: 1, PaymentStatus: models.PaymentStatusPaid},
		{InstallmentNumber: 3, PaymentStatus: models.PaymentStatusPaid},
	}

	entries, err := svc.Regenerate(9, start, decimal.NewFromInt(1000), 5, preserved)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, []int{2, 4, 5}, []int{entries[0].InstallmentNumber, entries[1].InstallmentNumber, entries[2].InstallmentNumber})
	assert.Equal(t, pricing.AddMonths(start, 2), entries[0].DueDate)
	assert.Equal(t, "333.33", entries[0].ScheduledAmount.StringFixed(2))
	assert.Equal(t, "333.34", entries[2].ScheduledAmount.StringFixed(2))
}

func TestRegenerate_PaidOutsideRangeRejected(t *testing.T) {
	svc := NewPaymentScheduleService()
	preserved := []models.PaymentSchedule{{InstallmentNumber: 6, PaymentStatus: models.PaymentStatusPaid}}

	_, err := svc.Regenerate(1, time.Now(), decimal.NewFromInt(1000), 4, preserved)
	assert.ErrorIs(t, err, ErrPlanChangeRejected)

	full := []models.PaymentSchedule{{InstallmentNumber: 1}, {InstallmentNumber: 2}}
	_, err = svc.Regenerate(1, time.Now(), decimal.NewFromInt(1000), 2, full)
	assert.ErrorIs(t, err, ErrPlanChangeRejected)
}
