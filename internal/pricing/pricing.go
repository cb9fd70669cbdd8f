// Package pricing holds the pure money arithmetic behind reservations and
// contracts: downpayment splitting, installment amounts and the seasonal
// interest table used for homeowner dues.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Plan length domain, in months
const (
	MinPlanMonths = 1
	MaxPlanMonths = 60
)

// ErrInvalidPlan is returned when a plan length falls outside [MinPlanMonths, MaxPlanMonths]
var ErrInvalidPlan = errors.New("plan de pago inválido")

var (
	downpaymentRate   = decimal.RequireFromString("0.10")
	bankFinancingRate = decimal.RequireFromString("0.90")
	monthsPerYear     = decimal.NewFromInt(12)
)

// DownpaymentSplit is the result of splitting a property price between the
// downpayment (10%) and bank financing (90%).
type DownpaymentSplit struct {
	DownpaymentTotal     decimal.Decimal `json:"downpayment_total"`
	BankFinancing        decimal.Decimal `json:"bank_financing"`
	RemainingDownpayment decimal.Decimal `json:"remaining_downpayment"`
	// FeeExceedsDownpayment is set when the reservation fee already paid is
	// larger than the downpayment; RemainingDownpayment is then clamped to zero.
	FeeExceedsDownpayment bool `json:"fee_exceeds_downpayment"`
}

// ComputeDownpaymentSplit splits propertyPrice and nets the already-paid
// reservation fee out of the downpayment. It never fails.
func ComputeDownpaymentSplit(propertyPrice, reservationFeePaid decimal.Decimal) DownpaymentSplit {
	if !propertyPrice.IsPositive() {
		return DownpaymentSplit{
			DownpaymentTotal:     decimal.Zero,
			BankFinancing:        decimal.Zero,
			RemainingDownpayment: decimal.Zero,
		}
	}

	split := DownpaymentSplit{
		DownpaymentTotal: propertyPrice.Mul(downpaymentRate),
		BankFinancing:    propertyPrice.Mul(bankFinancingRate),
	}

	remaining := split.DownpaymentTotal.Sub(reservationFeePaid)
	if remaining.IsNegative() {
		split.FeeExceedsDownpayment = true
		remaining = decimal.Zero
	}
	split.RemainingDownpayment = remaining

	return split
}

// ValidatePlanMonths checks months against the allowed plan domain
func ValidatePlanMonths(months int) error {
	if months < MinPlanMonths || months > MaxPlanMonths {
		return fmt.Errorf("%w: %d meses (debe estar entre %d y %d)", ErrInvalidPlan, months, MinPlanMonths, MaxPlanMonths)
	}
	return nil
}

// ComputeMonthlyInstallment divides the remaining downpayment evenly over
// months. The quotient is not rounded here; see SplitInstallments for the
// cent-rounded amounts that get stored.
func ComputeMonthlyInstallment(remainingDownpayment decimal.Decimal, months int) (decimal.Decimal, error) {
	if err := ValidatePlanMonths(months); err != nil {
		return decimal.Zero, err
	}
	return remainingDownpayment.Div(decimal.NewFromInt(int64(months))), nil
}

// SplitInstallments splits total into count cent-rounded parts. Every part
// but the last is the quotient floored to cents; the last absorbs the
// remainder, so it is never below the others and the parts always sum to
// total (rounded to cents).
func SplitInstallments(total decimal.Decimal, count int) []decimal.Decimal {
	if count <= 0 {
		return nil
	}

	total = total.Round(2)
	base := total.Div(decimal.NewFromInt(int64(count))).RoundFloor(2)

	parts := make([]decimal.Decimal, count)
	allocated := decimal.Zero
	for i := 0; i < count-1; i++ {
		parts[i] = base
		allocated = allocated.Add(base)
	}
	parts[count-1] = total.Sub(allocated)

	return parts
}

// SeasonalInterestMultiplier returns the dues multiplier for a calendar month (1-12).
// Unknown months yield 1.0.
func SeasonalInterestMultiplier(month int) decimal.Decimal {
	switch time.Month(month) {
	case time.January, time.November:
		return decimal.RequireFromString("1.2")
	case time.June:
		return decimal.RequireFromString("1.1")
	case time.December:
		return decimal.RequireFromString("1.3")
	default:
		return decimal.NewFromInt(1)
	}
}

// InterestResult holds the outcome of ComputeMonthlyInterest
type InterestResult struct {
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	MonthlyInterest  decimal.Decimal `json:"monthly_interest"`
	Multiplier       decimal.Decimal `json:"multiplier"`
}

// ComputeMonthlyInterest applies the annual rate, scaled by the seasonal
// multiplier of month, to the financed balance and returns one month of it.
func ComputeMonthlyInterest(totalPrice, downPayment, rate decimal.Decimal, month int) InterestResult {
	multiplier := SeasonalInterestMultiplier(month)
	if !totalPrice.IsPositive() {
		return InterestResult{RemainingBalance: decimal.Zero, MonthlyInterest: decimal.Zero, Multiplier: multiplier}
	}

	remaining := totalPrice.Sub(downPayment)
	interest := remaining.Mul(rate).Mul(multiplier).Div(monthsPerYear)

	return InterestResult{
		RemainingBalance: remaining,
		MonthlyInterest:  interest,
		Multiplier:       multiplier,
	}
}

// AddMonths moves t forward by n calendar months, clamping the day to the
// length of the target month (Jan 31 + 1 month = Feb 28 or 29).
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return firstOfTarget.AddDate(0, 0, day-1)
}
