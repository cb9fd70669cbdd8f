package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentSchedule is one dated installment of a contract's downpayment plan
type PaymentSchedule struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	ContractID        uint            `gorm:"not null;uniqueIndex:idx_schedules_contract_installment" json:"contract_id"`
	InstallmentNumber int             `gorm:"not null;uniqueIndex:idx_schedules_contract_installment" json:"installment_number"`
	DueDate           time.Time       `gorm:"not null;index" json:"due_date"`
	ScheduledAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"scheduled_amount"`
	PaymentStatus     string          `gorm:"default:pending;not null;index" json:"payment_status"`
	PaidAt            *time.Time      `json:"paid_at"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName specifies the table name for PaymentSchedule
func (PaymentSchedule) TableName() string {
	return "payment_schedules"
}

// Payment status constants
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

// IsPaid returns true once the installment has been collected
func (p *PaymentSchedule) IsPaid() bool {
	return p.PaymentStatus == PaymentStatusPaid
}

// MayPay returns true if the installment can be marked as paid
func (p *PaymentSchedule) MayPay() bool {
	return p.PaymentStatus == PaymentStatusPending || p.PaymentStatus == PaymentStatusOverdue
}

// MayMarkOverdue returns true if the installment is pending and past due at now
func (p *PaymentSchedule) MayMarkOverdue(now time.Time) bool {
	return p.PaymentStatus == PaymentStatusPending && now.After(p.DueDate)
}

// OverdueDays returns the number of days overdue
func (p *PaymentSchedule) OverdueDays(now time.Time) int {
	if p.IsPaid() || !now.After(p.DueDate) {
		return 0
	}
	return int(now.Sub(p.DueDate).Hours() / 24)
}

// PaymentScheduleResponse is the JSON response format for schedule entries
type PaymentScheduleResponse struct {
	ID                uint            `json:"id"`
	InstallmentNumber int             `json:"installment_number"`
	DueDate           time.Time       `json:"due_date"`
	ScheduledAmount   decimal.Decimal `json:"scheduled_amount"`
	PaymentStatus     string          `json:"payment_status"`
	PaidAt            *time.Time      `json:"paid_at"`
	OverdueDays       int             `json:"overdue_days"`
}

// ToResponse converts PaymentSchedule to PaymentScheduleResponse
func (p *PaymentSchedule) ToResponse() PaymentScheduleResponse {
	return PaymentScheduleResponse{
		ID:                p.ID,
		InstallmentNumber: p.InstallmentNumber,
		DueDate:           p.DueDate,
		ScheduledAmount:   p.ScheduledAmount,
		PaymentStatus:     p.PaymentStatus,
		PaidAt:            p.PaidAt,
		OverdueDays:       p.OverdueDays(time.Now()),
	}
}
