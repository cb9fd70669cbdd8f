package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Contract is the binding agreement created from an approved reservation
type Contract struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	GUID                 string          `gorm:"size:36;uniqueIndex;not null" json:"guid"`
	ContractNumber       string          `gorm:"size:40;uniqueIndex;not null" json:"contract_number"`
	ReservationID        uint            `gorm:"not null;uniqueIndex" json:"reservation_id"`
	PropertyID           uint            `gorm:"not null;index" json:"property_id"`
	CreatedByID          *uint           `gorm:"index" json:"created_by_id"`
	PaymentPlanMonths    int             `gorm:"not null" json:"payment_plan_months"`
	TotalContractPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_contract_price"`
	DownpaymentTotal     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"downpayment_total"`
	BankFinancing        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"bank_financing"`
	ReservationFeePaid   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"reservation_fee_paid"`
	RemainingDownpayment decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"remaining_downpayment"`
	RemainingBalance     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"remaining_balance"`
	MonthlyInstallment   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"monthly_installment"`
	ScheduleStartDate    time.Time       `gorm:"not null" json:"schedule_start_date"`
	Status               string          `gorm:"default:active;not null;index" json:"status"`
	Version              int             `gorm:"not null;default:1" json:"version"`
	CreatedAt            time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	// Associations
	Reservation      Reservation       `gorm:"foreignKey:ReservationID" json:"-"`
	Property         Property          `gorm:"foreignKey:PropertyID" json:"-"`
	PaymentSchedules []PaymentSchedule `gorm:"foreignKey:ContractID" json:"payment_schedules,omitempty"`
}

// TableName specifies the table name for Contract
func (Contract) TableName() string {
	return "contracts"
}

// Contract status constants
const (
	ContractStatusActive = "active"
)

// BeforeCreate assigns the public GUID
func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.GUID == "" {
		c.GUID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = ContractStatusActive
	}
	if c.Version == 0 {
		c.Version = 1
	}
	return nil
}

// BuildContractNumber formats the contract number from the reservation tracking number
func BuildContractNumber(trackingNumber string, at time.Time) string {
	return fmt.Sprintf("CTR-%s-%d", trackingNumber, at.Year())
}

// IsActive returns true if the contract is in force
func (c *Contract) IsActive() bool {
	return c.Status == ContractStatusActive
}

// ContractResponse is the JSON response format for contracts
type ContractResponse struct {
	ID                   uint                      `json:"id"`
	GUID                 string                    `json:"guid"`
	ContractNumber       string                    `json:"contract_number"`
	ReservationID        uint                      `json:"reservation_id"`
	TrackingNumber       string                    `json:"tracking_number,omitempty"`
	ClientName           string                    `json:"client_name,omitempty"`
	PropertyID           uint                      `json:"property_id"`
	PropertyName         string                    `json:"property_name,omitempty"`
	PaymentPlanMonths    int                       `json:"payment_plan_months"`
	TotalContractPrice   decimal.Decimal           `json:"total_contract_price"`
	DownpaymentTotal     decimal.Decimal           `json:"downpayment_total"`
	BankFinancing        decimal.Decimal           `json:"bank_financing"`
	ReservationFeePaid   decimal.Decimal           `json:"reservation_fee_paid"`
	RemainingDownpayment decimal.Decimal           `json:"remaining_downpayment"`
	RemainingBalance     decimal.Decimal           `json:"remaining_balance"`
	MonthlyInstallment   decimal.Decimal           `json:"monthly_installment"`
	TotalPaid            decimal.Decimal           `json:"total_paid"`
	ScheduleStartDate    time.Time                 `json:"schedule_start_date"`
	Status               string                    `json:"status"`
	Version              int                       `json:"version"`
	CreatedAt            time.Time                 `json:"created_at"`
	UpdatedAt            time.Time                 `json:"updated_at"`
	PaymentSchedule      []PaymentScheduleResponse `json:"payment_schedule"`
}

// ToResponse converts Contract to ContractResponse
func (c *Contract) ToResponse() ContractResponse {
	resp := ContractResponse{
		ID:                   c.ID,
		GUID:                 c.GUID,
		ContractNumber:       c.ContractNumber,
		ReservationID:        c.ReservationID,
		PropertyID:           c.PropertyID,
		PaymentPlanMonths:    c.PaymentPlanMonths,
		TotalContractPrice:   c.TotalContractPrice,
		DownpaymentTotal:     c.DownpaymentTotal,
		BankFinancing:        c.BankFinancing,
		ReservationFeePaid:   c.ReservationFeePaid,
		RemainingDownpayment: c.RemainingDownpayment,
		RemainingBalance:     c.RemainingBalance,
		MonthlyInstallment:   c.MonthlyInstallment,
		TotalPaid:            decimal.Zero,
		ScheduleStartDate:    c.ScheduleStartDate,
		Status:               c.Status,
		Version:              c.Version,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
		PaymentSchedule:      make([]PaymentScheduleResponse, 0, len(c.PaymentSchedules)),
	}

	if c.Reservation.ID != 0 {
		resp.TrackingNumber = c.Reservation.TrackingNumber()
		resp.ClientName = c.Reservation.ClientName
	}
	if c.Property.ID != 0 {
		resp.PropertyName = c.Property.Name
	}

	for i := range c.PaymentSchedules {
		entry := &c.PaymentSchedules[i]
		if entry.IsPaid() {
			resp.TotalPaid = resp.TotalPaid.Add(entry.ScheduledAmount)
		}
		resp.PaymentSchedule = append(resp.PaymentSchedule, entry.ToResponse())
	}

	return resp
}
