package models

import (
	"time"
)

// AuditLog represents a system audit entry
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"size:50;not null" json:"action"` // APPROVE, REJECT, REVERT, CREATE, PLAN_CHANGE, PAY
	Entity    string    `gorm:"size:50;not null" json:"entity"` // Reservation, Contract, PaymentSchedule
	EntityID  uint      `gorm:"index" json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionCreate     = "CREATE"
	AuditActionApprove    = "APPROVE"
	AuditActionReject     = "REJECT"
	AuditActionRevert     = "REVERT"
	AuditActionPlanChange = "PLAN_CHANGE"
	AuditActionPay        = "PAY"
	AuditActionLogin      = "LOGIN"
)

// Audited entities
const (
	AuditEntityReservation     = "Reservation"
	AuditEntityContract        = "Contract"
	AuditEntityPaymentSchedule = "PaymentSchedule"
	AuditEntityUser            = "User"
)
