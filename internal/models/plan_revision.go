package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanRevision records one applied change of a contract's payment plan
type PlanRevision struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	ContractID          uint            `gorm:"not null;index" json:"contract_id"`
	PreviousMonths      int             `gorm:"not null" json:"previous_months"`
	NewMonths           int             `gorm:"not null" json:"new_months"`
	PreviousInstallment decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"previous_installment"`
	NewInstallment      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"new_installment"`
	SchedulesReplaced   int             `gorm:"not null" json:"schedules_replaced"`
	Reason              *string         `gorm:"type:text" json:"reason"`
	ActorID             *uint           `gorm:"index" json:"actor_id"`
	CreatedAt           time.Time       `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for PlanRevision
func (PlanRevision) TableName() string {
	return "plan_revisions"
}
