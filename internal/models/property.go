package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property represents a lot or house that can be reserved and sold
type Property struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Block     string          `gorm:"size:20;not null;uniqueIndex:idx_properties_block_lot" json:"block"`
	LotNumber string          `gorm:"size:20;not null;uniqueIndex:idx_properties_block_lot" json:"lot_number"`
	Address   *string         `json:"address"`
	Price     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	Status    string          `gorm:"default:available;index" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Property
func (Property) TableName() string {
	return "properties"
}

// Property status constants
const (
	PropertyStatusAvailable = "available"
	PropertyStatusReserved  = "reserved"
	PropertyStatusSold      = "sold"
)

// IsAvailable returns true if the property can take a new reservation
func (p *Property) IsAvailable() bool {
	return p.Status == PropertyStatusAvailable
}

// PropertyResponse is the JSON response format for properties
type PropertyResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Block     string          `json:"block"`
	LotNumber string          `json:"lot_number"`
	Address   *string         `json:"address"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToResponse converts Property to PropertyResponse
func (p *Property) ToResponse() PropertyResponse {
	return PropertyResponse{
		ID:        p.ID,
		Name:      p.Name,
		Block:     p.Block,
		LotNumber: p.LotNumber,
		Address:   p.Address,
		Price:     p.Price,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}
