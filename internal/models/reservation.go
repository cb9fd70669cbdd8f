package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Reservation is a client's request to hold a property pending review
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Client identity
	ClientName    string  `gorm:"not null" json:"client_name"`
	ClientEmail   string  `gorm:"not null;index" json:"client_email"`
	ClientPhone   string  `json:"client_phone"`
	ClientAddress *string `json:"client_address"`

	// Employment
	EmployerName     *string `json:"employer_name"`
	Occupation       *string `json:"occupation"`
	EmploymentStatus string  `gorm:"default:employed" json:"employment_status"`
	YearsEmployed    int     `gorm:"default:0" json:"years_employed"`

	// Income
	MonthlyIncome decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"monthly_income"`
	OtherIncome   decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"other_income"`

	PropertyID      uint            `gorm:"not null;index" json:"property_id"`
	ReservationFee  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"reservation_fee"`
	Status          string          `gorm:"default:pending;not null;index" json:"status"`
	RejectionReason *string         `gorm:"type:text" json:"rejection_reason"`
	ReviewedAt      *time.Time      `json:"reviewed_at"`
	ReviewedByID    *uint           `gorm:"index" json:"reviewed_by_id"`
	Source          string          `gorm:"default:web" json:"source"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Associations
	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

// TableName specifies the table name for Reservation
func (Reservation) TableName() string {
	return "reservations"
}

// Reservation status constants
const (
	ReservationStatusPending  = "pending"
	ReservationStatusApproved = "approved"
	ReservationStatusRejected = "rejected"
)

// Reservation source constants
const (
	ReservationSourceWeb    = "web"
	ReservationSourceMobile = "mobile"
	ReservationSourceOffice = "office"
)

// DefaultRejectionReason is stored when a reservation is rejected without a reason
const DefaultRejectionReason = "Sin motivo especificado"

// TrackingNumber is the human-facing reference derived from the ID
func (r *Reservation) TrackingNumber() string {
	return fmt.Sprintf("RSV-%06d", r.ID)
}

// MayApprove returns true if reservation can be approved
func (r *Reservation) MayApprove() bool {
	return r.Status == ReservationStatusPending
}

// MayReject returns true if reservation can be rejected
func (r *Reservation) MayReject() bool {
	return r.Status == ReservationStatusPending
}

// MayRevert returns true if a review decision can be undone
func (r *Reservation) MayRevert() bool {
	return r.Status == ReservationStatusApproved || r.Status == ReservationStatusRejected
}

// TotalIncome sums declared monthly and other income
func (r *Reservation) TotalIncome() decimal.Decimal {
	return r.MonthlyIncome.Add(r.OtherIncome)
}

// ReservationResponse is the JSON response format for reservations
type ReservationResponse struct {
	ID               uint            `json:"id"`
	TrackingNumber   string          `json:"tracking_number"`
	ClientName       string          `json:"client_name"`
	ClientEmail      string          `json:"client_email"`
	ClientPhone      string          `json:"client_phone"`
	ClientAddress    *string         `json:"client_address"`
	EmployerName     *string         `json:"employer_name"`
	Occupation       *string         `json:"occupation"`
	EmploymentStatus string          `json:"employment_status"`
	YearsEmployed    int             `json:"years_employed"`
	MonthlyIncome    decimal.Decimal `json:"monthly_income"`
	OtherIncome      decimal.Decimal `json:"other_income"`
	PropertyID       uint            `json:"property_id"`
	PropertyName     string          `json:"property_name,omitempty"`
	PropertyPrice    decimal.Decimal `json:"property_price"`
	ReservationFee   decimal.Decimal `json:"reservation_fee"`
	Status           string          `json:"status"`
	RejectionReason  *string         `json:"rejection_reason"`
	ReviewedAt       *time.Time      `json:"reviewed_at"`
	Source           string          `json:"source"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToResponse converts Reservation to ReservationResponse
func (r *Reservation) ToResponse() ReservationResponse {
	resp := ReservationResponse{
		ID:               r.ID,
		TrackingNumber:   r.TrackingNumber(),
		ClientName:       r.ClientName,
		ClientEmail:      r.ClientEmail,
		ClientPhone:      r.ClientPhone,
		ClientAddress:    r.ClientAddress,
		EmployerName:     r.EmployerName,
		Occupation:       r.Occupation,
		EmploymentStatus: r.EmploymentStatus,
		YearsEmployed:    r.YearsEmployed,
		MonthlyIncome:    r.MonthlyIncome,
		OtherIncome:      r.OtherIncome,
		PropertyID:       r.PropertyID,
		ReservationFee:   r.ReservationFee,
		Status:           r.Status,
		RejectionReason:  r.RejectionReason,
		ReviewedAt:       r.ReviewedAt,
		Source:           r.Source,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}

	if r.Property.ID != 0 {
		resp.PropertyName = r.Property.Name
		resp.PropertyPrice = r.Property.Price
	}

	return resp
}
