package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/pricing"
	"github.com/sjperalta/fintera-homes/internal/repository"
)

// PropertyInput holds the fields of a new catalogue entry
type PropertyInput struct {
	Name      string
	Block     string
	LotNumber string
	Address   *string
	Price     decimal.Decimal
}

// Quote previews the contract figures for a property, fee and plan length
type Quote struct {
	PropertyPrice      decimal.Decimal          `json:"property_price"`
	ReservationFee     decimal.Decimal          `json:"reservation_fee"`
	Split              pricing.DownpaymentSplit `json:"split"`
	Months             int                      `json:"months"`
	MonthlyInstallment decimal.Decimal          `json:"monthly_installment"`
	Installments       []decimal.Decimal        `json:"installments"`
}

type PropertyService struct {
	repos *repository.Repositories
	store persistence
}

func NewPropertyService(repos *repository.Repositories, operationTimeout time.Duration) *PropertyService {
	return &PropertyService{repos: repos, store: newPersistence(operationTimeout)}
}

// Create adds a property; block and lot number must be unique together
func (s *PropertyService) Create(ctx context.Context, input PropertyInput) (*models.Property, error) {
	property := &models.Property{
		Name:      strings.TrimSpace(input.Name),
		Block:     strings.TrimSpace(input.Block),
		LotNumber: strings.TrimSpace(input.LotNumber),
		Address:   input.Address,
		Price:     input.Price,
		Status:    models.PropertyStatusAvailable,
	}
	if property.Name == "" || property.Block == "" || property.LotNumber == "" {
		return nil, fmt.Errorf("%w: nombre, bloque y lote son requeridos", ErrInvalidProperty)
	}
	if !property.Price.IsPositive() {
		return nil, fmt.Errorf("%w: el precio debe ser mayor que cero", ErrInvalidProperty)
	}

	err := s.store.run(ctx, "create property", func(ctx context.Context) error {
		property.ID = 0
		err := s.repos.Property.Create(ctx, property)
		if errors.Is(err, repository.ErrDuplicateKey) {
			return fmt.Errorf("%w: el lote %s del bloque %s ya existe", ErrDuplicate, property.LotNumber, property.Block)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return property, nil
}

func (s *PropertyService) FindByID(ctx context.Context, id uint) (*models.Property, error) {
	var property *models.Property
	err := s.store.run(ctx, "find property", func(ctx context.Context) error {
		var err error
		property, err = s.repos.Property.FindByID(ctx, id)
		return err
	})
	return property, err
}

func (s *PropertyService) List(ctx context.Context, query *repository.ListQuery) ([]models.Property, int64, error) {
	var properties []models.Property
	var total int64
	err := s.store.run(ctx, "list properties", func(ctx context.Context) error {
		var err error
		properties, total, err = s.repos.Property.List(ctx, query)
		return err
	})
	return properties, total, err
}

// Quote computes what a contract on the property would look like without storing anything
func (s *PropertyService) Quote(ctx context.Context, propertyID uint, fee decimal.Decimal, months int) (*Quote, error) {
	if fee.IsNegative() {
		return nil, fmt.Errorf("%w: el monto de reserva no puede ser negativo", ErrInvalidReservation)
	}

	property, err := s.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	split := pricing.ComputeDownpaymentSplit(property.Price, fee)
	installment, err := pricing.ComputeMonthlyInstallment(split.RemainingDownpayment, months)
	if err != nil {
		return nil, err
	}

	return &Quote{
		PropertyPrice:      property.Price,
		ReservationFee:     fee,
		Split:              split,
		Months:             months,
		MonthlyInstallment: installment.Round(2),
		Installments:       pricing.SplitInstallments(split.RemainingDownpayment, months),
	}, nil
}
