package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sjperalta/fintera-homes/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContractRepository defines the interface for contract data access
type ContractRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Contract, error)
	// FindByIDForUpdate loads the contract holding a row lock until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Contract, error)
	FindByIDWithSchedules(ctx context.Context, id uint) (*models.Contract, error)
	// FindByReservation returns (nil, nil) when the reservation has no contract.
	FindByReservation(ctx context.Context, reservationID uint) (*models.Contract, error)
	Create(ctx context.Context, contract *models.Contract) error
	// UpdateVersioned persists plan and balance fields only if the stored
	// version still equals expectedVersion, then bumps it.
	UpdateVersioned(ctx context.Context, contract *models.Contract, expectedVersion int) error
	List(ctx context.Context, query *ListQuery) ([]models.Contract, int64, error)
}

type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByIDWithSchedules(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Preload("Reservation").
		Preload("Property").
		Preload("PaymentSchedules", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_number ASC")
		}).
		First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByReservation(ctx context.Context, reservationID uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Preload("PaymentSchedules", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_number ASC")
		}).
		First(&contract).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) Create(ctx context.Context, contract *models.Contract) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(contract).Error)
}

func (r *contractRepository) UpdateVersioned(ctx context.Context, contract *models.Contract, expectedVersion int) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("id = ? AND version = ?", contract.ID, expectedVersion).
		Updates(map[string]interface{}{
			"payment_plan_months": contract.PaymentPlanMonths,
			"remaining_balance":   contract.RemainingBalance,
			"monthly_installment": contract.MonthlyInstallment,
			"version":             expectedVersion + 1,
			"updated_at":          now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleVersion
	}

	contract.Version = expectedVersion + 1
	contract.UpdatedAt = now
	return nil
}

var contractSortable = map[string]string{
	"created_at":          "contracts.created_at",
	"contract_number":     "contracts.contract_number",
	"payment_plan_months": "contracts.payment_plan_months",
	"remaining_balance":   "contracts.remaining_balance",
}

func (r *contractRepository) List(ctx context.Context, query *ListQuery) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Contract{})

	if query.Filters["status"] != "" {
		db = db.Where("contracts.status = ?", query.Filters["status"])
	}

	if query.Filters["property_id"] != "" {
		db = db.Where("contracts.property_id = ?", query.Filters["property_id"])
	}

	if query.Search != "" {
		search := likePattern(query.Search)
		db = db.Joins("LEFT JOIN reservations ON reservations.id = contracts.reservation_id").
			Where("LOWER(contracts.contract_number) LIKE ? OR LOWER(reservations.client_name) LIKE ? OR contracts.guid LIKE ?",
				search, search, search)
	}

	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.apply(db, contractSortable, "contracts.created_at DESC").
		Preload("Reservation").
		Preload("Property").
		Find(&contracts).Error
	return contracts, total, err
}
