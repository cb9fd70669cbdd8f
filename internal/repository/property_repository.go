package repository

import (
	"context"

	"github.com/sjperalta/fintera-homes/internal/models"
	"gorm.io/gorm"
)

// PropertyRepository defines the interface for property data access
type PropertyRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Property, error)
	Create(ctx context.Context, property *models.Property) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	List(ctx context.Context, query *ListQuery) ([]models.Property, int64, error)
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) FindByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	return translateError(r.db.WithContext(ctx).Create(property).Error)
}

func (r *propertyRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Update("status", status).Error
}

var propertySortable = map[string]string{"name": "name", "price": "price", "block": "block", "created_at": "created_at"}

func (r *propertyRepository) List(ctx context.Context, query *ListQuery) ([]models.Property, int64, error) {
	var properties []models.Property
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Property{})

	if query.Search != "" {
		search := likePattern(query.Search)
		db = db.Where("LOWER(name) LIKE ? OR LOWER(block) LIKE ? OR LOWER(lot_number) LIKE ?", search, search, search)
	}

	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.apply(db, propertySortable, "block ASC, lot_number ASC").Find(&properties).Error
	return properties, total, err
}
