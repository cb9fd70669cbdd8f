package repository

import (
	"context"

	"github.com/sjperalta/fintera-homes/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationRepository defines the interface for reservation data access
type ReservationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	// FindByIDForUpdate loads the reservation and its property holding row
	// locks on both until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Reservation, error)
	// CountApprovedForProperty counts approved reservations on the property,
	// leaving out excludeID.
	CountApprovedForProperty(ctx context.Context, propertyID, excludeID uint) (int64, error)
	Create(ctx context.Context, reservation *models.Reservation) error
	Update(ctx context.Context, reservation *models.Reservation) error
	List(ctx context.Context, query *ListQuery) ([]models.Reservation, int64, error)
	GetStats(ctx context.Context) (*ReservationStats, error)
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).Preload("Property").First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&reservation.Property, reservation.PropertyID).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) CountApprovedForProperty(ctx context.Context, propertyID, excludeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("property_id = ? AND status = ? AND id <> ?", propertyID, models.ReservationStatusApproved, excludeID).
		Count(&count).Error
	return count, err
}

func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(reservation).Error
}

func (r *reservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(reservation).Error
}

var reservationSortable = map[string]string{"created_at": "created_at", "client_name": "client_name", "status": "status", "reservation_fee": "reservation_fee"}

func (r *reservationRepository) List(ctx context.Context, query *ListQuery) ([]models.Reservation, int64, error) {
	var reservations []models.Reservation
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Reservation{})

	if query.Search != "" {
		search := likePattern(query.Search)
		db = db.Where("LOWER(client_name) LIKE ? OR LOWER(client_email) LIKE ? OR client_phone LIKE ?", search, search, search)
	}

	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	if query.Filters["property_id"] != "" {
		db = db.Where("property_id = ?", query.Filters["property_id"])
	}

	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.apply(db, reservationSortable, "created_at DESC").
		Preload("Property").
		Find(&reservations).Error
	return reservations, total, err
}

// ReservationStats holds the count of reservations by status
type ReservationStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

func (r *reservationRepository) GetStats(ctx context.Context) (*ReservationStats, error) {
	stats := &ReservationStats{}

	// Execute a single query to get counts by status
	rows, err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("status, count(*) as count").
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		switch status {
		case models.ReservationStatusPending:
			stats.Pending = count
		case models.ReservationStatusApproved:
			stats.Approved = count
		case models.ReservationStatusRejected:
			stats.Rejected = count
		}
	}

	return stats, rows.Err()
}
