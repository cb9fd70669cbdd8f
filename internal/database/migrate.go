package database

import (
	"fmt"

	"github.com/sjperalta/fintera-homes/internal/models"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, in creation order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.RefreshToken{},
		&models.Property{},
		&models.Reservation{},
		&models.Contract{},
		&models.PaymentSchedule{},
		&models.PlanRevision{},
		&models.AuditLog{},
	}
}

// AutoMigrate creates or updates tables and indexes, including the unique
// indexes on contracts.reservation_id and (contract_id, installment_number).
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
