// Package testutil provides in-memory databases and fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/database"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory sqlite database private to the test.
// The pool is capped at one connection so every query sees the same memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.Config(logger.Discard))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser inserts a staff user with the given role
func CreateUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		Email:             email,
		EncryptedPassword: "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3jXr5G8pQ5RZ0qj8n6K1d2a",
		FullName:          "Staff " + role,
		Role:              role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProperty inserts an available property priced at price
func CreateProperty(t *testing.T, db *gorm.DB, block, lot, price string) *models.Property {
	t.Helper()

	property := &models.Property{
		Name:      "Casa " + block + "-" + lot,
		Block:     block,
		LotNumber: lot,
		Price:     decimal.RequireFromString(price),
		Status:    models.PropertyStatusAvailable,
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

// CreateReservation inserts a reservation for property in the given status
func CreateReservation(t *testing.T, db *gorm.DB, property *models.Property, fee, status string) *models.Reservation {
	t.Helper()

	reservation := &models.Reservation{
		ClientName:     "Ana Martínez",
		ClientEmail:    "ana@example.com",
		ClientPhone:    "+504 9999-0000",
		MonthlyIncome:  decimal.NewFromInt(45000),
		OtherIncome:    decimal.Zero,
		PropertyID:     property.ID,
		ReservationFee: decimal.RequireFromString(fee),
		Status:         status,
		Source:         models.ReservationSourceOffice,
	}
	require.NoError(t, db.Omit("Property").Create(reservation).Error)
	reservation.Property = *property
	return reservation
}

// Date returns midnight UTC for the given calendar day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
