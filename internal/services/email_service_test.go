package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/config"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/testutil"
	"github.com/sjperalta/fintera-homes/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailService_checkEmailPreconditions(t *testing.T) {
	logger.Setup("test")

	// Email notifications disabled
	service := NewEmailService(&config.Config{EnableEmailNotifications: false})
	ok, err := service.checkEmailPreconditions("test@example.com", "test operation")
	assert.False(t, ok, "Should return false when notifications are disabled")
	assert.Nil(t, err, "Should not return error when notifications are disabled")

	// Email configured and valid
	service = NewEmailService(&config.Config{
		EnableEmailNotifications: true,
		ResendAPIKey:             "test_key",
		FromEmail:                "from@example.com",
	})
	ok, err = service.checkEmailPreconditions("test@example.com", "test operation")
	assert.True(t, ok, "Should return true when properly configured")
	assert.Nil(t, err, "Should not return error when properly configured")

	// Missing key
	service = NewEmailService(&config.Config{
		EnableEmailNotifications: true,
		FromEmail:                "from@example.com",
	})
	ok, err = service.checkEmailPreconditions("test@example.com", "test operation")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY is not set")

	// Invalid recipient
	service = NewEmailService(&config.Config{
		EnableEmailNotifications: true,
		ResendAPIKey:             "test_key",
		FromEmail:                "from@example.com",
	})
	ok, err = service.checkEmailPreconditions("", "test operation")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestEmailService_renderTemplates(t *testing.T) {
	service := NewEmailService(&config.Config{})

	reason := "Documentación incompleta"
	reservation := &models.Reservation{
		ID:              42,
		ClientName:      "Ana Martínez",
		ReservationFee:  decimal.NewFromInt(50000),
		RejectionReason: &reason,
		Property:        models.Property{Name: "Casa A-7"},
	}

	html, err := service.renderTemplate("reservation_rejected.html", struct {
		Name           string
		TrackingNumber string
		PropertyName   string
		Reason         string
	}{reservation.ClientName, reservation.TrackingNumber(), reservation.Property.Name, reason})
	require.NoError(t, err)
	assert.Contains(t, html, "RSV-000042")
	assert.Contains(t, html, "Documentación incompleta")

	entries := []models.PaymentSchedule{
		{InstallmentNumber: 1, DueDate: testutil.Date(2026, 2, 10), ScheduledAmount: decimal.NewFromInt(12500), PaymentStatus: models.PaymentStatusPaid},
		{InstallmentNumber: 2, DueDate: testutil.Date(2026, 3, 10), ScheduledAmount: decimal.NewFromInt(12500), PaymentStatus: models.PaymentStatusPending},
	}
	lines := scheduleLines(entries)
	require.Len(t, lines, 2)
	assert.Equal(t, "10/02/2026", lines[0].DueDate)
	assert.Equal(t, "L 12500.00", lines[0].Amount)
	assert.Equal(t, "Pagada", lines[0].Status)
	assert.Equal(t, "Pendiente", lines[1].Status)
}

func TestEmailService_SendSkipsWhenDisabled(t *testing.T) {
	service := NewEmailService(&config.Config{EnableEmailNotifications: false})
	reservation := &models.Reservation{ID: 1, ClientEmail: "ana@example.com"}

	assert.NoError(t, service.SendReservationApproved(context.Background(), reservation))
}
