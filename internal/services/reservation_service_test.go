package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/repository"
	"github.com/sjperalta/fintera-homes/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReservationService(t *testing.T) (*ReservationService, *ContractService, *gorm.DB) {
	t.Helper()

	db := testutil.NewDB(t)
	repos := repository.NewRepositories(db)
	cfg := testConfig()
	emailSvc := NewEmailService(cfg)
	auditSvc := NewAuditService(db)

	reservations := NewReservationService(repos, emailSvc, auditSvc, nil, cfg.DBOperationTimeout)
	contracts := NewContractService(repos, NewPaymentScheduleService(), emailSvc, auditSvc, nil, cfg.DBOperationTimeout)
	return reservations, contracts, db
}

func propertyStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var property models.Property
	require.NoError(t, db.First(&property, id).Error)
	return property.Status
}

func TestReservationService_Approve(t *testing.T) {
	svc, _, db := newReservationService(t)
	actor := testutil.CreateUser(t, db, "admin@fintera.app", models.RoleAdmin)
	property := testutil.CreateProperty(t, db, "B", "1", "900000")
	reservation := testutil.CreateReservation(t, db, property, "20000", models.ReservationStatusPending)

	approved, err := svc.Approve(context.Background(), reservation.ID, actor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedAt)
	require.NotNil(t, approved.ReviewedByID)
	assert.Equal(t, actor.ID, *approved.ReviewedByID)
	assert.Equal(t, models.PropertyStatusReserved, propertyStatus(t, db, property.ID))

	_, err = svc.Approve(context.Background(), reservation.ID, actor.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stored, err := svc.FindByID(context.Background(), reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusApproved, stored.Status)
}

func TestReservationService_Reject(t *testing.T) {
	svc, _, db := newReservationService(t)
	property := testutil.CreateProperty(t, db, "B", "2", "900000")
	ctx := context.Background()

	withReason := testutil.CreateReservation(t, db, property, "20000", models.ReservationStatusPending)
	reason := "  Ingresos insuficientes "
	rejected, err := svc.Reject(ctx, withReason.ID, 0, &reason)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "Ingresos insuficientes", *rejected.RejectionReason)
	assert.Nil(t, rejected.ReviewedByID)

	withoutReason := testutil.CreateReservation(t, db, property, "20000", models.ReservationStatusPending)
	rejected, err = svc.Reject(ctx, withoutReason.ID, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRejectionReason, *rejected.RejectionReason)

	_, err = svc.Reject(ctx, withoutReason.ID, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReservationService_RevertAndNotFound(t *testing.T) {
	svc, _, db := newReservationService(t)
	property := testutil.CreateProperty(t, db, "C", "3", "900000")
	ctx := context.Background()

	_, err := svc.Approve(ctx, 4242, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	pending := testutil.CreateReservation(t, db, property, "20000", models.ReservationStatusPending)
	_, err = svc.Revert(ctx, pending.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Approve(ctx, pending.ID, 0)
	require.NoError(t, err)
	reverted, err := svc.Revert(ctx, pending.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, reverted.Status)
	assert.Equal(t, models.PropertyStatusAvailable, propertyStatus(t, db, property.ID))

	_, err = svc.Reject(ctx, pending.ID, 0, nil)
	require.NoError(t, err)
	reverted, err = svc.Revert(ctx, pending.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, reverted.Status)
	assert.Nil(t, reverted.RejectionReason)
}

func TestReservationService_RevertKeepsContract(t *testing.T) {
	svc, contracts, db := newReservationService(t)
	property := testutil.CreateProperty(t, db, "D", "4", "2000000")
	reservation := testutil.CreateReservation(t, db, property, "50000", models.ReservationStatusApproved)
	ctx := context.Background()

	created, err := contracts.CreateContract(ctx, reservation.ID, 12, 0)
	require.NoError(t, err)

	reverted, err := svc.Revert(ctx, reservation.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, reverted.Status)

	contract, err := contracts.GetContractByReservation(ctx, reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, contract)
	assert.Equal(t, created.Contract.ID, contract.ID)
	assert.Equal(t, models.ContractStatusActive, contract.Status)
	assert.Equal(t, models.PropertyStatusSold, propertyStatus(t, db, property.ID))

	var audit models.AuditLog
	require.NoError(t, db.Where("action = ? AND entity_id = ?", models.AuditActionRevert, reservation.ID).First(&audit).Error)
	assert.Contains(t, audit.Details, contract.ContractNumber)

	again, err := contracts.CreateContract(ctx, reservation.ID, 12, 0)
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, created.Contract.ID, again.Contract.ID)
}

func TestReservationService_ApproveRefusesHeldProperty(t *testing.T) {
	svc, contracts, db := newReservationService(t)
	property := testutil.CreateProperty(t, db, "F", "6", "2000000")
	ctx := context.Background()

	first := testutil.CreateReservation(t, db, property, "50000", models.ReservationStatusPending)
	second := testutil.CreateReservation(t, db, property, "50000", models.ReservationStatusPending)

	_, err := svc.Approve(ctx, first.ID, 0)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, second.ID, 0)
	assert.ErrorIs(t, err, ErrPropertyUnavailable)
	stored, err := svc.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, stored.Status)

	_, err = contracts.CreateContract(ctx, first.ID, 12, 0)
	require.NoError(t, err)

	// once the first buyer withdraws, the lot is still sold
	_, err = svc.Revert(ctx, first.ID, 0)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, second.ID, 0)
	assert.ErrorIs(t, err, ErrPropertyUnavailable)
	assert.Equal(t, models.PropertyStatusSold, propertyStatus(t, db, property.ID))
}

func TestReservationService_Create(t *testing.T) {
	svc, _, db := newReservationService(t)
	property := testutil.CreateProperty(t, db, "E", "5", "500000")
	ctx := context.Background()

	input := ReservationInput{
		ClientName:     "Luis Pineda",
		ClientEmail:    "luis@example.com",
		MonthlyIncome:  decimal.NewFromInt(30000),
		PropertyID:     property.ID,
		ReservationFee: decimal.NewFromInt(10000),
	}
	reservation, err := svc.Create(ctx, input, 0)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, reservation.Status)
	assert.Equal(t, models.ReservationSourceWeb, reservation.Source)
	assert.Equal(t, property.Name, reservation.Property.Name)

	tooHigh := input
	tooHigh.ReservationFee = decimal.NewFromInt(500001)
	_, err = svc.Create(ctx, tooHigh, 0)
	assert.ErrorIs(t, err, ErrInvalidReservation)

	negative := input
	negative.ReservationFee = decimal.NewFromInt(-1)
	_, err = svc.Create(ctx, negative, 0)
	assert.ErrorIs(t, err, ErrInvalidReservation)

	badEmail := input
	badEmail.ClientEmail = "luis"
	_, err = svc.Create(ctx, badEmail, 0)
	assert.ErrorIs(t, err, ErrInvalidReservation)

	missing := input
	missing.PropertyID = 9999
	_, err = svc.Create(ctx, missing, 0)
	assert.ErrorIs(t, err, ErrInvalidProperty)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
}
