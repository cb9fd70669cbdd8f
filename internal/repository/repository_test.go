package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContract(reservation *models.Reservation, number string) *models.Contract {
	return &models.Contract{
		ContractNumber:       number,
		ReservationID:        reservation.ID,
		PropertyID:           reservation.PropertyID,
		PaymentPlanMonths:    3,
		TotalContractPrice:   decimal.NewFromInt(100000),
		DownpaymentTotal:     decimal.NewFromInt(10000),
		BankFinancing:        decimal.NewFromInt(90000),
		ReservationFeePaid:   decimal.NewFromInt(1000),
		RemainingDownpayment: decimal.NewFromInt(9000),
		RemainingBalance:     decimal.NewFromInt(9000),
		MonthlyInstallment:   decimal.NewFromInt(3000),
		ScheduleStartDate:    testutil.Date(2026, time.January, 15),
	}
}

func TestContractRepository_UniqueReservation(t *testing.T) {
	db := testutil.NewDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	property := testutil.CreateProperty(t, db, "A", "1", "100000")
	reservation := testutil.CreateReservation(t, db, property, "1000", models.ReservationStatusApproved)

	first := newContract(reservation, "CTR-1")
	require.NoError(t, repos.Contract.Create(ctx, first))
	assert.NotEmpty(t, first.GUID)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, models.ContractStatusActive, first.Status)

	err := repos.Contract.Create(ctx, newContract(reservation, "CTR-2"))
	assert.ErrorIs(t, err, ErrDuplicateKey)

	found, err := repos.Contract.FindByReservation(ctx, reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)
}

func TestContractRepository_FindByReservationMissing(t *testing.T) {
	repos := NewRepositories(testutil.NewDB(t))

	found, err := repos.Contract.FindByReservation(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestContractRepository_UpdateVersioned(t *testing.T) {
	db := testutil.NewDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	property := testutil.CreateProperty(t, db, "A", "1", "100000")
	reservation := testutil.CreateReservation(t, db, property, "1000", models.ReservationStatusApproved)
	contract := newContract(reservation, "CTR-1")
	require.NoError(t, repos.Contract.Create(ctx, contract))

	contract.PaymentPlanMonths = 6
	contract.MonthlyInstallment = decimal.NewFromInt(1500)
	require.NoError(t, repos.Contract.UpdateVersioned(ctx, contract, 1))
	assert.Equal(t, 2, contract.Version)

	stale := *contract
	stale.PaymentPlanMonths = 12
	assert.ErrorIs(t, repos.Contract.UpdateVersioned(ctx, &stale, 1), ErrStaleVersion)

	stored, err := repos.Contract.FindByID(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, stored.PaymentPlanMonths)
	assert.Equal(t, 2, stored.Version)
	assert.True(t, stored.MonthlyInstallment.Equal(decimal.NewFromInt(1500)))
}

func TestPaymentScheduleRepository_DeleteUnpaidAndOverdue(t *testing.T) {
	db := testutil.NewDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	property := testutil.CreateProperty(t, db, "A", "1", "100000")
	reservation := testutil.CreateReservation(t, db, property, "1000", models.ReservationStatusApproved)
	contract := newContract(reservation, "CTR-1")
	require.NoError(t, repos.Contract.Create(ctx, contract))

	paidAt := testutil.Date(2026, time.February, 10)
	entries := []models.PaymentSchedule{
		{ContractID: contract.ID, InstallmentNumber: 1, DueDate: testutil.Date(2026, time.February, 15), ScheduledAmount: decimal.NewFromInt(3000), PaymentStatus: models.PaymentStatusPaid, PaidAt: &paidAt},
		{ContractID: contract.ID, InstallmentNumber: 2, DueDate: testutil.Date(2026, time.March, 15), ScheduledAmount: decimal.NewFromInt(3000), PaymentStatus: models.PaymentStatusPending},
		{ContractID: contract.ID, InstallmentNumber: 3, DueDate: testutil.Date(2026, time.April, 15), ScheduledAmount: decimal.NewFromInt(3000), PaymentStatus: models.PaymentStatusPending},
	}
	require.NoError(t, repos.PaymentSchedule.CreateBatch(ctx, entries))

	due, err := repos.PaymentSchedule.FindPendingDueBefore(ctx, testutil.Date(2026, time.March, 20))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 2, due[0].InstallmentNumber)

	marked, err := repos.PaymentSchedule.MarkOverdue(ctx, []uint{due[0].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	deleted, err := repos.PaymentSchedule.DeleteUnpaidByContract(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := repos.PaymentSchedule.FindByContract(ctx, contract.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, models.PaymentStatusPaid, remaining[0].PaymentStatus)
}

func TestPaymentScheduleRepository_UniqueInstallmentNumber(t *testing.T) {
	db := testutil.NewDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	property := testutil.CreateProperty(t, db, "A", "1", "100000")
	reservation := testutil.CreateReservation(t, db, property, "1000", models.ReservationStatusApproved)
	contract := newContract(reservation, "CTR-1")
	require.NoError(t, repos.Contract.Create(ctx, contract))

	entry := models.PaymentSchedule{ContractID: contract.ID, InstallmentNumber: 1, DueDate: testutil.Date(2026, time.February, 15), ScheduledAmount: decimal.NewFromInt(3000), PaymentStatus: models.PaymentStatusPending}
	require.NoError(t, repos.PaymentSchedule.CreateBatch(ctx, []models.PaymentSchedule{entry}))

	err := repos.PaymentSchedule.CreateBatch(ctx, []models.PaymentSchedule{entry})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestRepositories_TransactionRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	property := testutil.CreateProperty(t, db, "A", "1", "100000")
	reservation := testutil.CreateReservation(t, db, property, "1000", models.ReservationStatusApproved)

	err := repos.Transaction(ctx, func(tx *Repositories) error {
		if err := tx.Contract.Create(ctx, newContract(reservation, "CTR-1")); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	found, err := repos.Contract.FindByReservation(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestReservationRepository_ListAndStats(t *testing.T) {
	db := testutil.NewDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	property := testutil.CreateProperty(t, db, "A", "1", "100000")
	testutil.CreateReservation(t, db, property, "1000", models.ReservationStatusPending)
	testutil.CreateReservation(t, db, property, "1000", models.ReservationStatusPending)
	testutil.CreateReservation(t, db, property, "1000", models.ReservationStatusApproved)

	query := NewListQuery()
	query.Filters["status"] = models.ReservationStatusPending
	query.SortBy = "id; DROP TABLE reservations"
	list, total, err := repos.Reservation.List(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)
	assert.Equal(t, property.ID, list[0].Property.ID)

	stats, err := repos.Reservation.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(1), stats.Approved)
}
