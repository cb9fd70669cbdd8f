package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/repository"
	"github.com/sjperalta/fintera-homes/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyService_CreateAndQuote(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPropertyService(repository.NewRepositories(db), testConfig().DBOperationTimeout)
	ctx := context.Background()

	property, err := svc.Create(ctx, PropertyInput{Name: "Casa Modelo", Block: "F", LotNumber: "12", Price: decimal.NewFromInt(2000000)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, PropertyInput{Name: "Otra", Block: "F", LotNumber: "12", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.Create(ctx, PropertyInput{Name: "Gratis", Block: "F", LotNumber: "13", Price: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidProperty)

	quote, err := svc.Quote(ctx, property.ID, decimal.NewFromInt(50000), 12)
	require.NoError(t, err)
	assert.Equal(t, "150000.00", quote.Split.RemainingDownpayment.StringFixed(2))
	assert.Equal(t, "12500.00", quote.MonthlyInstallment.StringFixed(2))
	assert.Len(t, quote.Installments, 12)

	_, err = svc.Quote(ctx, property.ID, decimal.NewFromInt(50000), 61)
	assert.ErrorIs(t, err, ErrInvalidPlan)

	_, err = svc.Quote(ctx, 9999, decimal.Zero, 12)
	assert.ErrorIs(t, err, ErrNotFound)
}
