package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_ExportSchedule(t *testing.T) {
	f := newContractFixture(t, "2000000", "50000", models.ReservationStatusApproved)
	contract := f.create(t, 12).Contract
	ctx := context.Background()

	entries := f.schedules(t, contract.ID)
	_, err := f.svc.MarkInstallmentPaid(ctx, contract.ID, entries[0].ID, f.actor.ID)
	require.NoError(t, err)

	svc := NewExportService(f.svc)

	data, filename, err := svc.ExportSchedule(ctx, contract.ID, FormatCSV)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".csv"))
	assert.Contains(t, filename, contract.ContractNumber)
	csv := string(data)
	assert.Contains(t, csv, "Ana Martínez")
	assert.Contains(t, csv, "1,2026-02-10,12500.00,Pagada")
	assert.Contains(t, csv, "12,2027-01-10,12500.00,Pendiente,")

	data, filename, err = svc.ExportSchedule(ctx, contract.ID, FormatXLSX)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))
	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("Plan de Pagos")
	require.NoError(t, err)
	assert.Equal(t, "Plan de Pagos "+contract.ContractNumber, rows[0][0])

	data, filename, err = svc.ExportSchedule(ctx, contract.ID, FormatPDF)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	_, _, err = svc.ExportSchedule(ctx, contract.ID, Format("doc"))
	assert.Error(t, err)

	_, _, err = svc.ExportSchedule(ctx, 9999, FormatPDF)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
}
