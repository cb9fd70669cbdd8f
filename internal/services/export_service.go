package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportService renders a contract's payment schedule as a downloadable statement
type ExportService struct {
	contractSvc *ContractService
	now         func() time.Time
}

func NewExportService(contractSvc *ContractService) *ExportService {
	return &ExportService{
		contractSvc: contractSvc,
		now:         time.Now,
	}
}

// Format identifies a statement file type
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ContentType returns the MIME type served for the format
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

// ExportSchedule loads the contract and renders its statement in format
func (s *ExportService) ExportSchedule(ctx context.Context, contractID uint, format Format) ([]byte, string, error) {
	contract, err := s.contractSvc.FindByIDWithSchedules(ctx, contractID)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case FormatCSV:
		return s.ExportCSV(ctx, contract)
	case FormatXLSX:
		return s.ExportXLSX(ctx, contract)
	case FormatPDF:
		return s.ExportPDF(ctx, contract)
	default:
		return nil, "", fmt.Errorf("formato de exportación no soportado: %s", format)
	}
}

func (s *ExportService) filename(contract *models.Contract, ext string) string {
	return fmt.Sprintf("plan_de_pagos_%s_%s.%s", contract.ContractNumber, s.now().Format("2006-01-02"), ext)
}

func (s *ExportService) ExportCSV(ctx context.Context, contract *models.Contract) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	// Header
	_ = writer.Write([]string{"Plan de Pagos", contract.ContractNumber})
	_ = writer.Write([]string{"Cliente", contract.Reservation.ClientName})
	_ = writer.Write([]string{"Propiedad", contract.Property.Name})
	_ = writer.Write([]string{"Precio Total", contract.TotalContractPrice.StringFixed(2)})
	_ = writer.Write([]string{"Prima", contract.DownpaymentTotal.StringFixed(2)})
	_ = writer.Write([]string{"Reserva Pagada", contract.ReservationFeePaid.StringFixed(2)})
	_ = writer.Write([]string{"Saldo Pendiente", contract.RemainingBalance.StringFixed(2)})
	_ = writer.Write([]string{""})

	// Schedule
	_ = writer.Write([]string{"Cuota", "Vencimiento", "Monto", "Estado", "Fecha de Pago"})
	for _, entry := range contract.PaymentSchedules {
		_ = writer.Write([]string{
			strconv.Itoa(entry.InstallmentNumber),
			entry.DueDate.Format("2006-01-02"),
			entry.ScheduledAmount.StringFixed(2),
			paymentStatusLabel(entry.PaymentStatus),
			formatPaidAt(entry.PaidAt),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), s.filename(contract, "csv"), nil
}

func (s *ExportService) ExportXLSX(ctx context.Context, contract *models.Contract) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Plan de Pagos"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4})

	_ = f.SetCellValue(sheet, "A1", "Plan de Pagos "+contract.ContractNumber)
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	summary := [][2]interface{}{
		{"Cliente", contract.Reservation.ClientName},
		{"Propiedad", contract.Property.Name},
		{"Precio Total", contract.TotalContractPrice.InexactFloat64()},
		{"Prima (10%)", contract.DownpaymentTotal.InexactFloat64()},
		{"Financiamiento Bancario", contract.BankFinancing.InexactFloat64()},
		{"Reserva Pagada", contract.ReservationFeePaid.InexactFloat64()},
		{"Saldo de Prima", contract.RemainingBalance.InexactFloat64()},
		{"Plazo (meses)", contract.PaymentPlanMonths},
	}
	for i, row := range summary {
		r := i + 3
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row[0])
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row[1])
	}
	_ = f.SetCellStyle(sheet, "B5", "B9", moneyStyle)

	start := len(summary) + 4
	for col, title := range []string{"Cuota", "Vencimiento", "Monto", "Estado", "Fecha de Pago"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, start)
		_ = f.SetCellValue(sheet, cell, title)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, entry := range contract.PaymentSchedules {
		r := start + i + 1
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), entry.InstallmentNumber)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), entry.DueDate.Format("2006-01-02"))
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", r), entry.ScheduledAmount.InexactFloat64())
		_ = f.SetCellStyle(sheet, fmt.Sprintf("C%d", r), fmt.Sprintf("C%d", r), moneyStyle)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", r), paymentStatusLabel(entry.PaymentStatus))
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", r), formatPaidAt(entry.PaidAt))
	}
	_ = f.SetColWidth(sheet, "A", "E", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	return buf.Bytes(), s.filename(contract, "xlsx"), nil
}

func (s *ExportService) ExportPDF(ctx context.Context, contract *models.Contract) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr("Plan de Pagos "+contract.ContractNumber))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	rows := [][2]string{
		{"Cliente:", contract.Reservation.ClientName},
		{"Propiedad:", contract.Property.Name},
		{"Precio Total:", formatMoney(contract.TotalContractPrice)},
		{"Prima (10%):", formatMoney(contract.DownpaymentTotal)},
		{"Financiamiento Bancario:", formatMoney(contract.BankFinancing)},
		{"Reserva Pagada:", formatMoney(contract.ReservationFeePaid)},
		{"Saldo de Prima:", formatMoney(contract.RemainingBalance)},
		{"Plazo:", fmt.Sprintf("%d meses", contract.PaymentPlanMonths)},
	}
	for _, row := range rows {
		pdf.Cell(60, 8, tr(row[0]))
		pdf.Cell(80, 8, tr(row[1]))
		pdf.Ln(6)
	}
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 6, tr("Saldo en letras: "+AmountToWords(contract.RemainingBalance)), "", "L", false)
	pdf.Ln(4)

	widths := []float64{20, 40, 40, 35, 40}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	for i, title := range []string{"Cuota", "Vencimiento", "Monto", "Estado", "Fecha de Pago"} {
		pdf.CellFormat(widths[i], 8, tr(title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, entry := range contract.PaymentSchedules {
		pdf.CellFormat(widths[0], 7, strconv.Itoa(entry.InstallmentNumber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 7, entry.DueDate.Format(dateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, formatMoney(entry.ScheduledAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, tr(paymentStatusLabel(entry.PaymentStatus)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 7, formatPaidAt(entry.PaidAt), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), s.filename(contract, "pdf"), nil
}

func formatPaidAt(paidAt *time.Time) string {
	if paidAt == nil {
		return ""
	}
	return paidAt.Format(dateLayout)
}
