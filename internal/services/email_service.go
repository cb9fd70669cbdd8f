package services

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/mail"

	"github.com/resend/resend-go/v2"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/config"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/pkg/logger"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

const dateLayout = "02/01/2006"

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

// checkEmailPreconditions reports whether an email for operation should be
// sent to address. Disabled notifications are not an error.
func (s *EmailService) checkEmailPreconditions(address, operation string) (bool, error) {
	if !s.config.EnableEmailNotifications {
		logger.Debug("email notifications disabled, skipping", slog.String("operation", operation))
		return false, nil
	}
	if s.config.ResendAPIKey == "" {
		return false, errors.New("RESEND_API_KEY is not set")
	}
	if _, err := mail.ParseAddress(address); err != nil {
		return false, fmt.Errorf("invalid recipient %q for %s: %w", address, operation, err)
	}
	return true, nil
}

type scheduleLine struct {
	Number  int
	DueDate string
	Amount  string
	Status  string
}

// SendReservationApproved tells the client their reservation was approved
func (s *EmailService) SendReservationApproved(ctx context.Context, reservation *models.Reservation) error {
	data := struct {
		Name           string
		TrackingNumber string
		PropertyName   string
		ReservationFee string
	}{
		Name:           reservation.ClientName,
		TrackingNumber: reservation.TrackingNumber(),
		PropertyName:   reservation.Property.Name,
		ReservationFee: formatMoney(reservation.ReservationFee),
	}
	return s.send(ctx, reservation.ClientEmail, "Reserva Aprobada", "reservation_approved.html", data)
}

// SendReservationRejected tells the client their reservation was rejected and why
func (s *EmailService) SendReservationRejected(ctx context.Context, reservation *models.Reservation) error {
	reason := models.DefaultRejectionReason
	if reservation.RejectionReason != nil {
		reason = *reservation.RejectionReason
	}

	data := struct {
		Name           string
		TrackingNumber string
		PropertyName   string
		Reason         string
	}{
		Name:           reservation.ClientName,
		TrackingNumber: reservation.TrackingNumber(),
		PropertyName:   reservation.Property.Name,
		Reason:         reason,
	}
	return s.send(ctx, reservation.ClientEmail, "Reserva Rechazada", "reservation_rejected.html", data)
}

// SendContractCreated sends the client their contract figures and installment plan
func (s *EmailService) SendContractCreated(ctx context.Context, contract *models.Contract, reservation *models.Reservation) error {
	data := struct {
		Name                 string
		ContractNumber       string
		PropertyName         string
		TotalPrice           string
		DownpaymentTotal     string
		ReservationFeePaid   string
		RemainingDownpayment string
		Months               int
		Schedule             []scheduleLine
	}{
		Name:                 reservation.ClientName,
		ContractNumber:       contract.ContractNumber,
		PropertyName:         reservation.Property.Name,
		TotalPrice:           formatMoney(contract.TotalContractPrice),
		DownpaymentTotal:     formatMoney(contract.DownpaymentTotal),
		ReservationFeePaid:   formatMoney(contract.ReservationFeePaid),
		RemainingDownpayment: formatMoney(contract.RemainingDownpayment),
		Months:               contract.PaymentPlanMonths,
		Schedule:             scheduleLines(contract.PaymentSchedules),
	}
	return s.send(ctx, reservation.ClientEmail, "Contrato "+contract.ContractNumber, "contract_created.html", data)
}

// SendPlanChanged sends the client the revised installment plan
func (s *EmailService) SendPlanChanged(ctx context.Context, contract *models.Contract, reservation *models.Reservation, previousMonths int) error {
	data := struct {
		Name             string
		ContractNumber   string
		PreviousMonths   int
		Months           int
		RemainingBalance string
		Schedule         []scheduleLine
	}{
		Name:             reservation.ClientName,
		ContractNumber:   contract.ContractNumber,
		PreviousMonths:   previousMonths,
		Months:           contract.PaymentPlanMonths,
		RemainingBalance: formatMoney(contract.RemainingBalance),
		Schedule:         scheduleLines(contract.PaymentSchedules),
	}
	return s.send(ctx, reservation.ClientEmail, "Plan de pagos actualizado", "plan_changed.html", data)
}

func (s *EmailService) send(ctx context.Context, to, subject, templateName string, data interface{}) error {
	ok, err := s.checkEmailPreconditions(to, subject)
	if !ok {
		return err
	}

	body, err := s.renderTemplate(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if _, err := s.resendClient.Emails.SendWithContext(ctx, params); err != nil {
		logger.Error("failed to send email", slog.String("to", to), slog.String("subject", subject), slog.String("error", err.Error()))
		return err
	}

	logger.Info("email sent", slog.String("to", to), slog.String("subject", subject))
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/layout.html", "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}

func scheduleLines(entries []models.PaymentSchedule) []scheduleLine {
	lines := make([]scheduleLine, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, scheduleLine{
			Number:  entry.InstallmentNumber,
			DueDate: entry.DueDate.Format(dateLayout),
			Amount:  formatMoney(entry.ScheduledAmount),
			Status:  paymentStatusLabel(entry.PaymentStatus),
		})
	}
	return lines
}

// formatMoney renders an amount in lempiras with two decimals
func formatMoney(amount decimal.Decimal) string {
	return "L " + amount.StringFixed(2)
}

func paymentStatusLabel(status string) string {
	switch status {
	case models.PaymentStatusPaid:
		return "Pagada"
	case models.PaymentStatusOverdue:
		return "Vencida"
	default:
		return "Pendiente"
	}
}
