package services

import (
	"github.com/sjperalta/fintera-homes/internal/config"
	"github.com/sjperalta/fintera-homes/internal/jobs"
	"github.com/sjperalta/fintera-homes/internal/repository"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Auth        *AuthService
	Property    *PropertyService
	Reservation *ReservationService
	Contract    *ContractService
	Schedule    *PaymentScheduleService
	Audit       *AuditService
	Email       *EmailService
	Export      *ExportService
	Job         *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config, db *gorm.DB) *Services {
	emailSvc := NewEmailService(cfg)
	auditSvc := NewAuditService(db)
	scheduleSvc := NewPaymentScheduleService()
	contractSvc := NewContractService(repos, scheduleSvc, emailSvc, auditSvc, worker, cfg.DBOperationTimeout)

	return &Services{
		Auth:        NewAuthService(repos.User, repos.RefreshToken, cfg),
		Property:    NewPropertyService(repos, cfg.DBOperationTimeout),
		Reservation: NewReservationService(repos, emailSvc, auditSvc, worker, cfg.DBOperationTimeout),
		Contract:    contractSvc,
		Schedule:    scheduleSvc,
		Audit:       auditSvc,
		Email:       emailSvc,
		Export:      NewExportService(contractSvc),
		Job:         NewJobService(worker),
	}
}

// enqueue hands a side effect to the worker; without a worker it is dropped
func enqueue(worker *jobs.Worker, job jobs.Job) {
	if worker == nil {
		return
	}
	worker.EnqueueAsync(job)
}
