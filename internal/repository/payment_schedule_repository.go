package repository

import (
	"context"
	"time"

	"github.com/sjperalta/fintera-homes/internal/models"
	"gorm.io/gorm"
)

// unpaidStatuses are the installment statuses replaced by a plan change
var unpaidStatuses = []string{models.PaymentStatusPending, models.PaymentStatusOverdue}

// PaymentScheduleRepository defines the interface for installment data access
type PaymentScheduleRepository interface {
	FindByID(ctx context.Context, id uint) (*models.PaymentSchedule, error)
	FindByContract(ctx context.Context, contractID uint) ([]models.PaymentSchedule, error)
	// CreateBatch inserts entries in one statement. Callers run it inside a
	// transaction so a failure leaves no partial schedule behind.
	CreateBatch(ctx context.Context, entries []models.PaymentSchedule) error
	// DeleteUnpaidByContract removes pending and overdue entries and returns how many were removed.
	DeleteUnpaidByContract(ctx context.Context, contractID uint) (int64, error)
	Update(ctx context.Context, entry *models.PaymentSchedule) error
	FindPendingDueBefore(ctx context.Context, before time.Time) ([]models.PaymentSchedule, error)
	// MarkOverdue flips the given entries to overdue, skipping any that are no longer pending.
	MarkOverdue(ctx context.Context, ids []uint) (int64, error)
}

type paymentScheduleRepository struct {
	db *gorm.DB
}

// NewPaymentScheduleRepository creates a new payment schedule repository
func NewPaymentScheduleRepository(db *gorm.DB) PaymentScheduleRepository {
	return &paymentScheduleRepository{db: db}
}

func (r *paymentScheduleRepository) FindByID(ctx context.Context, id uint) (*models.PaymentSchedule, error) {
	var entry models.PaymentSchedule
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *paymentScheduleRepository) FindByContract(ctx context.Context, contractID uint) ([]models.PaymentSchedule, error) {
	var entries []models.PaymentSchedule
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("installment_number ASC").
		Find(&entries).Error
	return entries, err
}

func (r *paymentScheduleRepository) CreateBatch(ctx context.Context, entries []models.PaymentSchedule) error {
	if len(entries) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Create(&entries).Error)
}

func (r *paymentScheduleRepository) DeleteUnpaidByContract(ctx context.Context, contractID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("contract_id = ? AND payment_status IN ?", contractID, unpaidStatuses).
		Delete(&models.PaymentSchedule{})
	return result.RowsAffected, result.Error
}

func (r *paymentScheduleRepository) Update(ctx context.Context, entry *models.PaymentSchedule) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *paymentScheduleRepository) FindPendingDueBefore(ctx context.Context, before time.Time) ([]models.PaymentSchedule, error) {
	var entries []models.PaymentSchedule
	err := r.db.WithContext(ctx).
		Where("payment_status = ? AND due_date < ?", models.PaymentStatusPending, before).
		Order("due_date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *paymentScheduleRepository) MarkOverdue(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.PaymentSchedule{}).
		Where("id IN ? AND payment_status = ?", ids, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusOverdue,
			"updated_at":     time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

// PlanRevisionRepository defines the interface for plan change history
type PlanRevisionRepository interface {
	Create(ctx context.Context, revision *models.PlanRevision) error
	FindByContract(ctx context.Context, contractID uint) ([]models.PlanRevision, error)
}

type planRevisionRepository struct {
	db *gorm.DB
}

// NewPlanRevisionRepository creates a new plan revision repository
func NewPlanRevisionRepository(db *gorm.DB) PlanRevisionRepository {
	return &planRevisionRepository{db: db}
}

func (r *planRevisionRepository) Create(ctx context.Context, revision *models.PlanRevision) error {
	return r.db.WithContext(ctx).Create(revision).Error
}

func (r *planRevisionRepository) FindByContract(ctx context.Context, contractID uint) ([]models.PlanRevision, error) {
	var revisions []models.PlanRevision
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at DESC, id DESC").
		Find(&revisions).Error
	return revisions, err
}
