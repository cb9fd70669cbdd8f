package services

import (
	"context"
	"log/slog"

	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/pkg/logger"
	"gorm.io/gorm"
)

type clientMetaKey struct{}

type clientMeta struct {
	ip        string
	userAgent string
}

// ContextWithClient attaches the caller's IP and user agent so audit entries
// written further down the call chain can record them.
func ContextWithClient(ctx context.Context, ip, userAgent string) context.Context {
	return context.WithValue(ctx, clientMetaKey{}, clientMeta{ip: ip, userAgent: userAgent})
}

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Log records an audit entry
func (s *AuditService) Log(ctx context.Context, userID uint, action, entity string, entityID uint, details string) error {
	meta, _ := ctx.Value(clientMetaKey{}).(clientMeta)
	logEntry := &models.AuditLog{
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: meta.ip,
		UserAgent: meta.userAgent,
	}
	return s.db.WithContext(ctx).Omit("User").Create(logEntry).Error
}

// Record writes an audit entry and only logs a failure. Audit writes happen
// after the business transaction committed and never change its outcome.
func (s *AuditService) Record(ctx context.Context, userID uint, action, entity string, entityID uint, details string) {
	if err := s.Log(ctx, userID, action, entity, entityID, details); err != nil {
		logger.Warn("failed to write audit log",
			slog.String("action", action),
			slog.String("entity", entity),
			slog.Uint64("entity_id", uint64(entityID)),
			slog.String("error", err.Error()),
		)
	}
}

// List retrieves audit logs, optionally filtered by entity
func (s *AuditService) List(ctx context.Context, entity string, entityID uint, limit, offset int) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	db := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if entity != "" {
		db = db.Where("entity = ?", entity)
	}
	if entityID > 0 {
		db = db.Where("entity_id = ?", entityID)
	}

	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := db.Preload("User").Order("created_at desc, id desc").Limit(limit).Offset(offset).Find(&logs)
	return logs, total, result.Error
}
