package repository

import (
	"context"

	"gorm.io/gorm"

	"resmatic/internal/model"
)

// AuditLogRepository appends audit entries.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
}

type auditLogRepository struct {
	db *gorm.DB
}

func (r *auditLogRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
