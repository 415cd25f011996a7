package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	ierr "taxengine/internal/errors"
	"taxengine/internal/model"
	"taxengine/pkg/pagination"
)

type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
	ListByProfile(ctx context.Context, profileID uuid.UUID, page, limit int) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *auditRepository) ListByProfile(ctx context.Context, profileID uuid.UUID, page, limit int) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	db := GetDB(ctx, r.db).Model(&model.AuditLog{}).Where("profile_id = ?", profileID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, ierr.WithError(err).WithHint("Failed to count audit logs").Mark(ierr.ErrDatabase)
	}

	p := pagination.New(page, limit)
	if err := db.Order("created_at desc").Offset(p.Offset).Limit(p.Limit).Find(&logs).Error; err != nil {
		return nil, 0, ierr.WithError(err).WithHint("Failed to list audit logs").Mark(ierr.ErrDatabase)
	}

	return logs, total, nil
}
