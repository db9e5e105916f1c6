package repository

import (
	"context"

	domain "github.com/C-P-WAZARIYO/Field-Pro/internal/audit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.AuditLog) error {
	return db.WithContext(ctx).Exec(`
		INSERT INTO audit_logs (id, actor_id, action, entity_type, entity_id, detail, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.ActorID, entry.Action, entry.EntityType, entry.EntityID, entry.Detail, entry.IPAddress, entry.UserAgent, entry.CreatedAt).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, action string, limit int) ([]*domain.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}

	q := db.WithContext(ctx).Model(&domain.AuditLog{})
	if action != "" {
		q = q.Where("action = ?", action)
	}

	var entries []*domain.AuditLog
	if err := q.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
