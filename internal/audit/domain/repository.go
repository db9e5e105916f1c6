package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditLog) error
	// List returns recent entries newest first, optionally restricted to one
	// action. limit <= 0 falls back to a server-side default.
	List(ctx context.Context, db *gorm.DB, action string, limit int) ([]*AuditLog, error)
}
