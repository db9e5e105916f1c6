package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, upload *CaseUpload) error
	List(ctx context.Context, db *gorm.DB, limit int) ([]*CaseUpload, error)
}
