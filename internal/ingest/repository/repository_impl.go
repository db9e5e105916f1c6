package repository

import (
	"context"

	"github.com/C-P-WAZARIYO/Field-Pro/internal/ingest/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, upload *domain.CaseUpload) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO case_uploads (id, supervisor_id, filename, upload_mode, total_cases, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		upload.ID,
		upload.SupervisorID,
		upload.Filename,
		upload.UploadMode,
		upload.TotalCases,
		upload.CreatedAt,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, limit int) ([]*domain.CaseUpload, error) {
	if limit <= 0 {
		limit = 100
	}
	var uploads []*domain.CaseUpload
	err := db.WithContext(ctx).
		Model(&domain.CaseUpload{}).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}
	return uploads, nil
}
