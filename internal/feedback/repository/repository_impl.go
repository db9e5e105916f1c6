package repository

import (
	"context"
	"time"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, fb *domain.Feedback) error {
	return db.WithContext(ctx).Create(fb).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Feedback, error) {
	var fb domain.Feedback
	err := db.WithContext(ctx).
		Model(&domain.Feedback{}).
		Where("id = ?", id).
		First(&fb).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, fb *domain.Feedback) error {
	return db.WithContext(ctx).
		Model(&domain.Feedback{}).
		Where("id = ?", fb.ID).
		Updates(map[string]any{
			"status":            fb.Status,
			"is_fake_visit":     fb.IsFakeVisit,
			"fake_visit_reason": fb.FakeVisitReason,
			"updated_at":        fb.UpdatedAt,
		}).Error
}

func (r *repo) ListByCaseIDs(ctx context.Context, db *gorm.DB, caseIDs []snowflake.ID) ([]*domain.Feedback, error) {
	if len(caseIDs) == 0 {
		return nil, nil
	}
	var feedbacks []*domain.Feedback
	err := db.WithContext(ctx).
		Model(&domain.Feedback{}).
		Where("case_id IN ?", caseIDs).
		Order("created_at desc, id desc").
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *repo) MarkBrokenPTP(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Feedback{}).
		Where("ptp_date IS NOT NULL AND ptp_date < ? AND ptp_broken = ?", now, false).
		Where("status = ?", domain.StatusVisited).
		Where("case_id IN (SELECT id FROM cases WHERE status = ?)", casesdomain.StatusOpen).
		Updates(map[string]any{
			"ptp_broken": true,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *repo) ListPTPAlerts(ctx context.Context, db *gorm.DB, until time.Time) ([]domain.PTPAlert, error) {
	var alerts []domain.PTPAlert
	err := db.WithContext(ctx).Raw(`
		SELECT f.id AS feedback_id, f.case_id, c.acc_id, c.customer_name,
		       f.executive_id, f.ptp_date, f.ptp_broken
		FROM feedbacks f
		JOIN cases c ON c.id = f.case_id
		WHERE f.ptp_date IS NOT NULL
		  AND f.status = ?
		  AND c.status = ?
		  AND (f.ptp_broken = ? OR f.ptp_date <= ?)
		ORDER BY f.ptp_date ASC, f.id ASC
	`, domain.StatusVisited, casesdomain.StatusOpen, true, until).Scan(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *repo) CountFakeByExecutive(ctx context.Context, db *gorm.DB) ([]domain.FakeVisitCount, error) {
	var rows []domain.FakeVisitCount
	err := db.WithContext(ctx).Raw(`
		SELECT executive_id, COUNT(*) AS count
		FROM feedbacks
		WHERE is_fake_visit = ?
		GROUP BY executive_id
		ORDER BY count DESC, executive_id ASC
	`, true).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
