package repository

import (
	"context"
	"strings"
	"time"

	"github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// mutable columns replaced wholesale on re-upload. acc_id, id and created_at
// stay untouched.
var upsertColumns = []string{
	"cust_id", "customer_name", "phone_number", "address", "pincode",
	"lat", "lng", "pos_amount", "overdue_amount", "collection_amount",
	"toss_amount", "emi_amount", "interest", "dpd", "bkt", "product_type",
	"sub_product_name", "bank_name", "npa_status", "priority", "performance",
	"emp_id", "executive_id", "month", "year", "upload_mode", "updated_at",
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, c *domain.Case) error {
	return db.WithContext(ctx).Create(c).Error
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, c *domain.Case) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "acc_id"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(c).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Case, error) {
	var c domain.Case
	err := db.WithContext(ctx).
		Model(&domain.Case{}).
		Where("id = ?", id).
		First(&c).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) FindByAccountID(ctx context.Context, db *gorm.DB, accountID string) (*domain.Case, error) {
	var c domain.Case
	err := db.WithContext(ctx).
		Model(&domain.Case{}).
		Where("acc_id = ?", strings.TrimSpace(accountID)).
		First(&c).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func applyFilter(stmt *gorm.DB, filter domain.Filter) *gorm.DB {
	if filter.ExecutiveID != nil {
		stmt = stmt.Where("executive_id = ?", *filter.ExecutiveID)
	}
	if filter.Month != 0 {
		stmt = stmt.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		stmt = stmt.Where("year = ?", filter.Year)
	}
	if filter.BankName != "" {
		stmt = stmt.Where("bank_name = ?", filter.BankName)
	}
	if filter.ProductType != "" {
		stmt = stmt.Where("product_type = ?", filter.ProductType)
	}
	if filter.BKT != "" {
		stmt = stmt.Where("bkt = ?", filter.BKT)
	}
	if filter.NPAStatus != "" {
		stmt = stmt.Where("npa_status = ?", filter.NPAStatus)
	}
	if filter.Priority != "" {
		stmt = stmt.Where("priority = ?", filter.Priority)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	return stmt
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.Filter, page pagination.Pagination) ([]*domain.Case, error) {
	page = page.Normalize()
	var cases []*domain.Case
	err := applyFilter(db.WithContext(ctx).Model(&domain.Case{}), filter).
		Order("created_at desc, id desc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB, filter domain.Filter) ([]*domain.Case, error) {
	var cases []*domain.Case
	err := applyFilter(db.WithContext(ctx).Model(&domain.Case{}), filter).
		Order("created_at desc, id desc").
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, filter domain.Filter) (int64, error) {
	var total int64
	err := applyFilter(db.WithContext(ctx).Model(&domain.Case{}), filter).
		Count(&total).Error
	return total, err
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status string) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Case{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

func (r *repo) Sample(ctx context.Context, db *gorm.DB, uploadMode string, limit int) ([]*domain.Case, error) {
	if limit <= 0 {
		limit = 100
	}
	var cases []*domain.Case
	err := db.WithContext(ctx).
		Model(&domain.Case{}).
		Where("upload_mode = ?", uploadMode).
		Order("updated_at desc, id desc").
		Limit(limit).
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *repo) AllocateUnassigned(ctx context.Context, db *gorm.DB, empID string, executiveID snowflake.ID) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Case{}).
		Where("emp_id = ? AND executive_id IS NULL", empID).
		Updates(map[string]any{
			"executive_id": executiveID,
			"updated_at":   time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

func (r *repo) CountAllocated(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Case{}).
		Where("executive_id IS NOT NULL").
		Count(&total).Error
	return total, err
}

func (r *repo) CountUnallocated(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Case{}).
		Where("executive_id IS NULL").
		Count(&total).Error
	return total, err
}

func (r *repo) GroupUnallocatedByEmpID(ctx context.Context, db *gorm.DB) ([]domain.EmpAllocation, error) {
	var rows []domain.EmpAllocation
	err := db.WithContext(ctx).Raw(
		`SELECT emp_id, COUNT(id) AS count
		 FROM cases
		 WHERE executive_id IS NULL
		 GROUP BY emp_id
		 ORDER BY count DESC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListVisited(ctx context.Context, db *gorm.DB, filter domain.Filter, page pagination.Pagination) ([]*domain.Case, error) {
	page = page.Normalize()
	var cases []*domain.Case
	err := applyFilter(db.WithContext(ctx).Model(&domain.Case{}), filter).
		Where("EXISTS (SELECT 1 FROM feedbacks WHERE feedbacks.case_id = cases.id)").
		Order("updated_at desc, id desc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *repo) CountVisited(ctx context.Context, db *gorm.DB, filter domain.Filter) (int64, error) {
	var total int64
	err := applyFilter(db.WithContext(ctx).Model(&domain.Case{}), filter).
		Where("EXISTS (SELECT 1 FROM feedbacks WHERE feedbacks.case_id = cases.id)").
		Count(&total).Error
	return total, err
}

func (r *repo) ListAllocatedForPeriod(ctx context.Context, db *gorm.DB, month, year int) ([]*domain.Case, error) {
	var cases []*domain.Case
	err := db.WithContext(ctx).
		Model(&domain.Case{}).
		Where("month = ? AND year = ? AND executive_id IS NOT NULL", month, year).
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}
