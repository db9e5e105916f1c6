package domain

import (
	"context"

	"github.com/C-P-WAZARIYO/Field-Pro/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Filter narrows case queries. Zero values mean "no restriction".
type Filter struct {
	ExecutiveID *snowflake.ID
	Month       int
	Year        int
	BankName    string
	ProductType string
	BKT         string
	NPAStatus   string
	Priority    string
	Status      string
}

// EmpAllocation is one row of the unallocated-by-identifier breakdown.
type EmpAllocation struct {
	EmpID *string `gorm:"column:emp_id" json:"emp_id"`
	Count int64   `gorm:"column:count" json:"count"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, c *Case) error
	// Upsert creates the case when acc_id is unseen and otherwise replaces all
	// mutable fields, including executive_id. Last upload wins.
	Upsert(ctx context.Context, db *gorm.DB, c *Case) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Case, error)
	FindByAccountID(ctx context.Context, db *gorm.DB, accountID string) (*Case, error)
	List(ctx context.Context, db *gorm.DB, filter Filter, page pagination.Pagination) ([]*Case, error)
	// ListAll returns every case matching the filter, unbounded. Aggregation
	// paths fold over the full match set.
	ListAll(ctx context.Context, db *gorm.DB, filter Filter) ([]*Case, error)
	Count(ctx context.Context, db *gorm.DB, filter Filter) (int64, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status string) (int64, error)
	// Sample returns the most recently touched cases for an upload mode,
	// bounded for response-size control.
	Sample(ctx context.Context, db *gorm.DB, uploadMode string, limit int) ([]*Case, error)

	// AllocateUnassigned sets executive_id on every case carrying empID that is
	// currently unallocated. Already-allocated cases are never touched.
	AllocateUnassigned(ctx context.Context, db *gorm.DB, empID string, executiveID snowflake.ID) (int64, error)
	CountAllocated(ctx context.Context, db *gorm.DB) (int64, error)
	CountUnallocated(ctx context.Context, db *gorm.DB) (int64, error)
	GroupUnallocatedByEmpID(ctx context.Context, db *gorm.DB) ([]EmpAllocation, error)

	// ListVisited returns cases having at least one feedback, newest first.
	ListVisited(ctx context.Context, db *gorm.DB, filter Filter, page pagination.Pagination) ([]*Case, error)
	CountVisited(ctx context.Context, db *gorm.DB, filter Filter) (int64, error)

	// ListAllocatedForPeriod returns the month/year case set restricted to
	// cases with a non-null executive, for leaderboard aggregation.
	ListAllocatedForPeriod(ctx context.Context, db *gorm.DB, month, year int) ([]*Case, error)
}
