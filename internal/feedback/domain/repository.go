package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, fb *Feedback) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Feedback, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, fb *Feedback) error
	// ListByCaseIDs returns feedbacks for the given cases, newest first,
	// grouped by case by the caller.
	ListByCaseIDs(ctx context.Context, db *gorm.DB, caseIDs []snowflake.ID) ([]*Feedback, error)
	// MarkBrokenPTP flags visited feedbacks whose promise date passed before
	// now while the parent case is still open. Returns rows flagged.
	MarkBrokenPTP(ctx context.Context, db *gorm.DB, now time.Time) (int64, error)
	// ListPTPAlerts returns broken promises plus promises due by until, on
	// open cases only, soonest first.
	ListPTPAlerts(ctx context.Context, db *gorm.DB, until time.Time) ([]PTPAlert, error)
	CountFakeByExecutive(ctx context.Context, db *gorm.DB) ([]FakeVisitCount, error)
}
