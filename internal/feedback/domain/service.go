package domain

import (
	"context"
	"errors"
	"time"
)

type SubmitFeedbackRequest struct {
	CaseID      string
	ExecutiveID string

	VisitCode    string
	WhoMet       string
	Relation     string
	MetName      string
	MeetingPlace string
	Remarks      string
	AssetStatus  string

	PhotoURL            string
	Lat                 *float64
	Lng                 *float64
	DeviceInfo          string
	DistanceFromAddress *float64

	PTPDate *time.Time
}

type MarkFakeRequest struct {
	ID     string
	Reason string
}

type Service interface {
	Submit(ctx context.Context, req SubmitFeedbackRequest) (Feedback, error)
	// MarkFake flags a visit as fraudulent; the row stays attached to its case.
	MarkFake(ctx context.Context, req MarkFakeRequest) (Feedback, error)
	// Reject logically removes a visit from active consideration.
	Reject(ctx context.Context, id string) (Feedback, error)
	// CheckBrokenPTP flags promises whose date passed while the case stayed
	// open. Returns the number of feedbacks flagged.
	CheckBrokenPTP(ctx context.Context) (int64, error)
	// PTPAlerts lists broken and soon-due promises. A non-positive window
	// falls back to the default.
	PTPAlerts(ctx context.Context, within time.Duration) ([]PTPAlert, error)
	FakeVisitSummary(ctx context.Context) (FakeVisitSummary, error)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidCase      = errors.New("invalid_case")
	ErrInvalidExecutive = errors.New("invalid_executive")
	ErrInvalidVisitCode = errors.New("invalid_visit_code")
	ErrNotFound         = errors.New("not_found")
)
