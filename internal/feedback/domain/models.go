package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Feedback statuses. Audit actions change status; feedback rows are
// otherwise immutable after submission.
const (
	StatusVisited  = "Visited"
	StatusRejected = "Rejected"
	StatusFake     = "Fake"
)

// Feedback is one geo-tagged visit record attached to exactly one case.
type Feedback struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	CaseID      snowflake.ID `gorm:"column:case_id;not null;index" json:"case_id"`
	ExecutiveID snowflake.ID `gorm:"column:executive_id;not null;index" json:"executive_id"`

	VisitCode    string  `gorm:"column:visit_code" json:"visit_code"`
	WhoMet       string  `gorm:"column:who_met" json:"who_met"`
	Relation     *string `gorm:"column:relation" json:"relation,omitempty"`
	MetName      *string `gorm:"column:met_name" json:"met_name,omitempty"`
	MeetingPlace *string `gorm:"column:meeting_place" json:"meeting_place,omitempty"`
	Remarks      *string `gorm:"column:remarks" json:"remarks,omitempty"`
	AssetStatus  *string `gorm:"column:asset_status" json:"asset_status,omitempty"`

	PhotoURL            *string  `gorm:"column:photo_url" json:"photo_url,omitempty"`
	Lat                 *float64 `gorm:"column:lat" json:"lat,omitempty"`
	Lng                 *float64 `gorm:"column:lng" json:"lng,omitempty"`
	DeviceInfo          *string  `gorm:"column:device_info" json:"device_info,omitempty"`
	DistanceFromAddress *float64 `gorm:"column:distance_from_address" json:"distance_from_address,omitempty"`

	PTPDate   *time.Time `gorm:"column:ptp_date" json:"ptp_date,omitempty"`
	PTPBroken bool       `gorm:"column:ptp_broken;not null;default:false" json:"ptp_broken"`

	IsFakeVisit     bool    `gorm:"column:is_fake_visit;not null;default:false" json:"is_fake_visit"`
	FakeVisitReason *string `gorm:"column:fake_visit_reason" json:"fake_visit_reason,omitempty"`

	Status string `gorm:"column:status;not null;default:Visited" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Feedback) TableName() string { return "feedbacks" }

// PTPAlert is one promise-to-pay needing attention on a still-open case:
// already broken, or due inside the alert window.
type PTPAlert struct {
	FeedbackID   snowflake.ID `gorm:"column:feedback_id" json:"feedback_id"`
	CaseID       snowflake.ID `gorm:"column:case_id" json:"case_id"`
	AccountID    string       `gorm:"column:acc_id" json:"acc_id"`
	CustomerName string       `gorm:"column:customer_name" json:"customer_name"`
	ExecutiveID  snowflake.ID `gorm:"column:executive_id" json:"executive_id"`
	PTPDate      time.Time    `gorm:"column:ptp_date" json:"ptp_date"`
	PTPBroken    bool         `gorm:"column:ptp_broken" json:"ptp_broken"`
}

// FakeVisitCount is one executive's tally of visits flagged fake.
type FakeVisitCount struct {
	ExecutiveID snowflake.ID `gorm:"column:executive_id" json:"executive_id"`
	Count       int64        `gorm:"column:count" json:"count"`
}

// FakeVisitSummary totals flagged visits across all executives.
type FakeVisitSummary struct {
	Total       int64            `json:"total"`
	ByExecutive []FakeVisitCount `json:"byExecutive"`
}
