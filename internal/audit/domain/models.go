package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Audit actions recorded by the backend. Free-form actions are allowed; these
// cover the built-in write paths.
const (
	ActionCaseUpload     = "case.upload"
	ActionCaseCreate     = "case.create"
	ActionCaseStatus     = "case.status_update"
	ActionCaseAllocate   = "case.allocate"
	ActionFeedbackSubmit = "feedback.submit"
	ActionFeedbackFake   = "feedback.mark_fake"
	ActionFeedbackReject = "feedback.reject"
	ActionPTPCheck       = "feedback.ptp_check"
)

// AuditLog is one append-only record of a state-changing operation.
type AuditLog struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	ActorID    *snowflake.ID `gorm:"column:actor_id;index" json:"actor_id,omitempty"`
	Action     string        `gorm:"column:action;not null;index" json:"action"`
	EntityType string        `gorm:"column:entity_type;not null" json:"entity_type"`
	EntityID   string        `gorm:"column:entity_id;index" json:"entity_id"`
	Detail     string        `gorm:"column:detail" json:"detail,omitempty"`
	IPAddress  string        `gorm:"column:ip_address" json:"ip_address,omitempty"`
	UserAgent  string        `gorm:"column:user_agent" json:"user_agent,omitempty"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
