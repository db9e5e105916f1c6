package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Case lifecycle statuses. Cases are never hard-deleted; they transition
// to PAID or CLOSED instead.
const (
	StatusOpen   = "OPEN"
	StatusPaid   = "PAID"
	StatusClosed = "CLOSED"
)

// Recognized performance labels after normalization. Anything else counts
// as "other" in aggregates.
const (
	PerfFlow = "FLOW"
	PerfRB   = "RB"
	PerfNorm = "NORM"
	PerfStab = "STAB"
)

const (
	UploadModeOriginal = "ORIGINAL"
	UploadModeRevised  = "REVISED"
)

// Case is one debt-collection account record. AccountID is the upsert key
// and is immutable once created.
type Case struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	AccountID string       `gorm:"column:acc_id;not null;uniqueIndex" json:"acc_id"`

	CustomerID   *string  `gorm:"column:cust_id" json:"cust_id,omitempty"`
	CustomerName string   `gorm:"column:customer_name" json:"customer_name"`
	PhoneNumber  *string  `gorm:"column:phone_number" json:"phone_number,omitempty"`
	Address      string   `gorm:"column:address" json:"address"`
	Pincode      *string  `gorm:"column:pincode" json:"pincode,omitempty"`
	Lat          *float64 `gorm:"column:lat" json:"lat,omitempty"`
	Lng          *float64 `gorm:"column:lng" json:"lng,omitempty"`

	POSAmount        float64 `gorm:"column:pos_amount;not null;default:0" json:"pos_amount"`
	OverdueAmount    float64 `gorm:"column:overdue_amount;not null;default:0" json:"overdue_amount"`
	CollectionAmount float64 `gorm:"column:collection_amount;not null;default:0" json:"collection_amount"`
	TossAmount       float64 `gorm:"column:toss_amount;not null;default:0" json:"toss_amount"`
	EMIAmount        float64 `gorm:"column:emi_amount;not null;default:0" json:"emi_amount"`
	Interest         float64 `gorm:"column:interest;not null;default:0" json:"interest"`

	DPD            int     `gorm:"column:dpd;not null;default:0" json:"dpd"`
	BKT            *string `gorm:"column:bkt;index" json:"bkt,omitempty"`
	ProductType    string  `gorm:"column:product_type;index" json:"product_type"`
	SubProductName *string `gorm:"column:sub_product_name" json:"sub_product_name,omitempty"`
	BankName       string  `gorm:"column:bank_name;index" json:"bank_name"`
	NPAStatus      *string `gorm:"column:npa_status" json:"npa_status,omitempty"`
	Priority       string  `gorm:"column:priority" json:"priority"`
	Performance    *string `gorm:"column:performance" json:"performance,omitempty"`

	EmpID       *string       `gorm:"column:emp_id;index" json:"emp_id,omitempty"`
	ExecutiveID *snowflake.ID `gorm:"column:executive_id;index" json:"executive_id,omitempty"`

	Month      int    `gorm:"column:month;not null;index:idx_cases_period" json:"month"`
	Year       int    `gorm:"column:year;not null;index:idx_cases_period" json:"year"`
	UploadMode string `gorm:"column:upload_mode;not null;default:ORIGINAL" json:"upload_mode"`
	Status     string `gorm:"column:status;not null;default:OPEN;index" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Case) TableName() string { return "cases" }

// IsResolved reports whether the case reached a terminal recovery status.
func (c *Case) IsResolved() bool {
	return c.Status == StatusPaid || c.Status == StatusClosed
}

// NormalizePerformance trims and upper-cases a free-text performance label.
// Unrecognized labels are returned as-is after normalization; callers bucket
// them as "other".
func NormalizePerformance(performance *string) string {
	if performance == nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(*performance))
}
