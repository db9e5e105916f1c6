package domain

import (
	"time"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	"github.com/bwmarrin/snowflake"
)

// CaseUpload is the immutable manifest of one bulk-upload operation.
type CaseUpload struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	SupervisorID *snowflake.ID `gorm:"column:supervisor_id;index" json:"supervisor_id,omitempty"`
	Filename     string        `gorm:"column:filename;not null" json:"filename"`
	UploadMode   string        `gorm:"column:upload_mode;not null" json:"upload_mode"`
	TotalCases   int           `gorm:"column:total_cases;not null" json:"total_cases"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (CaseUpload) TableName() string { return "case_uploads" }

// CaseDraft is one normalized spreadsheet row, ready for upsert. RowNumber is
// the 1-based sheet row it came from (header row included).
type CaseDraft struct {
	RowNumber int

	AccountID      string
	CustomerID     *string
	CustomerName   string
	PhoneNumber    *string
	Address        string
	Pincode        *string
	Lat            *float64
	Lng            *float64
	POSAmount      float64
	OverdueAmount  float64
	Collection     float64
	TossAmount     float64
	EMIAmount      float64
	Interest       float64
	DPD            int
	BKT            *string
	ProductType    string
	SubProductName *string
	BankName       string
	NPAStatus      *string
	Priority       string
	Performance    *string
	EmpID          *string
}

// SkippedRow records why a spreadsheet row was excluded from the upload.
type SkippedRow struct {
	RowNumber int    `json:"rowNumber"`
	Reason    string `json:"reason"`
}

// ResolvedEmployee is one employee identifier matched to a user record.
type ResolvedEmployee struct {
	EmpID string `json:"emp_id"`
	Name  string `json:"name"`
}

// Resolution is the advisory output of the batched employee lookup.
type Resolution struct {
	// ExecutiveByEmpID maps a trimmed identifier to the matched user id.
	ExecutiveByEmpID map[string]snowflake.ID
	Found            []ResolvedEmployee
	// NotFound preserves the input order of unmatched identifiers.
	NotFound []string
}

// AllocationStats summarizes the executive resolution for one upload.
type AllocationStats struct {
	Total             int      `json:"total"`
	Allocated         int      `json:"allocated"`
	Unallocated       int      `json:"unallocated"`
	FoundEmployees    int      `json:"foundEmployees"`
	NotFoundEmployees int      `json:"notFoundEmployees"`
	NotFoundEmpIDs    []string `json:"notFoundEmpIds,omitempty"`
}

// OverloadedExecutive flags an executive receiving more cases from one upload
// than the configured threshold. Informational only, never enforced.
type OverloadedExecutive struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// UploadResult is the structured summary returned for one bulk upload.
type UploadResult struct {
	Upload            CaseUpload            `json:"upload"`
	Created           int                   `json:"created"`
	Failed            int                   `json:"failed"`
	TotalRows         int                   `json:"totalRows"`
	SkippedRows       int                   `json:"skippedRows"`
	SkippedRowDetails []SkippedRow          `json:"skippedRowDetails,omitempty"`
	AllocationStats   AllocationStats       `json:"allocationStats"`
	Overloaded        []OverloadedExecutive `json:"overloaded,omitempty"`
	SampleCases       []casesdomain.Case    `json:"sampleCases,omitempty"`
}
