package domain

import (
	"context"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/pkg/db/pagination"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
)

// VisitedRow is one (case, visit) pair flattened for the export sheet.
type VisitedRow struct {
	AccountID           string
	CustomerName        string
	Bank                string
	Product             string
	BKT                 string
	WhoMet              string
	NameOfPersonMet     string
	MeetingPlace        string
	VisitObservation    string
	ExecutiveName       string
	ExecutiveEmpID      string
	VisitCode           string
	AssetStatus         string
	PhotoURL            string
	Latitude            string
	Longitude           string
	PTPDate             string
	IsFakeVisit         bool
	DistanceFromAddress string
	DeviceInfo          string
	PTPBroken           bool
	FakeVisitReason     string
	Status              string
	CreatedAt           string
	UpdatedAt           string
}

// Request scopes an export the same way the visited-cases query is scoped.
// Format defaults to CSV; anything other than "excel" is CSV.
type Request struct {
	Filter casesdomain.Filter
	Page   pagination.Pagination
	Format string
}

// File is a rendered export ready to stream to the client.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

type Service interface {
	VisitedCases(ctx context.Context, req Request) (File, error)
}
