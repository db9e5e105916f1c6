package service

import (
	"encoding/json"
	"strconv"
	"time"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	domain "github.com/C-P-WAZARIYO/Field-Pro/internal/export/domain"
	feedbackdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/domain"
	userdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/user/domain"
	"github.com/bwmarrin/snowflake"
)

// Columns is the export header row, in sheet order.
var Columns = []string{
	"AccountID", "CustomerName", "Bank", "Product", "BKT",
	"WhoMet", "NameOfPersonMet", "MeetingPlace", "VisitObservation",
	"ExecutiveName", "ExecutiveEmpID", "VisitCode", "AssetStatus",
	"PhotoURL", "Latitude", "Longitude", "PTPDate", "IsFakeVisit",
	"DistanceFromAddress", "DeviceInfo", "PTPBroken", "FakeVisitReason",
	"Status", "CreatedAt", "UpdatedAt",
}

// BuildVisitedRows flattens visited cases into one row per visit. The who-met
// fallback chain mirrors how field teams record third-party meetings: an
// explicit relation wins, a "Customer" meeting names the account holder, and
// a bare met-name keeps whatever who-met label came with it.
func BuildVisitedRows(cases []casesdomain.VisitedCase, executives map[snowflake.ID]*userdomain.User) []domain.VisitedRow {
	var rows []domain.VisitedRow
	for _, vc := range cases {
		for _, fb := range vc.Feedbacks {
			row := domain.VisitedRow{
				AccountID:           vc.AccountID,
				CustomerName:        vc.CustomerName,
				Bank:                vc.BankName,
				Product:             vc.ProductType,
				BKT:                 strVal(vc.BKT),
				MeetingPlace:        strVal(fb.MeetingPlace),
				VisitObservation:    strVal(fb.Remarks),
				VisitCode:           fb.VisitCode,
				AssetStatus:         strVal(fb.AssetStatus),
				PhotoURL:            strVal(fb.PhotoURL),
				Latitude:            floatVal(fb.Lat),
				Longitude:           floatVal(fb.Lng),
				PTPDate:             timeVal(fb.PTPDate),
				IsFakeVisit:         fb.IsFakeVisit,
				DistanceFromAddress: floatVal(fb.DistanceFromAddress),
				DeviceInfo:          deviceInfoVal(fb.DeviceInfo),
				PTPBroken:           fb.PTPBroken,
				FakeVisitReason:     strVal(fb.FakeVisitReason),
				Status:              statusVal(fb.Status),
				CreatedAt:           fb.CreatedAt.UTC().Format(time.RFC3339),
				UpdatedAt:           fb.UpdatedAt.UTC().Format(time.RFC3339),
			}
			row.WhoMet, row.NameOfPersonMet = whoMet(fb, vc.CustomerName)
			if exec, ok := executives[fb.ExecutiveID]; ok {
				row.ExecutiveName = exec.FullName()
				row.ExecutiveEmpID = strVal(exec.EmpID)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func whoMet(fb feedbackdomain.Feedback, customerName string) (string, string) {
	switch {
	case fb.Relation != nil && fb.MetName != nil:
		return *fb.Relation, *fb.MetName
	case fb.WhoMet == "Customer":
		return "Customer", customerName
	case fb.MetName != nil:
		return fb.WhoMet, *fb.MetName
	default:
		return fb.WhoMet, customerName
	}
}

// Values returns the row's cells in Columns order.
func Values(r domain.VisitedRow) []string {
	return []string{
		r.AccountID, r.CustomerName, r.Bank, r.Product, r.BKT,
		r.WhoMet, r.NameOfPersonMet, r.MeetingPlace, r.VisitObservation,
		r.ExecutiveName, r.ExecutiveEmpID, r.VisitCode, r.AssetStatus,
		r.PhotoURL, r.Latitude, r.Longitude, r.PTPDate, strconv.FormatBool(r.IsFakeVisit),
		r.DistanceFromAddress, r.DeviceInfo, strconv.FormatBool(r.PTPBroken), r.FakeVisitReason,
		r.Status, r.CreatedAt, r.UpdatedAt,
	}
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatVal(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func timeVal(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func statusVal(status string) string {
	if status == "" {
		return feedbackdomain.StatusVisited
	}
	return status
}

// deviceInfoVal normalizes stored device info to a JSON string cell.
func deviceInfoVal(info *string) string {
	if info == nil {
		return ""
	}
	if json.Valid([]byte(*info)) {
		return *info
	}
	encoded, err := json.Marshal(*info)
	if err != nil {
		return *info
	}
	return string(encoded)
}
