package service

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	domain "github.com/C-P-WAZARIYO/Field-Pro/internal/export/domain"
	feedbackdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/domain"
	userdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/user/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func strPtr(s string) *string { return &s }

func TestWhoMet(t *testing.T) {
	tests := []struct {
		name     string
		fb       feedbackdomain.Feedback
		wantWho  string
		wantName string
	}{
		{
			name:     "explicit relation and met name win",
			fb:       feedbackdomain.Feedback{WhoMet: "Customer", Relation: strPtr("Brother"), MetName: strPtr("Ravi")},
			wantWho:  "Brother",
			wantName: "Ravi",
		},
		{
			name:     "customer meeting names the account holder",
			fb:       feedbackdomain.Feedback{WhoMet: "Customer"},
			wantWho:  "Customer",
			wantName: "Sunita Devi",
		},
		{
			name:     "bare met name keeps the who-met label",
			fb:       feedbackdomain.Feedback{WhoMet: "Neighbour", MetName: strPtr("Mohan")},
			wantWho:  "Neighbour",
			wantName: "Mohan",
		},
		{
			name:     "nothing recorded falls back to the account holder",
			fb:       feedbackdomain.Feedback{WhoMet: "Guard"},
			wantWho:  "Guard",
			wantName: "Sunita Devi",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			who, name := whoMet(tc.fb, "Sunita Devi")
			assert.Equal(t, tc.wantWho, who)
			assert.Equal(t, tc.wantName, name)
		})
	}
}

func TestBuildVisitedRows(t *testing.T) {
	execID := snowflake.ID(42)
	empID := "EMP001"
	ptp := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 15, 8, 30, 0, 0, time.UTC)

	vc := casesdomain.VisitedCase{
		CaseView: casesdomain.CaseView{
			Case: casesdomain.Case{
				AccountID:    "ACC-1",
				CustomerName: "Sunita Devi",
				BankName:     "HDFC",
				ProductType:  "PL",
				BKT:          strPtr("X1"),
			},
			Feedbacks: []feedbackdomain.Feedback{
				{
					ExecutiveID:  execID,
					VisitCode:    "PTP",
					WhoMet:       "Customer",
					MeetingPlace: strPtr("Residence"),
					Remarks:      strPtr("promised to pay"),
					Lat:          floatPtr(12.5),
					Lng:          floatPtr(77.25),
					PTPDate:      &ptp,
					DeviceInfo:   strPtr("Pixel 8 / Android 15"),
					CreatedAt:    created,
					UpdatedAt:    created,
				},
				{
					ExecutiveID:     execID,
					VisitCode:       "FAKE",
					WhoMet:          "Guard",
					IsFakeVisit:     true,
					FakeVisitReason: strPtr("location mismatch"),
					DeviceInfo:      strPtr(`{"model":"Pixel 8"}`),
					Status:          feedbackdomain.StatusRejected,
					CreatedAt:       created,
					UpdatedAt:       created,
				},
			},
		},
		Visits: 2,
	}
	executives := map[snowflake.ID]*userdomain.User{
		execID: {ID: execID, EmpID: &empID, FirstName: "Asha", LastName: "Verma"},
	}

	rows := BuildVisitedRows([]casesdomain.VisitedCase{vc}, executives)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "ACC-1", first.AccountID)
	assert.Equal(t, "Customer", first.WhoMet)
	assert.Equal(t, "Sunita Devi", first.NameOfPersonMet)
	assert.Equal(t, "Asha Verma", first.ExecutiveName)
	assert.Equal(t, "EMP001", first.ExecutiveEmpID)
	assert.Equal(t, "12.5", first.Latitude)
	assert.Equal(t, "77.25", first.Longitude)
	assert.Equal(t, "2026-04-01T10:00:00Z", first.PTPDate)
	// free-text device info comes out JSON-encoded
	assert.Equal(t, `"Pixel 8 / Android 15"`, first.DeviceInfo)
	// a blank status renders as Visited
	assert.Equal(t, feedbackdomain.StatusVisited, first.Status)
	assert.Equal(t, "2026-03-15T08:30:00Z", first.CreatedAt)

	second := rows[1]
	assert.True(t, second.IsFakeVisit)
	assert.Equal(t, "location mismatch", second.FakeVisitReason)
	// valid JSON passes through untouched
	assert.Equal(t, `{"model":"Pixel 8"}`, second.DeviceInfo)
	assert.Equal(t, feedbackdomain.StatusRejected, second.Status)

	// unknown executive leaves the name cells blank
	rows = BuildVisitedRows([]casesdomain.VisitedCase{vc}, nil)
	assert.Empty(t, rows[0].ExecutiveName)
	assert.Empty(t, rows[0].ExecutiveEmpID)
}

func TestValuesMatchesColumns(t *testing.T) {
	row := domain.VisitedRow{
		AccountID:   "ACC-1",
		IsFakeVisit: true,
	}

	values := Values(row)
	require.Len(t, values, len(Columns))
	assert.Equal(t, "ACC-1", values[0])

	byColumn := map[string]string{}
	for i, col := range Columns {
		byColumn[col] = values[i]
	}
	assert.Equal(t, "true", byColumn["IsFakeVisit"])
	assert.Equal(t, "false", byColumn["PTPBroken"])
}

func TestWriteCSV(t *testing.T) {
	rows := []domain.VisitedRow{
		{AccountID: "ACC-1", CustomerName: "Sunita, Devi", Status: "Visited"},
	}

	data, err := WriteCSV(rows)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Columns, records[0])
	assert.Equal(t, "ACC-1", records[1][0])
	assert.Equal(t, "Sunita, Devi", records[1][1])
}

func TestWriteXLSX(t *testing.T) {
	rows := []domain.VisitedRow{
		{AccountID: "ACC-1", CustomerName: "Sunita Devi"},
		{AccountID: "ACC-2", CustomerName: "Ravi Kumar"},
	}

	data, err := WriteXLSX(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"VisitedCases"}, f.GetSheetList())
	sheetRows, err := f.GetRows("VisitedCases")
	require.NoError(t, err)
	require.Len(t, sheetRows, 3)
	assert.Equal(t, Columns[0], sheetRows[0][0])
	assert.Equal(t, "ACC-1", sheetRows[1][0])
	assert.Equal(t, "Ravi Kumar", sheetRows[2][1])
}

func floatPtr(f float64) *float64 { return &f }
