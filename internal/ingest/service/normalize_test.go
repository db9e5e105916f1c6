package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRows_SkipsRowsWithoutAccount(t *testing.T) {
	rows := []Row{
		{"Acc_No": "ACC-1", "Emp_ID": "EMP001", "POS_amount": "1500.50", "Bank_name": "HDFC"},
		{"Account": "ACC-2", "Name": "Meena Gupta"},
		{"Emp_ID": "EMP002", "POS_amount": "900"}, // no account column at all
		{"Acc_No": "   ", "Name": "Blank Account"},
	}

	drafts, skipped := NormalizeRows(rows)

	require.Len(t, drafts, 2)
	assert.Equal(t, "ACC-1", drafts[0].AccountID)
	assert.Equal(t, 2, drafts[0].RowNumber)
	assert.Equal(t, "ACC-2", drafts[1].AccountID)
	assert.Equal(t, 3, drafts[1].RowNumber)

	require.Len(t, skipped, 2)
	assert.Equal(t, 4, skipped[0].RowNumber)
	assert.Equal(t, "missing account number", skipped[0].Reason)
	assert.Equal(t, 5, skipped[1].RowNumber)
	assert.Equal(t, "missing account number", skipped[1].Reason)
}

func TestNormalizeRows_SynonymFallback(t *testing.T) {
	rows := []Row{
		{
			"acc_no":                          "ACC-9",
			"Account Holder Name":             "Suresh Kumar",
			"Bank name":                       "ICICI",
			"product name":                    "Personal Loan",
			"Bkt":                             "X2",
			"importance":                      "HIGH",
			"pos amount":                      "12,500.75",
			"overdue amount":                  "3000",
			"Performance (Flow/Stab/Norm/RB)": "rb",
			"emp id":                          "EMP007",
		},
	}

	drafts, skipped := NormalizeRows(rows)

	require.Empty(t, skipped)
	require.Len(t, drafts, 1)
	d := drafts[0]
	assert.Equal(t, "ACC-9", d.AccountID)
	assert.Equal(t, "Suresh Kumar", d.CustomerName)
	assert.Equal(t, "ICICI", d.BankName)
	assert.Equal(t, "Personal Loan", d.ProductType)
	require.NotNil(t, d.BKT)
	assert.Equal(t, "X2", *d.BKT)
	assert.Equal(t, "HIGH", d.Priority)
	assert.Equal(t, 12500.75, d.POSAmount)
	assert.Equal(t, 3000.0, d.OverdueAmount)
	require.NotNil(t, d.Performance)
	assert.Equal(t, "rb", *d.Performance)
	require.NotNil(t, d.EmpID)
	assert.Equal(t, "EMP007", *d.EmpID)
}

func TestNormalizeRows_PermissiveParsing(t *testing.T) {
	rows := []Row{
		{
			"Acc_No":     "ACC-3",
			"POS_amount": "not a number",
			"DPD":        "45.0",
			"lat":        "19.0760",
			"lng":        "garbage",
		},
	}

	drafts, skipped := NormalizeRows(rows)

	require.Empty(t, skipped)
	require.Len(t, drafts, 1)
	d := drafts[0]
	assert.Zero(t, d.POSAmount)
	assert.Equal(t, 45, d.DPD)
	require.NotNil(t, d.Lat)
	assert.InDelta(t, 19.0760, *d.Lat, 1e-9)
	assert.Nil(t, d.Lng)
}

func TestNormalizeRows_TrimsHeaderKeys(t *testing.T) {
	rows := []Row{
		{"  Acc_No  ": "ACC-4", " Emp_ID ": "EMP003"},
	}

	drafts, skipped := NormalizeRows(rows)

	require.Empty(t, skipped)
	require.Len(t, drafts, 1)
	assert.Equal(t, "ACC-4", drafts[0].AccountID)
	require.NotNil(t, drafts[0].EmpID)
	assert.Equal(t, "EMP003", *drafts[0].EmpID)
}

func TestDistinctEmpIDs(t *testing.T) {
	emp1, emp2, blank := "EMP001", " EMP002 ", "  "
	rows := []Row{
		{"Acc_No": "A1", "Emp_ID": emp1},
		{"Acc_No": "A2", "Emp_ID": emp2},
		{"Acc_No": "A3", "Emp_ID": emp1},
		{"Acc_No": "A4", "Emp_ID": blank},
		{"Acc_No": "A5"},
	}

	drafts, _ := NormalizeRows(rows)
	got := DistinctEmpIDs(drafts)

	assert.Equal(t, []string{"EMP001", "EMP002"}, got)
}
