package service

import (
	"strconv"
	"strings"

	"github.com/C-P-WAZARIYO/Field-Pro/internal/ingest/domain"
)

// Row is one raw spreadsheet row keyed by column header. Keys are trimmed
// before lookup; values stay as the sheet supplied them.
type Row map[string]string

// Column-name synonyms per logical field, checked in order. Matching is
// case-sensitive, mirroring the header variants seen in the field so far.
var (
	accountSynonyms = []string{"Acc_No", "Acc_no", "Acc No", "Account", "acc_no", "acc_id", "Acc ID", "ACC_NO", "Account_No"}
	empIDSynonyms   = []string{"Emp_ID", "emp_id", "Emp_id", "EMP_ID", "emp id", "Emp ID"}
	custIDSynonyms  = []string{"cust_id", "Cust_ID", "Cust_id"}

	customerNameSynonyms = []string{"Acc_holder_name", "Acc_Holder_Name", "Account Holder Name", "Name", "acc_holder_name"}
	phoneSynonyms        = []string{"phone_number", "Phone_number", "Phone", "phone"}
	addressSynonyms      = []string{"Acc_holder_address", "Acc_Holder_Address", "Address", "acc_holder_address"}
	pincodeSynonyms      = []string{"pincode", "Pincode"}
	latSynonyms          = []string{"lat", "Lat", "Latitude"}
	lngSynonyms          = []string{"lng", "Lng", "Longitude"}

	bankSynonyms       = []string{"Bank_name", "Bank name", "Bank", "bank_name"}
	productSynonyms    = []string{"Product_name", "product name", "Product", "product_name"}
	subProductSynonyms = []string{"Sub_product_name", "sub_product_name", "Sub_Product_Name"}
	bktSynonyms        = []string{"BKT", "bkt", "Bkt"}
	prioritySynonyms   = []string{"Importance", "importance", "priority"}
	npaSynonyms        = []string{"NPA_status", "npa status", "NPA Status", "npa_status", "NPA_Status"}
	perfSynonyms       = []string{"Performance (Flow/Stab/Norm/RB)", "Performance", "performance"}

	posSynonyms        = []string{"POS_amount", "pos amount", "Pos amount", "pos_amount", "POS_Amount"}
	overdueSynonyms    = []string{"Total_due_amount", "overdue_amount", "Overdue Amount", "overdue amount", "Total_Due_Amount"}
	dpdSynonyms        = []string{"DPD", "dpd", "Dpd"}
	collectionSynonyms = []string{"Collection_amount", "collection_amount", "Collection amount", "Collection_Amount"}
	tossSynonyms       = []string{"Toss_amount", "toss_amount", "Toss amount", "Toss_Amount"}
	emiSynonyms        = []string{"EMI_amount", "emi_amount", "EMI amount", "EMI_Amount"}
	interestSynonyms   = []string{"Interest", "interest"}
)

const reasonMissingAccount = "missing account number"

// NormalizeRows maps raw rows into case drafts, rejecting rows without an
// account identifier. Row i of the data maps to sheet row i+2 (the header is
// sheet row 1). No single row failure aborts the batch.
func NormalizeRows(rows []Row) ([]domain.CaseDraft, []domain.SkippedRow) {
	drafts := make([]domain.CaseDraft, 0, len(rows))
	var skipped []domain.SkippedRow

	for i, raw := range rows {
		row := trimKeys(raw)
		sheetRow := i + 2

		accountID, ok := lookup(row, accountSynonyms)
		if !ok {
			skipped = append(skipped, domain.SkippedRow{
				RowNumber: sheetRow,
				Reason:    reasonMissingAccount,
			})
			continue
		}

		draft := domain.CaseDraft{
			RowNumber:      sheetRow,
			AccountID:      accountID,
			CustomerID:     lookupOptional(row, custIDSynonyms),
			CustomerName:   lookupDefault(row, customerNameSynonyms, ""),
			PhoneNumber:    lookupOptional(row, phoneSynonyms),
			Address:        lookupDefault(row, addressSynonyms, ""),
			Pincode:        lookupOptional(row, pincodeSynonyms),
			Lat:            lookupFloat(row, latSynonyms),
			Lng:            lookupFloat(row, lngSynonyms),
			POSAmount:      lookupAmount(row, posSynonyms),
			OverdueAmount:  lookupAmount(row, overdueSynonyms),
			Collection:     lookupAmount(row, collectionSynonyms),
			TossAmount:     lookupAmount(row, tossSynonyms),
			EMIAmount:      lookupAmount(row, emiSynonyms),
			Interest:       lookupAmount(row, interestSynonyms),
			DPD:            lookupInt(row, dpdSynonyms),
			BKT:            lookupOptional(row, bktSynonyms),
			ProductType:    lookupDefault(row, productSynonyms, ""),
			SubProductName: lookupOptional(row, subProductSynonyms),
			BankName:       lookupDefault(row, bankSynonyms, ""),
			NPAStatus:      lookupOptional(row, npaSynonyms),
			Priority:       lookupDefault(row, prioritySynonyms, ""),
			Performance:    lookupOptional(row, perfSynonyms),
			EmpID:          lookupOptional(row, empIDSynonyms),
		}
		drafts = append(drafts, draft)
	}

	return drafts, skipped
}

// DistinctEmpIDs collects the distinct non-blank employee identifiers across
// drafts, preserving first-seen order.
func DistinctEmpIDs(drafts []domain.CaseDraft) []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range drafts {
		if d.EmpID == nil {
			continue
		}
		id := strings.TrimSpace(*d.EmpID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func trimKeys(raw Row) Row {
	row := make(Row, len(raw))
	for key, value := range raw {
		row[strings.TrimSpace(key)] = value
	}
	return row
}

// lookup returns the first non-blank value among the synonym columns.
func lookup(row Row, synonyms []string) (string, bool) {
	for _, key := range synonyms {
		if value, ok := row[key]; ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

func lookupDefault(row Row, synonyms []string, def string) string {
	if value, ok := lookup(row, synonyms); ok {
		return value
	}
	return def
}

func lookupOptional(row Row, synonyms []string) *string {
	if value, ok := lookup(row, synonyms); ok {
		return &value
	}
	return nil
}

// lookupAmount parses a monetary column permissively: absent or non-numeric
// values fall back to 0, never an error.
func lookupAmount(row Row, synonyms []string) float64 {
	value, ok := lookup(row, synonyms)
	if !ok {
		return 0
	}
	parsed, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0
	}
	return parsed
}

func lookupInt(row Row, synonyms []string) int {
	value, ok := lookup(row, synonyms)
	if !ok {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		// sheets often format integer columns as floats
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return parsed
}

func lookupFloat(row Row, synonyms []string) *float64 {
	value, ok := lookup(row, synonyms)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
