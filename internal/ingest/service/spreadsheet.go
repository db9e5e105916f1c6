package service

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/C-P-WAZARIYO/Field-Pro/internal/ingest/domain"
	"github.com/xuri/excelize/v2"
)

// ParseSpreadsheet reads an uploaded workbook or CSV into header-keyed rows.
// Excel files use the first sheet only. Returns ErrEmptyFile when the sheet
// carries a header but no data rows.
func ParseSpreadsheet(r io.Reader, filename string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(r)
	default:
		return parseWorkbook(r)
	}
}

func parseWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.ErrMalformedFile
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrMalformedFile
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, domain.ErrMalformedFile
	}
	return recordsToRows(records)
}

func parseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, domain.ErrMalformedFile
	}
	return recordsToRows(records)
}

func recordsToRows(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyFile
	}

	header := records[0]
	data := records[1:]
	if len(data) == 0 {
		return nil, domain.ErrEmptyFile
	}

	rows := make([]Row, 0, len(data))
	for _, record := range data {
		row := make(Row, len(header))
		for col, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if col < len(record) {
				row[name] = record[col]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
