package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"spendwise/models"
)

// statementRow is one parsed line of a CSV bank statement.
// Expected columns: date, amount, category, type, description.
type statementRow struct {
	Date        time.Time
	Amount      float64
	Category    models.Category
	Type        models.TransactionType
	Description string
}

// parseRow validates a single CSV record. Dates accept YYYY-MM-DD or RFC3339.
func parseRow(rec []string) (statementRow, error) {
	if len(rec) < 5 {
		return statementRow{}, fmt.Errorf("expected 5 columns, got %d", len(rec))
	}
	var row statementRow
	dateStr := strings.TrimSpace(rec[0])
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return statementRow{}, fmt.Errorf("bad date %q", dateStr)
		}
	}
	row.Date = t

	amt, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil || amt < 0 {
		return statementRow{}, fmt.Errorf("bad amount %q", rec[1])
	}
	row.Amount = amt

	row.Category = models.Category(strings.ToUpper(strings.TrimSpace(rec[2])))
	if !row.Category.Valid() {
		return statementRow{}, fmt.Errorf("unknown category %q", rec[2])
	}

	row.Type = models.TransactionType(strings.ToUpper(strings.TrimSpace(rec[3])))
	if strings.TrimSpace(rec[3]) == "" {
		row.Type = models.TransactionOffline
	}
	if !row.Type.Valid() {
		return statementRow{}, fmt.Errorf("unknown transaction type %q", rec[3])
	}

	row.Description = strings.TrimSpace(rec[4])
	if row.Description == "" {
		return statementRow{}, fmt.Errorf("empty description")
	}
	return row, nil
}

// parseStatement reads a whole statement, skipping a header line when the
// first record does not parse as data. Returns the good rows plus one error
// per rejected line.
func parseStatement(r io.Reader) ([]statementRow, []error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	var rows []statementRow
	var errs []error
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %v", line, err))
			continue
		}
		row, perr := parseRow(rec)
		if perr != nil {
			if line == 1 {
				// tolerate a header row
				continue
			}
			errs = append(errs, fmt.Errorf("line %d: %v", line, perr))
			continue
		}
		rows = append(rows, row)
	}
	return rows, errs
}
