package ingestion

import (
	"encoding/csv"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
)

var dateColumnAliases = map[string]bool{
	"date":             true,
	"posted date":      true,
	"transaction date": true,
	"posting date":     true,
}

var amountColumnAliases = map[string]bool{
	"amount":             true,
	"transaction amount": true,
}

var debitColumnAliases = map[string]bool{"debit": true, "withdrawal": true}
var creditColumnAliases = map[string]bool{"credit": true, "deposit": true}

var descriptionColumnAliases = map[string]bool{
	"description":             true,
	"merchant":                true,
	"name":                    true,
	"transaction description": true,
	"memo":                    true,
}

// dateLayouts are tried in order against the resolved date column; most
// bank CSV exports use one of these.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
}

type csvColumns struct {
	date        int
	amount      int
	debit       int
	credit      int
	description int
}

// parseCSV runs the deterministic column-alias CSV parser (spec §4.D
// step 4). It returns zero rows (never an error) when the header cannot
// be resolved or no data rows parse, so the caller can fall back to
// LLM.parseDocument.
func parseCSV(data []byte) []adapter.ParsedTransaction {
	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil || len(records) < 2 {
		return nil
	}

	cols, ok := resolveColumns(records[0])
	if !ok {
		return nil
	}

	var rows []adapter.ParsedTransaction
	for _, rec := range records[1:] {
		row, ok := parseRow(rec, cols)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func resolveColumns(header []string) (csvColumns, bool) {
	cols := csvColumns{date: -1, amount: -1, debit: -1, credit: -1, description: -1}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		switch {
		case dateColumnAliases[key]:
			cols.date = i
		case amountColumnAliases[key]:
			cols.amount = i
		case debitColumnAliases[key]:
			cols.debit = i
		case creditColumnAliases[key]:
			cols.credit = i
		case descriptionColumnAliases[key]:
			cols.description = i
		}
	}

	hasAmount := cols.amount != -1 || (cols.debit != -1 && cols.credit != -1)
	if cols.date == -1 || !hasAmount || cols.description == -1 {
		return cols, false
	}
	return cols, true
}

func parseRow(rec []string, cols csvColumns) (adapter.ParsedTransaction, bool) {
	if cols.date >= len(rec) || cols.description >= len(rec) {
		return adapter.ParsedTransaction{}, false
	}

	postedAt, ok := parseCSVDate(rec[cols.date])
	if !ok {
		return adapter.ParsedTransaction{}, false
	}

	var amountCents int64
	if cols.amount != -1 {
		if cols.amount >= len(rec) {
			return adapter.ParsedTransaction{}, false
		}
		cents, ok := parseCSVAmount(rec[cols.amount])
		if !ok {
			return adapter.ParsedTransaction{}, false
		}
		amountCents = cents
	} else {
		if cols.debit >= len(rec) || cols.credit >= len(rec) {
			return adapter.ParsedTransaction{}, false
		}
		debit, _ := parseCSVAmount(rec[cols.debit])
		credit, _ := parseCSVAmount(rec[cols.credit])
		amountCents = credit - debit
	}
	if amountCents == 0 {
		return adapter.ParsedTransaction{}, false
	}

	description := strings.TrimSpace(rec[cols.description])

	return adapter.ParsedTransaction{
		PostedAt:    postedAt,
		Amount:      amountCents,
		Description: description,
		MerchantRaw: description,
	}, true
}

func parseCSVDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

func parseCSVAmount(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	negative := false
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		negative = true
		raw = strings.TrimSuffix(strings.TrimPrefix(raw, "("), ")")
	}
	raw = strings.NewReplacer("$", "", ",", "", "\"", "").Replace(raw)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	cents := int64(math.Round(f * 100))
	if negative {
		cents = -cents
	}
	return cents, true
}
