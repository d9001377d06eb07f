package ingestion

import "testing"

func TestParseCSV_SingleAmountColumn(t *testing.T) {
	data := []byte("Date,Description,Amount\n2026-03-01,WHOLE FOODS #123,-45.99\n2026-03-03,PAYCHECK,\"2,500.00\"\n")

	rows := parseCSV(data)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Amount != -4599 {
		t.Errorf("expected -4599 cents, got %d", rows[0].Amount)
	}
	if rows[0].PostedAt != "2026-03-01" {
		t.Errorf("expected 2026-03-01, got %s", rows[0].PostedAt)
	}
	if rows[1].Amount != 250000 {
		t.Errorf("expected 250000 cents from a comma-quoted amount, got %d", rows[1].Amount)
	}
}

func TestParseCSV_DebitCreditPair(t *testing.T) {
	data := []byte("Posting Date,Memo,Debit,Credit\n01/15/2026,Grocery Store,45.99,\n01/16/2026,Refund,,10.00\n")

	rows := parseCSV(data)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Amount != -4599 {
		t.Errorf("expected debit to produce a negative amount, got %d", rows[0].Amount)
	}
	if rows[1].Amount != 1000 {
		t.Errorf("expected credit to produce a positive amount, got %d", rows[1].Amount)
	}
}

func TestParseCSV_RejectsZeroAmountAndUnparsableDate(t *testing.T) {
	data := []byte("Date,Description,Amount\nnot-a-date,Something,5.00\n2026-03-01,Nothing,0.00\n2026-03-02,Valid,12.34\n")

	rows := parseCSV(data)

	if len(rows) != 1 {
		t.Fatalf("expected only the valid row to survive, got %d", len(rows))
	}
	if rows[0].Amount != 1234 {
		t.Errorf("expected 1234 cents, got %d", rows[0].Amount)
	}
}

func TestParseCSV_UnresolvableHeaderYieldsNoRows(t *testing.T) {
	data := []byte("Foo,Bar,Baz\n1,2,3\n")

	rows := parseCSV(data)

	if rows != nil {
		t.Fatalf("expected nil rows when no column aliases resolve, got %v", rows)
	}
}
