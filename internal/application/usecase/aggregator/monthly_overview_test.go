package aggregator

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

func fixtureTransactions(categoryID uuid.UUID) []*entity.Transaction {
	day := func(d int) time.Time { return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC) }
	return []*entity.Transaction{
		{ID: uuid.New(), PostedAt: day(1), Amount: 250000, Description: "Paycheck", MerchantNormalized: "EMPLOYER INC"},
		{ID: uuid.New(), PostedAt: day(3), Amount: -4599, Description: "Groceries", MerchantNormalized: "WHOLE FOODS", CategoryID: &categoryID},
		{ID: uuid.New(), PostedAt: day(3), Amount: -1200, Description: "Coffee", MerchantNormalized: "BLUE BOTTLE"},
		{ID: uuid.New(), PostedAt: day(15), Amount: -8000, Description: "Groceries", MerchantNormalized: "WHOLE FOODS", CategoryID: &categoryID, ManualOverride: true},
		{ID: uuid.New(), PostedAt: day(20), Amount: -30000, Description: "Rent", IsSplitParent: true},
	}
}

func TestCompute_Deterministic(t *testing.T) {
	categoryID := uuid.New()
	categories := map[uuid.UUID]*entity.Category{
		categoryID: {ID: categoryID, Name: "Groceries", Color: "#00FF00", Icon: "cart"},
	}
	start, end, err := ParseMonth("2026-03")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}

	first := Compute("2026-03", start, end, fixtureTransactions(categoryID), categories)
	second := Compute("2026-03", start, end, fixtureTransactions(categoryID), categories)

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if string(firstJSON) != string(secondJSON) {
		t.Fatalf("expected byte-equal output across runs, got:\n%s\nvs\n%s", firstJSON, secondJSON)
	}
}

func TestCompute_Totals(t *testing.T) {
	categoryID := uuid.New()
	categories := map[uuid.UUID]*entity.Category{
		categoryID: {ID: categoryID, Name: "Groceries", Color: "#00FF00", Icon: "cart"},
	}
	start, end, err := ParseMonth("2026-03")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}

	overview := Compute("2026-03", start, end, fixtureTransactions(categoryID), categories)

	if overview.TotalIncomeCents != 250000 {
		t.Errorf("expected income 250000, got %d", overview.TotalIncomeCents)
	}
	if overview.TotalExpensesCents != -13799 {
		t.Errorf("expected expenses -13799, got %d", overview.TotalExpensesCents)
	}
	if overview.CategorizedCount != 2 {
		t.Errorf("expected 2 categorized, got %d", overview.CategorizedCount)
	}
	if overview.UncategorizedCount != 2 {
		t.Errorf("expected 2 uncategorized, got %d", overview.UncategorizedCount)
	}
	if overview.ManualOverrideCount != 1 {
		t.Errorf("expected 1 manual override, got %d", overview.ManualOverrideCount)
	}
	if len(overview.DailySeries) != 31 {
		t.Errorf("expected 31 zero-filled days for March, got %d", len(overview.DailySeries))
	}
	if len(overview.Categories) != 2 {
		t.Errorf("expected 2 category buckets (groceries + uncategorized), got %d", len(overview.Categories))
	}
}

func TestCompute_SplitParentExcludedFromTotals(t *testing.T) {
	categoryID := uuid.New()
	categories := map[uuid.UUID]*entity.Category{}
	start, end, err := ParseMonth("2026-03")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}

	overview := Compute("2026-03", start, end, fixtureTransactions(categoryID), categories)

	for _, day := range overview.DailySeries {
		if day.Date == "2026-03-20" && day.Count != 0 {
			t.Errorf("expected split parent day to contribute zero rows, got count %d", day.Count)
		}
	}
}

func TestParseMonth_RejectsEmptyAndMalformed(t *testing.T) {
	if _, _, err := ParseMonth(""); err == nil {
		t.Error("expected error for empty month")
	}
	if _, _, err := ParseMonth("2026-13"); err == nil {
		t.Error("expected error for out-of-range month")
	}
	if _, _, err := ParseMonth("March 2026"); err == nil {
		t.Error("expected error for non-ISO month format")
	}
}

func TestPreviousMonth_CrossesYearBoundary(t *testing.T) {
	prev, err := PreviousMonth("2026-01")
	if err != nil {
		t.Fatalf("PreviousMonth: %v", err)
	}
	if prev != "2025-12" {
		t.Errorf("expected 2025-12, got %s", prev)
	}
}
