package aggregator

import (
	"context"
	"math/big"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
)

// MonthlyOverviewUseCase computes a MonthlyOverview for one owner and month.
type MonthlyOverviewUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewMonthlyOverviewUseCase creates a new MonthlyOverviewUseCase instance.
func NewMonthlyOverviewUseCase(transactionRepo adapter.TransactionRepository, categoryRepo adapter.CategoryRepository) *MonthlyOverviewUseCase {
	return &MonthlyOverviewUseCase{transactionRepo: transactionRepo, categoryRepo: categoryRepo}
}

// Execute runs the single-pass reduction described in spec.md §4.G for month
// (format "YYYY-MM") scoped to ownerID.
func (uc *MonthlyOverviewUseCase) Execute(ctx context.Context, ownerID, month string) (*MonthlyOverview, error) {
	start, end, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.MonthTransactions(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}

	categories, err := uc.categoryRepo.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	categoryByID := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	overview := Compute(month, start, end, transactions, categoryByID)
	return &overview, nil
}

// ParseMonth validates and decodes a "YYYY-MM" month string into its
// inclusive [start, end] instant bounds.
func ParseMonth(month string) (start, end time.Time, err error) {
	if month == "" {
		return time.Time{}, time.Time{}, domainerror.NewAggregatorError(domainerror.KindValidation, domainerror.ErrCodeMissingMonth, "month is required", domainerror.ErrMissingMonth)
	}
	parsed, parseErr := time.Parse("2006-01", month)
	if parseErr != nil {
		return time.Time{}, time.Time{}, domainerror.NewAggregatorError(domainerror.KindValidation, domainerror.ErrCodeInvalidMonthFormat, "invalid month format, expected YYYY-MM", domainerror.ErrInvalidMonthFormat)
	}
	start = time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}

// PreviousMonth returns the "YYYY-MM" string for the month before month.
func PreviousMonth(month string) (string, error) {
	start, _, err := ParseMonth(month)
	if err != nil {
		return "", err
	}
	prev := start.AddDate(0, -1, 0)
	return prev.Format("2006-01"), nil
}

// Compute runs the deterministic single-pass reduction over transactions
// (already scoped to [start, end] and non-split-parent) and produces a
// MonthlyOverview. Every breakdown slice is sorted by a stable secondary
// key before return, so repeated calls against the same input are
// byte-equal once serialized.
func Compute(month string, start, end time.Time, transactions []*entity.Transaction, categoryByID map[uuid.UUID]*entity.Category) MonthlyOverview {
	overview := MonthlyOverview{Month: month}

	type categoryAccumulator struct {
		amountCents int64
		count       int
	}
	categoryTotals := make(map[string]*categoryAccumulator)

	type merchantAccumulator struct {
		amountCents int64
		count       int
	}
	merchantTotals := make(map[string]*merchantAccumulator)

	dayTotals := make(map[string]*DaySummary)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		dayTotals[key] = &DaySummary{Date: key}
	}

	for _, tx := range transactions {
		if tx.IsSplitParent {
			continue
		}

		dayKey := tx.PostedAt.Format("2006-01-02")
		day, ok := dayTotals[dayKey]
		if !ok {
			day = &DaySummary{Date: dayKey}
			dayTotals[dayKey] = day
		}
		day.Count++

		if tx.Amount > 0 {
			overview.TotalIncomeCents += tx.Amount
			day.IncomeCents += tx.Amount
		} else {
			overview.TotalExpensesCents += tx.Amount
			day.ExpensesCents += tx.Amount
		}
		day.NetCents += tx.Amount

		if tx.CategoryID != nil {
			overview.CategorizedCount++
		} else {
			overview.UncategorizedCount++
		}
		if tx.ManualOverride {
			overview.ManualOverrideCount++
		}

		if tx.Amount >= 0 {
			continue
		}

		key := UncategorizedID
		if tx.CategoryID != nil {
			key = tx.CategoryID.String()
		}
		acc, ok := categoryTotals[key]
		if !ok {
			acc = &categoryAccumulator{}
			categoryTotals[key] = acc
		}
		acc.amountCents += tx.Amount
		acc.count++

		merchant := tx.MerchantNormalized
		if merchant == "" {
			merchant = tx.Description
		}
		mAcc, ok := merchantTotals[merchant]
		if !ok {
			mAcc = &merchantAccumulator{}
			merchantTotals[merchant] = mAcc
		}
		mAcc.amountCents += tx.Amount
		mAcc.count++
	}

	overview.Categories = make([]CategoryBreakdown, 0, len(categoryTotals))
	for key, acc := range categoryTotals {
		item := CategoryBreakdown{
			CategoryID:       key,
			AmountCents:      acc.amountCents,
			Percentage:       percentOf(acc.amountCents, overview.TotalExpensesCents),
			TransactionCount: acc.count,
		}
		if key == UncategorizedID {
			item.CategoryName = UncategorizedName
			item.CategoryColor = UncategorizedColor
			item.CategoryIcon = UncategorizedIcon
		} else if id, err := uuid.Parse(key); err == nil {
			if cat, ok := categoryByID[id]; ok {
				item.CategoryName = cat.Name
				item.CategoryColor = cat.Color
				item.CategoryIcon = cat.Icon
			}
		}
		overview.Categories = append(overview.Categories, item)
	}
	sort.SliceStable(overview.Categories, func(i, j int) bool {
		return overview.Categories[i].CategoryID < overview.Categories[j].CategoryID
	})

	overview.TopMerchants = make([]MerchantBreakdown, 0, len(merchantTotals))
	for merchant, acc := range merchantTotals {
		overview.TopMerchants = append(overview.TopMerchants, MerchantBreakdown{
			Merchant:         merchant,
			AmountCents:      acc.amountCents,
			TransactionCount: acc.count,
		})
	}
	sort.SliceStable(overview.TopMerchants, func(i, j int) bool {
		if overview.TopMerchants[i].AmountCents != overview.TopMerchants[j].AmountCents {
			return overview.TopMerchants[i].AmountCents < overview.TopMerchants[j].AmountCents
		}
		return overview.TopMerchants[i].Merchant < overview.TopMerchants[j].Merchant
	})
	if len(overview.TopMerchants) > 10 {
		overview.TopMerchants = overview.TopMerchants[:10]
	}

	overview.DailySeries = make([]DaySummary, 0, len(dayTotals))
	for _, day := range dayTotals {
		overview.DailySeries = append(overview.DailySeries, *day)
	}
	sort.SliceStable(overview.DailySeries, func(i, j int) bool {
		return overview.DailySeries[i].Date < overview.DailySeries[j].Date
	})

	return overview
}

// percentOf computes |part|/|total|*100 via an exact big.Rat intermediate,
// rounded to two decimal places, to avoid float64 accumulation drift
// across repeated calls against the same input.
func percentOf(partCents, totalCents int64) float64 {
	if totalCents == 0 {
		return 0
	}
	part := new(big.Rat).SetInt64(abs(partCents))
	total := new(big.Rat).SetInt64(abs(totalCents))
	pct := new(big.Rat).Quo(part, total)
	pct.Mul(pct, big.NewRat(100, 1))

	rounded := new(big.Rat).SetFrac(
		roundToHundredths(pct),
		big.NewInt(100),
	)
	f, _ := rounded.Float64()
	return f
}

func roundToHundredths(r *big.Rat) *big.Int {
	scaled := new(big.Rat).Mul(r, big.NewRat(100, 1))
	num := new(big.Int).Set(scaled.Num())
	denom := scaled.Denom()
	quotient, remainder := new(big.Int).QuoRem(num, denom, new(big.Int))
	twiceRem := new(big.Int).Mul(new(big.Int).Abs(remainder), big.NewInt(2))
	if twiceRem.Cmp(denom) >= 0 {
		if num.Sign() >= 0 {
			quotient.Add(quotient, big.NewInt(1))
		} else {
			quotient.Sub(quotient, big.NewInt(1))
		}
	}
	return quotient
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
