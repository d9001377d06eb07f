package aggregator

import (
	"context"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
)

// SpendingTrendUseCase composes the current and previous month's
// MonthlyOverview into a single comparison.
type SpendingTrendUseCase struct {
	overview *MonthlyOverviewUseCase
}

// NewSpendingTrendUseCase creates a new SpendingTrendUseCase instance.
func NewSpendingTrendUseCase(transactionRepo adapter.TransactionRepository, categoryRepo adapter.CategoryRepository) *SpendingTrendUseCase {
	return &SpendingTrendUseCase{overview: NewMonthlyOverviewUseCase(transactionRepo, categoryRepo)}
}

// Execute returns the SpendingTrend for month against the month before it.
// IncomeChangePercent and ExpensesChangePercent are nil whenever the
// previous month's corresponding total is zero, since a percent change
// against a zero base is undefined rather than infinite or zero.
func (uc *SpendingTrendUseCase) Execute(ctx context.Context, ownerID, month string) (*SpendingTrend, error) {
	previousMonth, err := PreviousMonth(month)
	if err != nil {
		return nil, err
	}

	current, err := uc.overview.Execute(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}
	previous, err := uc.overview.Execute(ctx, ownerID, previousMonth)
	if err != nil {
		return nil, err
	}

	return &SpendingTrend{
		Current:               *current,
		Previous:              *previous,
		IncomeChangePercent:   changePercent(current.TotalIncomeCents, previous.TotalIncomeCents),
		ExpensesChangePercent: changePercent(current.TotalExpensesCents, previous.TotalExpensesCents),
	}, nil
}

// changePercent computes (current-previous)/|previous|*100, or nil when
// previous is zero.
func changePercent(current, previous int64) *float64 {
	if previous == 0 {
		return nil
	}
	delta := current - previous
	pct := percentOf(delta, previous)
	if delta < 0 {
		pct = -pct
	}
	return &pct
}
