package aggregator

import (
	"context"
	"sort"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// AccountBreakdownUseCase computes per-account expense totals for one
// month, backing GET /api/v1/analytics/accounts. It shares Compute's
// transaction fetch but reduces on AccountID instead of CategoryID, kept
// as a separate pass so MonthlyOverview's output stays untouched.
type AccountBreakdownUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
}

// NewAccountBreakdownUseCase creates a new AccountBreakdownUseCase instance.
func NewAccountBreakdownUseCase(transactionRepo adapter.TransactionRepository, accountRepo adapter.AccountRepository) *AccountBreakdownUseCase {
	return &AccountBreakdownUseCase{transactionRepo: transactionRepo, accountRepo: accountRepo}
}

// Execute returns one AccountBreakdown per account with at least one
// expense transaction in month, sorted by account id for determinism.
func (uc *AccountBreakdownUseCase) Execute(ctx context.Context, ownerID, month string) ([]AccountBreakdown, error) {
	start, end, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.MonthTransactions(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	accountByID := make(map[string]*entity.Account, len(accounts))
	for _, a := range accounts {
		accountByID[a.ID.String()] = a
	}

	type accumulator struct {
		amountCents int64
		count       int
	}
	totals := make(map[string]*accumulator)
	var totalExpenses int64

	for _, tx := range transactions {
		if tx.IsSplitParent || tx.Amount >= 0 {
			continue
		}
		totalExpenses += tx.Amount

		key := tx.AccountID.String()
		acc, ok := totals[key]
		if !ok {
			acc = &accumulator{}
			totals[key] = acc
		}
		acc.amountCents += tx.Amount
		acc.count++
	}

	breakdown := make([]AccountBreakdown, 0, len(totals))
	for key, acc := range totals {
		item := AccountBreakdown{
			AccountID:        key,
			AmountCents:      acc.amountCents,
			Percentage:       percentOf(acc.amountCents, totalExpenses),
			TransactionCount: acc.count,
		}
		if a, ok := accountByID[key]; ok {
			item.AccountName = a.Name
		}
		breakdown = append(breakdown, item)
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].AccountID < breakdown[j].AccountID
	})

	return breakdown, nil
}
