// Package transaction implements the read/update operations over
// individual transactions (spec §6): listing, fetching, and patching a
// category/notes/tags correction.
package transaction

import (
	"context"
	"time"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// ListUseCase lists transactions for an owner under a filter.
type ListUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListUseCase creates a new ListUseCase instance.
func NewListUseCase(transactionRepo adapter.TransactionRepository) *ListUseCase {
	return &ListUseCase{transactionRepo: transactionRepo}
}

// Execute lists transactions matching filter, defaulting to the current
// month when neither StartDate nor EndDate is set, and always excluding
// split parents per spec §6.
func (uc *ListUseCase) Execute(ctx context.Context, filter adapter.TransactionFilter, page adapter.PageParams) (*entity.TransactionPage, error) {
	if filter.StartDate == nil && filter.EndDate == nil {
		now := time.Now().UTC()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		filter.StartDate = &start
		filter.EndDate = &end
	}
	filter.ExcludeSplitParents = true

	return uc.transactionRepo.List(ctx, filter, page.Clamp())
}
