package rule

import (
	"context"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// ListUseCase lists an owner's rules, enabled and disabled, in priority order.
type ListUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewListUseCase creates a new ListUseCase instance.
func NewListUseCase(ruleRepo adapter.RuleRepository) *ListUseCase {
	return &ListUseCase{ruleRepo: ruleRepo}
}

// Execute returns every rule owned by ownerID, sorted priority descending
// then id ascending.
func (uc *ListUseCase) Execute(ctx context.Context, ownerID string) ([]*entity.Rule, error) {
	return uc.ruleRepo.ListByOwner(ctx, ownerID)
}
