package rule

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// ReorderUseCase assigns descending priorities to an ordered list of an
// owner's rule ids in one batch write, used by drag-to-reorder in the
// rule list UI.
type ReorderUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewReorderUseCase creates a new ReorderUseCase instance.
func NewReorderUseCase(ruleRepo adapter.RuleRepository) *ReorderUseCase {
	return &ReorderUseCase{ruleRepo: ruleRepo}
}

// Execute assigns priority 1000 to the first id in ruleIDs, 999 to the
// second, and so on; ids not present in ruleIDs are left untouched. It
// does not validate that ruleIDs covers every rule the owner holds.
func (uc *ReorderUseCase) Execute(ctx context.Context, ownerID string, ruleIDs []uuid.UUID) ([]*entity.Rule, error) {
	updates := make(map[uuid.UUID]int, len(ruleIDs))
	priority := entity.MaxRulePriority
	for _, id := range ruleIDs {
		updates[id] = entity.ClampPriority(priority)
		priority--
	}

	if err := uc.ruleRepo.UpdatePriorities(ctx, ownerID, updates); err != nil {
		return nil, err
	}
	return uc.ruleRepo.ListByOwner(ctx, ownerID)
}
