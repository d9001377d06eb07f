package rule

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
)

// DeleteUseCase handles rule deletion.
type DeleteUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewDeleteUseCase creates a new DeleteUseCase instance.
func NewDeleteUseCase(ruleRepo adapter.RuleRepository) *DeleteUseCase {
	return &DeleteUseCase{ruleRepo: ruleRepo}
}

// Execute deletes the owner-scoped rule. Deletion never retroactively
// uncategorizes transactions the rule previously matched.
func (uc *DeleteUseCase) Execute(ctx context.Context, ownerID string, id uuid.UUID) error {
	return uc.ruleRepo.Delete(ctx, ownerID, id)
}
