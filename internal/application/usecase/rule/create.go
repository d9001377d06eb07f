package rule

import (
	"context"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
)

// CreateInput is the input for creating a Rule.
type CreateInput struct {
	OwnerID    string
	Name       string
	Priority   int
	Conditions entity.RuleConditions
	Action     entity.RuleAction
}

// CreateUseCase handles rule creation, enforcing the owner rule cap and
// condition/pattern validation.
type CreateUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewCreateUseCase creates a new CreateUseCase instance.
func NewCreateUseCase(ruleRepo adapter.RuleRepository) *CreateUseCase {
	return &CreateUseCase{ruleRepo: ruleRepo}
}

// Execute validates input and persists a new enabled Rule sourced from the
// user, returning domainerror.ErrRuleCapExceeded once the owner holds
// entity.MaxRulesPerOwner rules.
func (uc *CreateUseCase) Execute(ctx context.Context, input CreateInput) (*entity.Rule, error) {
	if err := validateConditions(input.Conditions); err != nil {
		return nil, err
	}

	count, err := uc.ruleRepo.CountByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if count >= entity.MaxRulesPerOwner {
		return nil, domainerror.NewRuleError(domainerror.KindValidation, domainerror.ErrCodeRuleCapExceeded, "owner has reached the 100 rule cap", domainerror.ErrRuleCapExceeded)
	}

	priority := input.Priority
	if priority == 0 {
		priority = entity.DefaultUserRulePriority
	}

	r := entity.NewRule(input.OwnerID, input.Name, priority, input.Conditions, input.Action, entity.RuleSourceUser)
	if err := uc.ruleRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
