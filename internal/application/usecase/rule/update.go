package rule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// UpdateInput is the input for updating a Rule's editable fields.
type UpdateInput struct {
	OwnerID    string
	ID         uuid.UUID
	Name       string
	Enabled    bool
	Priority   int
	Conditions entity.RuleConditions
	Action     entity.RuleAction
}

// UpdateUseCase handles rule updates.
type UpdateUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewUpdateUseCase creates a new UpdateUseCase instance.
func NewUpdateUseCase(ruleRepo adapter.RuleRepository) *UpdateUseCase {
	return &UpdateUseCase{ruleRepo: ruleRepo}
}

// Execute re-validates the edited conditions and persists the change.
func (uc *UpdateUseCase) Execute(ctx context.Context, input UpdateInput) (*entity.Rule, error) {
	if err := validateConditions(input.Conditions); err != nil {
		return nil, err
	}

	r, err := uc.ruleRepo.FindByID(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	r.Name = input.Name
	r.Enabled = input.Enabled
	r.Priority = entity.ClampPriority(input.Priority)
	r.Conditions = input.Conditions
	r.Action = input.Action
	r.UpdatedAt = time.Now().UTC()

	if err := uc.ruleRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
