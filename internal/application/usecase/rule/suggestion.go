package rule

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// minSuggestionMerchantLength is the shortest normalized merchant name a
// suggestion will be generated for; shorter names are too generic to turn
// into a standing rule.
const minSuggestionMerchantLength = 3

// SuggestionUseCase generates, dismisses, and accepts rule suggestions
// produced when a user corrects a transaction's category.
type SuggestionUseCase struct {
	ruleRepo adapter.RuleRepository
}

// NewSuggestionUseCase creates a new SuggestionUseCase instance.
func NewSuggestionUseCase(ruleRepo adapter.RuleRepository) *SuggestionUseCase {
	return &SuggestionUseCase{ruleRepo: ruleRepo}
}

// Generate runs the suggestion algorithm for one correction: a transaction
// whose merchantNormalized is merchant was just corrected to categoryID.
// It returns nil when no suggestion should be offered.
func (uc *SuggestionUseCase) Generate(ctx context.Context, ownerID, merchant string, categoryID uuid.UUID) (*entity.RuleSuggestion, error) {
	if len(merchant) < minSuggestionMerchantLength {
		return nil, nil
	}

	exists, err := uc.ruleRepo.ExistsMerchantMatch(ctx, ownerID, merchant)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	dismissed, err := uc.ruleRepo.FindDismissedSuggestion(ctx, ownerID, merchant, categoryID)
	if err != nil {
		return nil, err
	}
	if dismissed != nil {
		return nil, nil
	}

	return &entity.RuleSuggestion{
		ID:       uuid.NewString(),
		Message:  "Always categorize " + merchant + " this way?",
		Name:     "Auto-suggested: " + merchant,
		Priority: entity.DefaultSuggestionRulePriority,
		Conditions: entity.RuleConditions{
			MerchantContains: merchant,
		},
		Action: entity.RuleAction{
			CategoryID: categoryID,
		},
	}, nil
}

// Dismiss records that the (ownerID, merchant, categoryID) suggestion
// should not be offered again.
func (uc *SuggestionUseCase) Dismiss(ctx context.Context, ownerID, merchant string, categoryID uuid.UUID) error {
	d := entity.NewDismissedSuggestion(ownerID, merchant, categoryID)
	return uc.ruleRepo.CreateDismissedSuggestion(ctx, d)
}

// Accept creates a Rule from an embedded suggestion template, sourced as
// entity.RuleSourceSuggestion.
func (uc *SuggestionUseCase) Accept(ctx context.Context, ownerID string, suggestion entity.RuleSuggestion) (*entity.Rule, error) {
	r := entity.NewRule(ownerID, suggestion.Name, suggestion.Priority, suggestion.Conditions, suggestion.Action, entity.RuleSourceSuggestion)
	if err := uc.ruleRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
