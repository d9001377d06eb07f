package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/rule"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
)

const (
	maxNotesLength = 500
	maxTagCount    = 10
	maxTagLength   = 50
)

// PatchInput carries the fields a caller may correct on a transaction.
// A nil pointer leaves the field untouched.
type PatchInput struct {
	CategoryID *uuid.UUID
	Notes      *string
	Tags       []string
}

// PatchResult is the updated transaction plus an optional rule suggestion
// offered because the correction looks like a standing pattern.
type PatchResult struct {
	Transaction *entity.Transaction
	Suggestion  *entity.RuleSuggestion
}

// PatchUseCase applies a manual correction to a transaction.
type PatchUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	suggestionUC    *rule.SuggestionUseCase
}

// NewPatchUseCase creates a new PatchUseCase instance.
func NewPatchUseCase(transactionRepo adapter.TransactionRepository, categoryRepo adapter.CategoryRepository, suggestionUC *rule.SuggestionUseCase) *PatchUseCase {
	return &PatchUseCase{transactionRepo: transactionRepo, categoryRepo: categoryRepo, suggestionUC: suggestionUC}
}

// Execute applies in.CategoryID/Notes/Tags to the owner's transaction id.
// A category change sets ManualOverride and CorrectedAt, preserves the
// prior auto-assignment in AutoCategory (spec §4.E), and may return a
// rule suggestion generated from the correction.
func (uc *PatchUseCase) Execute(ctx context.Context, ownerID string, id uuid.UUID, in PatchInput) (*PatchResult, error) {
	if in.Notes != nil && len(*in.Notes) > maxNotesLength {
		return nil, domainerror.NewTransactionError(domainerror.KindValidation, domainerror.ErrCodeNotesTooLong, "notes exceed 500 characters", domainerror.ErrNotesTooLong)
	}
	if len(in.Tags) > maxTagCount {
		return nil, domainerror.NewTransactionError(domainerror.KindValidation, domainerror.ErrCodeTooManyTags, "more than 10 tags supplied", domainerror.ErrTooManyTags)
	}
	for _, tag := range in.Tags {
		if len(tag) > maxTagLength {
			return nil, domainerror.NewTransactionError(domainerror.KindValidation, domainerror.ErrCodeTagTooLong, "tag exceeds 50 characters", domainerror.ErrTagTooLong)
		}
	}

	tx, err := uc.transactionRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	var suggestion *entity.RuleSuggestion
	categoryChanged := in.CategoryID != nil && (tx.CategoryID == nil || *tx.CategoryID != *in.CategoryID)

	if in.CategoryID != nil {
		if _, err := uc.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		if categoryChanged {
			if tx.AutoCategory == nil || !tx.ManualOverride {
				tx.AutoCategory = &entity.AutoCategorization{
					CategoryID:     tx.CategoryID,
					Explainability: tx.Explainability,
				}
			}
			tx.CategoryID = in.CategoryID
			tx.ManualOverride = true
			now := time.Now().UTC()
			tx.CorrectedAt = &now
			tx.Explainability = entity.Explainability{
				Reason:     entity.ReasonManual,
				Confidence: 1.0,
				Timestamp:  now,
			}
		}
	}
	if in.Notes != nil {
		tx.Notes = *in.Notes
	}
	if in.Tags != nil {
		tx.Tags = in.Tags
	}
	tx.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	if categoryChanged && tx.MerchantNormalized != "" {
		suggestion, err = uc.suggestionUC.Generate(ctx, ownerID, tx.MerchantNormalized, *in.CategoryID)
		if err != nil {
			return nil, err
		}
	}

	return &PatchResult{Transaction: tx, Suggestion: suggestion}, nil
}
