// Package categorization implements the Categorization Orchestrator: the
// rule-engine-first, LLM-fallback decision flow shared by ingestion,
// manual recategorization, and the rule-editing endpoints.
package categorization

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	"github.com/finance-tracker/ledgerd/internal/domain/ruleengine"
)

// ConfidenceThreshold is the rule-match confidence gate below which the
// orchestrator falls through to the LLM (spec §4.E, θ = 0.7).
const ConfidenceThreshold = 0.7

// Orchestrator runs the single-tx and batch categorization flows.
type Orchestrator struct {
	ruleRepo        adapter.RuleRepository
	transactionRepo adapter.TransactionRepository
	llm             adapter.LLMProvider
	llmEnabled      bool
}

// NewOrchestrator creates a new Orchestrator instance. llmEnabled mirrors
// the "LLM is disabled by configuration" branch of spec §4.E step 3: when
// false, the rule result is always returned as-is.
func NewOrchestrator(ruleRepo adapter.RuleRepository, transactionRepo adapter.TransactionRepository, llm adapter.LLMProvider, llmEnabled bool) *Orchestrator {
	return &Orchestrator{ruleRepo: ruleRepo, transactionRepo: transactionRepo, llm: llm, llmEnabled: llmEnabled}
}

// Decision is the outcome of categorizing one transaction: the category to
// assign (nil for no match), the explainability to record, and whether a
// rule's match statistics should be advanced out-of-band.
type Decision struct {
	CategoryID     *uuid.UUID
	AddTags        []string
	Explainability entity.Explainability
	MatchedRuleID  *uuid.UUID
}

// Categorize runs the single-tx flow from spec §4.E against a
// pre-fetched, already-sorted rule set — callers load and cache rules
// once per call/batch via LoadRules rather than per transaction.
func (o *Orchestrator) Categorize(ctx context.Context, tx *entity.Transaction, rules []*entity.Rule, categories []adapter.LLMCategory) Decision {
	now := time.Now().UTC()

	result := ruleengine.Categorize(tx, rules)
	if result.Matched && result.Explainability.Confidence >= ConfidenceThreshold {
		return Decision{
			CategoryID:     result.CategoryID,
			AddTags:        result.AddTags,
			Explainability: result.Explainability,
			MatchedRuleID:  ruleIDFromExplainability(result.Explainability),
		}
	}

	if !o.llmEnabled || o.llm == nil {
		if result.Matched {
			return Decision{CategoryID: result.CategoryID, AddTags: result.AddTags, Explainability: result.Explainability}
		}
		return Decision{Explainability: entity.Explainability{Reason: entity.ReasonNoMatch, Confidence: 0, Timestamp: now}}
	}

	classifyResult := o.llm.ClassifyTransaction(ctx, adapter.ClassifyInput{
		TxID:        tx.ID,
		Description: tx.Description,
		MerchantRaw: tx.MerchantRaw,
		Amount:      tx.Amount,
	}, categories)

	if classifyResult.CategoryID != nil {
		return Decision{
			CategoryID: classifyResult.CategoryID,
			Explainability: entity.Explainability{
				Reason:       entity.ReasonLLM,
				Confidence:   classifyResult.Confidence,
				Timestamp:    now,
				LLMReasoning: classifyResult.Reasoning,
			},
		}
	}

	return Decision{
		Explainability: entity.Explainability{
			Reason:       entity.ReasonNoMatch,
			Confidence:   0,
			Timestamp:    now,
			LLMReasoning: classifyResult.Reasoning,
		},
	}
}

// CategorizeBatch runs the batch flow: a rule pass over every transaction,
// then a single bounded-concurrency LLM call for those that failed the
// confidence gate, merged back by transaction id.
func (o *Orchestrator) CategorizeBatch(ctx context.Context, txs []*entity.Transaction, rules []*entity.Rule, categories []adapter.LLMCategory) map[uuid.UUID]Decision {
	now := time.Now().UTC()
	decisions := make(map[uuid.UUID]Decision, len(txs))

	var needsLLM []*entity.Transaction
	for _, tx := range txs {
		result := ruleengine.Categorize(tx, rules)
		if result.Matched && result.Explainability.Confidence >= ConfidenceThreshold {
			decisions[tx.ID] = Decision{
				CategoryID:     result.CategoryID,
				AddTags:        result.AddTags,
				Explainability: result.Explainability,
				MatchedRuleID:  ruleIDFromExplainability(result.Explainability),
			}
			continue
		}
		if !o.llmEnabled || o.llm == nil {
			if result.Matched {
				decisions[tx.ID] = Decision{CategoryID: result.CategoryID, AddTags: result.AddTags, Explainability: result.Explainability}
			} else {
				decisions[tx.ID] = Decision{Explainability: entity.Explainability{Reason: entity.ReasonNoMatch, Confidence: 0, Timestamp: now}}
			}
			continue
		}
		needsLLM = append(needsLLM, tx)
	}

	if len(needsLLM) == 0 {
		return decisions
	}

	inputs := make([]adapter.ClassifyInput, len(needsLLM))
	for i, tx := range needsLLM {
		inputs[i] = adapter.ClassifyInput{TxID: tx.ID, Description: tx.Description, MerchantRaw: tx.MerchantRaw, Amount: tx.Amount}
	}

	llmResults := o.llm.ClassifyBatch(ctx, inputs, categories)
	for _, tx := range needsLLM {
		classifyResult, ok := llmResults[tx.ID]
		if !ok {
			decisions[tx.ID] = Decision{Explainability: entity.Explainability{Reason: entity.ReasonNoMatch, Confidence: 0, Timestamp: now}}
			continue
		}
		if classifyResult.CategoryID != nil {
			decisions[tx.ID] = Decision{
				CategoryID: classifyResult.CategoryID,
				Explainability: entity.Explainability{
					Reason:       entity.ReasonLLM,
					Confidence:   classifyResult.Confidence,
					Timestamp:    now,
					LLMReasoning: classifyResult.Reasoning,
				},
			}
			continue
		}
		decisions[tx.ID] = Decision{
			Explainability: entity.Explainability{
				Reason:       entity.ReasonNoMatch,
				Confidence:   0,
				Timestamp:    now,
				LLMReasoning: classifyResult.Reasoning,
			},
		}
	}

	return decisions
}

// LoadRules fetches and returns the owner's enabled rules once, for
// callers to reuse across every transaction in a single-tx or batch call
// (spec §4.E: "cached per call").
func (o *Orchestrator) LoadRules(ctx context.Context, ownerID string) ([]*entity.Rule, error) {
	return o.ruleRepo.ListEnabledByOwner(ctx, ownerID)
}

// RecordRuleMatch advances a winning rule's match statistics out-of-band.
// Failures are logged, never returned: rule stats are best-effort and
// must never block the response that depends on the categorization
// decision itself.
func (o *Orchestrator) RecordRuleMatch(ctx context.Context, ruleID uuid.UUID) {
	if err := o.transactionRepo.IncrementRuleMatch(ctx, ruleID, time.Now().UTC()); err != nil {
		slog.Warn("failed to record rule match", "ruleId", ruleID, "error", err)
	}
}

// RecategorizeResult accumulates the outcome of a recategorization scan.
// Per-transaction errors never fail the whole scan (spec §4.E).
type RecategorizeResult struct {
	Updated int
	Skipped int
	Errors  int
}

// Recategorize reruns the single-tx flow against a set of already-existing
// transactions. A transaction with manualOverride=true is skipped unless
// includeManualOverrides is set; a candidate whose resulting categoryId
// does not change from its current one is left untouched and counted as
// skipped. Persistence failures for one candidate are logged and counted
// in Errors rather than aborting the scan.
func (o *Orchestrator) Recategorize(ctx context.Context, ownerID string, txIDs []uuid.UUID, includeManualOverrides bool, categories []adapter.LLMCategory) RecategorizeResult {
	var result RecategorizeResult

	rules, err := o.LoadRules(ctx, ownerID)
	if err != nil {
		slog.Warn("recategorize: failed to load rules", "ownerId", ownerID, "error", err)
		return RecategorizeResult{Errors: len(txIDs)}
	}

	for _, id := range txIDs {
		tx, err := o.transactionRepo.FindByID(ctx, ownerID, id)
		if err != nil {
			slog.Warn("recategorize: failed to load transaction", "txId", id, "error", err)
			result.Errors++
			continue
		}
		if tx.ManualOverride && !includeManualOverrides {
			result.Skipped++
			continue
		}

		decision := o.Categorize(ctx, tx, rules, categories)

		if categoryIDsEqual(tx.CategoryID, decision.CategoryID) {
			result.Skipped++
			continue
		}

		tx.AutoCategory = &entity.AutoCategorization{CategoryID: tx.CategoryID, Explainability: tx.Explainability}
		tx.CategoryID = decision.CategoryID
		tx.Explainability = decision.Explainability
		tx.UpdatedAt = time.Now().UTC()

		if err := o.transactionRepo.Update(ctx, tx); err != nil {
			slog.Warn("recategorize: failed to persist transaction", "txId", id, "error", err)
			result.Errors++
			continue
		}

		if decision.MatchedRuleID != nil {
			o.RecordRuleMatch(ctx, *decision.MatchedRuleID)
		}
		result.Updated++
	}

	return result
}

func categoryIDsEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func ruleIDFromExplainability(e entity.Explainability) *uuid.UUID {
	return e.RuleID
}
