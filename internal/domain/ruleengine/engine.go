// Package ruleengine implements the pure, stateless rule-matching algorithm
// used to auto-categorize a transaction from an owner's enabled rules.
package ruleengine

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// DefaultConfidence holds the fixed confidence assigned per MatchType.
var DefaultConfidence = map[entity.MatchType]float64{
	entity.MatchTypeExact:       1.0,
	entity.MatchTypeContains:    0.8,
	entity.MatchTypeRegex:       0.6,
	entity.MatchTypeDescription: 0.5,
}

// Result is the outcome of running the engine against one transaction.
type Result struct {
	Matched        bool
	CategoryID     *uuid.UUID
	AddTags        []string
	Explainability entity.Explainability
}

// Categorize runs the six-step ordered matcher against rules sorted by
// priority descending (ties broken by rule id, stable across calls), and
// returns the first rule that matches. Disabled rules are ignored. The
// engine never errors: an invalid regex already on file is logged and
// treated as non-matching.
func Categorize(tx *entity.Transaction, rules []*entity.Rule) Result {
	enabled := make([]*entity.Rule, 0, len(rules))
	for _, r := range rules {
		if r.Enabled {
			enabled = append(enabled, r)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		if enabled[i].Priority != enabled[j].Priority {
			return enabled[i].Priority > enabled[j].Priority
		}
		return enabled[i].ID.String() < enabled[j].ID.String()
	})

	for _, r := range enabled {
		matchType, matchedValue, matchedPattern, ok := matchRule(tx, r.Conditions)
		if !ok {
			continue
		}

		confidence := DefaultConfidence[matchType]
		categoryID := r.Action.CategoryID
		ruleID := r.ID
		return Result{
			Matched:    true,
			CategoryID: &categoryID,
			AddTags:    r.Action.AddTags,
			Explainability: entity.Explainability{
				Reason:         entity.ReasonRuleMatch,
				RuleID:         &ruleID,
				RuleName:       r.Name,
				MatchType:      &matchType,
				MatchedValue:   matchedValue,
				MatchedPattern: matchedPattern,
				Confidence:     confidence,
				Timestamp:      time.Now().UTC(),
			},
		}
	}

	return Result{Matched: false}
}

// matchRule applies the six ordered condition checks to one rule. Gates
// (accountId, amountMin/Max) never match alone and reject the whole rule
// on a miss. Each of the four textual conditions that is set is tried in
// fixed order (exact, contains, regex, description); a miss on a set
// condition falls through to the next one rather than rejecting the rule,
// so a rule with several textual conditions matches on the first one that
// is satisfied, not the first one that happens to be set. A rule matches
// only if at least one set textual condition is satisfied.
func matchRule(tx *entity.Transaction, c entity.RuleConditions) (matchType entity.MatchType, matchedValue, matchedPattern string, ok bool) {
	if c.AccountID != nil && *c.AccountID != tx.AccountID {
		return "", "", "", false
	}
	if c.AmountMin != nil && tx.Amount < *c.AmountMin {
		return "", "", "", false
	}
	if c.AmountMax != nil && tx.Amount > *c.AmountMax {
		return "", "", "", false
	}

	merchant := strings.ToUpper(tx.MerchantNormalized)

	if c.MerchantExact != "" && merchant == strings.ToUpper(c.MerchantExact) {
		return entity.MatchTypeExact, tx.MerchantNormalized, c.MerchantExact, true
	}

	if c.MerchantContains != "" && strings.Contains(merchant, strings.ToUpper(c.MerchantContains)) {
		return entity.MatchTypeContains, tx.MerchantNormalized, c.MerchantContains, true
	}

	if c.MerchantRegex != "" {
		re, err := regexp.Compile("(?i)" + c.MerchantRegex)
		if err != nil {
			slog.Warn("rule engine: invalid regex treated as non-matching",
				"pattern", c.MerchantRegex, "error", err)
		} else if re.MatchString(tx.MerchantNormalized) {
			return entity.MatchTypeRegex, tx.MerchantNormalized, c.MerchantRegex, true
		}
	}

	if c.DescriptionContains != "" && strings.Contains(strings.ToUpper(tx.Description), strings.ToUpper(c.DescriptionContains)) {
		return entity.MatchTypeDescription, tx.Description, c.DescriptionContains, true
	}

	return "", "", "", false
}
