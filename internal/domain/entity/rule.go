// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RuleSource records who created a rule.
type RuleSource string

const (
	RuleSourceUser       RuleSource = "user"
	RuleSourceSuggestion RuleSource = "suggestion"
	RuleSourceSystem     RuleSource = "system"
)

const (
	// MinRulePriority and MaxRulePriority bound the clamp range for Rule.Priority.
	MinRulePriority = 1
	MaxRulePriority = 1000

	// DefaultUserRulePriority is assigned to rules created directly by a user.
	DefaultUserRulePriority = 500
	// DefaultSuggestionRulePriority is assigned to rules accepted from a suggestion.
	DefaultSuggestionRulePriority = 300

	// MaxRulesPerOwner is the hard cap on the number of rules an owner may hold.
	MaxRulesPerOwner = 100

	// MaxRulePatternLength bounds any regex/merchant pattern stored on a rule.
	MaxRulePatternLength = 200
)

// RuleConditions is a bag of optional predicates; at least one must be set
// for a rule to be valid. They are evaluated in a fixed order by the rule
// engine: AccountID, AmountMin/AmountMax, MerchantExact, MerchantContains,
// MerchantRegex, DescriptionContains.
type RuleConditions struct {
	AccountID           *uuid.UUID
	AmountMin           *int64
	AmountMax           *int64
	MerchantExact       string
	MerchantContains    string
	MerchantRegex       string
	DescriptionContains string
}

// IsEmpty reports whether no predicate has been set.
func (c RuleConditions) IsEmpty() bool {
	return c.AccountID == nil && c.AmountMin == nil && c.AmountMax == nil &&
		c.MerchantExact == "" && c.MerchantContains == "" && c.MerchantRegex == "" && c.DescriptionContains == ""
}

// RuleAction is applied when a rule matches.
type RuleAction struct {
	CategoryID uuid.UUID
	AddTags    []string
}

// Rule is a user- or system-authored categorization rule.
type Rule struct {
	ID            uuid.UUID
	OwnerID       string
	Name          string
	Enabled       bool
	Priority      int
	Conditions    RuleConditions
	Action        RuleAction
	Source        RuleSource
	MatchCount    int64
	LastMatchedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewRule creates a new enabled Rule for ownerID.
func NewRule(ownerID, name string, priority int, conditions RuleConditions, action RuleAction, source RuleSource) *Rule {
	now := time.Now().UTC()
	return &Rule{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Name:       name,
		Enabled:    true,
		Priority:   ClampPriority(priority),
		Conditions: conditions,
		Action:     action,
		Source:     source,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ClampPriority clamps p into [MinRulePriority, MaxRulePriority].
func ClampPriority(p int) int {
	if p < MinRulePriority {
		return MinRulePriority
	}
	if p > MaxRulePriority {
		return MaxRulePriority
	}
	return p
}

// DismissedSuggestion suppresses regeneration of a specific suggestion
// for (OwnerID, MerchantNormalized, CategoryID).
type DismissedSuggestion struct {
	ID                 uuid.UUID
	OwnerID            string
	MerchantNormalized string
	CategoryID         uuid.UUID
	DismissedAt        time.Time
}

// NewDismissedSuggestion records a dismissal.
func NewDismissedSuggestion(ownerID, merchantNormalized string, categoryID uuid.UUID) *DismissedSuggestion {
	return &DismissedSuggestion{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		MerchantNormalized: merchantNormalized,
		CategoryID:         categoryID,
		DismissedAt:        time.Now().UTC(),
	}
}

// RuleSuggestion is a one-shot rule template generated on the fly after a
// user correction. It is not persisted until Accept creates a Rule from it.
type RuleSuggestion struct {
	ID         string
	Message    string
	Name       string
	Priority   int
	Conditions RuleConditions
	Action     RuleAction
}
