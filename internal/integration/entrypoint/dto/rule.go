// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// RuleConditionsRequest mirrors entity.RuleConditions over the wire.
type RuleConditionsRequest struct {
	AccountID           *uuid.UUID `json:"accountId,omitempty"`
	AmountMin           *int64     `json:"amountMin,omitempty"`
	AmountMax           *int64     `json:"amountMax,omitempty"`
	MerchantExact       string     `json:"merchantExact,omitempty"`
	MerchantContains    string     `json:"merchantContains,omitempty"`
	MerchantRegex       string     `json:"merchantRegex,omitempty"`
	DescriptionContains string     `json:"descriptionContains,omitempty"`
}

// ToConditions converts the wire request into entity.RuleConditions.
func (r RuleConditionsRequest) ToConditions() entity.RuleConditions {
	return entity.RuleConditions{
		AccountID:           r.AccountID,
		AmountMin:           r.AmountMin,
		AmountMax:           r.AmountMax,
		MerchantExact:       r.MerchantExact,
		MerchantContains:    r.MerchantContains,
		MerchantRegex:       r.MerchantRegex,
		DescriptionContains: r.DescriptionContains,
	}
}

// RuleActionRequest mirrors entity.RuleAction over the wire.
type RuleActionRequest struct {
	CategoryID uuid.UUID `json:"categoryId" binding:"required"`
	AddTags    []string  `json:"addTags,omitempty"`
}

// ToAction converts the wire request into entity.RuleAction.
func (r RuleActionRequest) ToAction() entity.RuleAction {
	return entity.RuleAction{CategoryID: r.CategoryID, AddTags: r.AddTags}
}

// CreateRuleRequest is the request body for POST /rules.
type CreateRuleRequest struct {
	Name       string                `json:"name" binding:"required,min=1,max=100"`
	Priority   int                   `json:"priority,omitempty"`
	Conditions RuleConditionsRequest `json:"conditions"`
	Action     RuleActionRequest     `json:"action"`
}

// UpdateRuleRequest is the request body for PATCH /rules/{id}.
type UpdateRuleRequest struct {
	Name       string                `json:"name" binding:"required,min=1,max=100"`
	Enabled    bool                  `json:"enabled"`
	Priority   int                   `json:"priority"`
	Conditions RuleConditionsRequest `json:"conditions"`
	Action     RuleActionRequest     `json:"action"`
}

// ReorderRulesRequest is the request body for POST /rules/reorder.
type ReorderRulesRequest struct {
	RuleIDs []uuid.UUID `json:"ruleIds" binding:"required,min=1"`
}

// DismissSuggestionRequest is the request body for POST /rules/suggestions/dismiss.
type DismissSuggestionRequest struct {
	Merchant   string    `json:"merchant" binding:"required"`
	CategoryID uuid.UUID `json:"categoryId" binding:"required"`
}

// AcceptSuggestionRequest is the request body for POST /rules/suggestions/accept.
type AcceptSuggestionRequest struct {
	ID         string                `json:"id" binding:"required"`
	Message    string                `json:"message"`
	Name       string                `json:"name" binding:"required"`
	Priority   int                   `json:"priority"`
	Conditions RuleConditionsRequest `json:"conditions"`
	Action     RuleActionRequest     `json:"action"`
}

// RuleResponse represents a single rule in API responses.
type RuleResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Enabled       bool                  `json:"enabled"`
	Priority      int                   `json:"priority"`
	Conditions    RuleConditionsRequest `json:"conditions"`
	Action        RuleActionRequest     `json:"action"`
	Source        string                `json:"source"`
	MatchCount    int64                 `json:"matchCount"`
	LastMatchedAt *time.Time            `json:"lastMatchedAt,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// ToRuleResponse converts a domain Rule into its DTO.
func ToRuleResponse(r *entity.Rule) RuleResponse {
	return RuleResponse{
		ID:      r.ID.String(),
		Name:    r.Name,
		Enabled: r.Enabled,
		Priority: r.Priority,
		Conditions: RuleConditionsRequest{
			AccountID:           r.Conditions.AccountID,
			AmountMin:           r.Conditions.AmountMin,
			AmountMax:           r.Conditions.AmountMax,
			MerchantExact:       r.Conditions.MerchantExact,
			MerchantContains:    r.Conditions.MerchantContains,
			MerchantRegex:       r.Conditions.MerchantRegex,
			DescriptionContains: r.Conditions.DescriptionContains,
		},
		Action: RuleActionRequest{
			CategoryID: r.Action.CategoryID,
			AddTags:    r.Action.AddTags,
		},
		Source:        string(r.Source),
		MatchCount:    r.MatchCount,
		LastMatchedAt: r.LastMatchedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ToRuleResponses converts a slice of Rules into DTOs.
func ToRuleResponses(rules []*entity.Rule) []RuleResponse {
	out := make([]RuleResponse, len(rules))
	for i, r := range rules {
		out[i] = ToRuleResponse(r)
	}
	return out
}

// RuleSuggestionResponse represents a RuleSuggestion in API responses.
type RuleSuggestionResponse struct {
	ID         string                `json:"id"`
	Message    string                `json:"message"`
	Name       string                `json:"name"`
	Priority   int                   `json:"priority"`
	Conditions RuleConditionsRequest `json:"conditions"`
	Action     RuleActionRequest     `json:"action"`
}

// ToRuleSuggestionResponse converts a domain RuleSuggestion into its DTO.
func ToRuleSuggestionResponse(s *entity.RuleSuggestion) *RuleSuggestionResponse {
	if s == nil {
		return nil
	}
	return &RuleSuggestionResponse{
		ID:       s.ID,
		Message:  s.Message,
		Name:     s.Name,
		Priority: s.Priority,
		Conditions: RuleConditionsRequest{
			AccountID:           s.Conditions.AccountID,
			AmountMin:           s.Conditions.AmountMin,
			AmountMax:           s.Conditions.AmountMax,
			MerchantExact:       s.Conditions.MerchantExact,
			MerchantContains:    s.Conditions.MerchantContains,
			MerchantRegex:       s.Conditions.MerchantRegex,
			DescriptionContains: s.Conditions.DescriptionContains,
		},
		Action: RuleActionRequest{
			CategoryID: s.Action.CategoryID,
			AddTags:    s.Action.AddTags,
		},
	}
}
