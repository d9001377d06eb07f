// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// RuleModel represents the rules table in the database.
type RuleModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID       string     `gorm:"type:varchar(255);not null;index:idx_rules_owner_priority,priority:1"`
	Name          string     `gorm:"type:varchar(100);not null"`
	Enabled       bool       `gorm:"not null;default:true;index"`
	Priority      int        `gorm:"not null;default:500;index:idx_rules_owner_priority,priority:2,sort:desc"`
	Conditions    string     `gorm:"type:jsonb;not null;default:'{}'"`
	Action        string     `gorm:"type:jsonb;not null;default:'{}'"`
	Source        string     `gorm:"type:varchar(20);not null"`
	MatchCount    int64      `gorm:"not null;default:0"`
	LastMatchedAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt     time.Time  `gorm:"not null"`
	UpdatedAt     time.Time  `gorm:"not null"`
}

// TableName returns the table name for the RuleModel.
func (RuleModel) TableName() string {
	return "rules"
}

// ToEntity converts a RuleModel to a domain Rule entity.
func (m *RuleModel) ToEntity() *entity.Rule {
	var conditions entity.RuleConditions
	if err := json.Unmarshal([]byte(m.Conditions), &conditions); err != nil {
		slog.Warn("failed to unmarshal rule conditions", "error", err, "id", m.ID)
	}

	var action entity.RuleAction
	if err := json.Unmarshal([]byte(m.Action), &action); err != nil {
		slog.Warn("failed to unmarshal rule action", "error", err, "id", m.ID)
	}

	return &entity.Rule{
		ID:            m.ID,
		OwnerID:       m.OwnerID,
		Name:          m.Name,
		Enabled:       m.Enabled,
		Priority:      m.Priority,
		Conditions:    conditions,
		Action:        action,
		Source:        entity.RuleSource(m.Source),
		MatchCount:    m.MatchCount,
		LastMatchedAt: m.LastMatchedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// RuleFromEntity creates a RuleModel from a domain Rule entity.
func RuleFromEntity(rule *entity.Rule) *RuleModel {
	conditionsJSON, err := json.Marshal(rule.Conditions)
	if err != nil {
		slog.Error("failed to marshal rule conditions", "error", err, "id", rule.ID)
		conditionsJSON = []byte("{}")
	}

	actionJSON, err := json.Marshal(rule.Action)
	if err != nil {
		slog.Error("failed to marshal rule action", "error", err, "id", rule.ID)
		actionJSON = []byte("{}")
	}

	return &RuleModel{
		ID:            rule.ID,
		OwnerID:       rule.OwnerID,
		Name:          rule.Name,
		Enabled:       rule.Enabled,
		Priority:      rule.Priority,
		Conditions:    string(conditionsJSON),
		Action:        string(actionJSON),
		Source:        string(rule.Source),
		MatchCount:    rule.MatchCount,
		LastMatchedAt: rule.LastMatchedAt,
		CreatedAt:     rule.CreatedAt,
		UpdatedAt:     rule.UpdatedAt,
	}
}

// DismissedSuggestionModel represents the dismissed_suggestions table.
type DismissedSuggestionModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID            string    `gorm:"type:varchar(255);not null;index:idx_dismissed_lookup,priority:1"`
	MerchantNormalized string    `gorm:"type:varchar(255);not null;index:idx_dismissed_lookup,priority:2"`
	CategoryID         uuid.UUID `gorm:"type:uuid;not null;index:idx_dismissed_lookup,priority:3"`
	DismissedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the DismissedSuggestionModel.
func (DismissedSuggestionModel) TableName() string {
	return "dismissed_suggestions"
}

// ToEntity converts a DismissedSuggestionModel to a domain DismissedSuggestion entity.
func (m *DismissedSuggestionModel) ToEntity() *entity.DismissedSuggestion {
	return &entity.DismissedSuggestion{
		ID:                 m.ID,
		OwnerID:            m.OwnerID,
		MerchantNormalized: m.MerchantNormalized,
		CategoryID:         m.CategoryID,
		DismissedAt:        m.DismissedAt,
	}
}

// DismissedSuggestionFromEntity creates a DismissedSuggestionModel from a domain entity.
func DismissedSuggestionFromEntity(d *entity.DismissedSuggestion) *DismissedSuggestionModel {
	return &DismissedSuggestionModel{
		ID:                 d.ID,
		OwnerID:            d.OwnerID,
		MerchantNormalized: d.MerchantNormalized,
		CategoryID:         d.CategoryID,
		DismissedAt:        d.DismissedAt,
	}
}
