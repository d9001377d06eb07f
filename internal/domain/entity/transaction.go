// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExplainabilityReason records why a category was assigned to a transaction.
type ExplainabilityReason string

const (
	ReasonRuleMatch ExplainabilityReason = "rule_match"
	ReasonLLM       ExplainabilityReason = "llm"
	ReasonManual    ExplainabilityReason = "manual"
	ReasonNoMatch   ExplainabilityReason = "no_match"
	ReasonDefault   ExplainabilityReason = "default"
	ReasonSplit     ExplainabilityReason = "split"
)

// MatchType is the kind of textual match a rule produced.
type MatchType string

const (
	MatchTypeExact       MatchType = "exact"
	MatchTypeContains    MatchType = "contains"
	MatchTypeRegex       MatchType = "regex"
	MatchTypeDescription MatchType = "description"
)

// Explainability is the audit payload recording why a transaction's current
// category was chosen. A transaction always carries exactly one current
// Explainability; the one it replaces is preserved inside AutoCategory.
type Explainability struct {
	Reason         ExplainabilityReason
	RuleID         *uuid.UUID
	RuleName       string
	MatchType      *MatchType
	MatchedValue   string
	MatchedPattern string
	Confidence     float64
	Timestamp      time.Time
	LLMModel       string
	LLMReasoning   string
}

// ReceiptLineItem is one line of a receipt parsed from a photographed document.
type ReceiptLineItem struct {
	Name       string
	Quantity   float64
	UnitPrice  int64 // cents
	TotalPrice int64 // cents
	Category   string
}

// AutoCategorization preserves the most recent non-manual categorization
// result, so a manual override can always be reverted to it.
type AutoCategorization struct {
	CategoryID     *uuid.UUID
	Explainability Explainability
}

// Transaction is a single monetary movement on an account. Amount is a
// signed integer number of minor units (cents); expenses are negative,
// income positive.
type Transaction struct {
	ID                 uuid.UUID
	OwnerID            string
	AccountID          uuid.UUID
	ImportID           *uuid.UUID
	PostedAt           time.Time
	Amount             int64
	Description        string
	MerchantRaw        string
	MerchantNormalized string
	CategoryID         *uuid.UUID
	AutoCategory       *AutoCategorization
	ManualOverride     bool
	Explainability      Explainability
	Notes              string
	Tags               []string
	CorrectedAt        *time.Time
	IsSplitParent      bool
	SplitParentID      *uuid.UUID
	ReceiptLineItems   []ReceiptLineItem
	TxKey              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewTransaction builds a Transaction ready for persistence; the caller is
// responsible for computing TxKey and an initial Explainability.
func NewTransaction(ownerID string, accountID uuid.UUID, importID *uuid.UUID, postedAt time.Time, amount int64, description, merchantRaw, merchantNormalized, txKey string) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		AccountID:          accountID,
		ImportID:           importID,
		PostedAt:           postedAt,
		Amount:             amount,
		Description:        description,
		MerchantRaw:        merchantRaw,
		MerchantNormalized: merchantNormalized,
		TxKey:              txKey,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// TransactionPage is one cursor-paginated page of transactions.
type TransactionPage struct {
	Transactions []*Transaction
	NextCursor   string
	HasMore      bool
}
