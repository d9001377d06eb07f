// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// LLMCategory is the minimal category shape the classifier needs to pick among.
type LLMCategory struct {
	ID   uuid.UUID
	Name string
}

// ClassifyInput is one transaction submitted for classification.
type ClassifyInput struct {
	TxID        uuid.UUID
	Description string
	MerchantRaw string
	Amount      int64 // cents
}

// ClassifyResult is returned for every classification attempt, success or
// failure alike: on any provider error the adapter returns a zero-value
// CategoryID with Confidence 0 rather than raising (spec §4.C).
type ClassifyResult struct {
	CategoryID *uuid.UUID
	Confidence float64
	Reasoning  string
}

// DocumentKind is the modality parseDocument was invoked for.
type DocumentKind string

const (
	DocumentKindCSV   DocumentKind = "csv"
	DocumentKindPDF   DocumentKind = "pdf"
	DocumentKindImage DocumentKind = "image"
)

// ParsedTransaction is one row extracted from a parsed document.
type ParsedTransaction struct {
	PostedAt    string // YYYY-MM-DD
	Amount      int64  // cents
	Description string
	MerchantRaw string
}

// ParsedReceiptLineItem is one line item extracted from a photographed receipt.
type ParsedReceiptLineItem struct {
	Name       string
	Quantity   float64
	UnitPrice  int64
	TotalPrice int64
	Category   string
}

// ParseResult is the structured output of parseDocument.
type ParseResult struct {
	Transactions []ParsedTransaction
	// Receipt is non-nil only when Kind == DocumentKindImage.
	Receipt *struct {
		LineItems []ParsedReceiptLineItem
	}
}

// LLMProvider is the provider-agnostic contract the Categorization
// Orchestrator and Ingestion Pipeline depend on. Concrete implementations
// (claude_like, vertex_like) are selected at construction time by a
// tagged-variant selector, never by type inheritance (spec §9).
type LLMProvider interface {
	ClassifyTransaction(ctx context.Context, input ClassifyInput, categories []LLMCategory) ClassifyResult

	// ClassifyBatch classifies every input with bounded concurrency (max 5
	// outstanding calls) and returns a result for every TxID, regardless of
	// individual failures.
	ClassifyBatch(ctx context.Context, inputs []ClassifyInput, categories []LLMCategory) map[uuid.UUID]ClassifyResult

	ParseDocument(ctx context.Context, content []byte, kind DocumentKind, mimeType string) (*ParseResult, error)

	// NormalizeMerchant is the LLM fallback invoked when the deterministic
	// normalizer yields fewer than 3 characters (spec §4.D step 5).
	NormalizeMerchant(ctx context.Context, rawMerchant string) (string, error)
}
