// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                   string     `json:"id"`
	AccountID            string     `json:"accountId"`
	ImportID             *string    `json:"importId,omitempty"`
	PostedAt             time.Time  `json:"postedAt"`
	Amount               int64      `json:"amountCents"`
	Description          string     `json:"description"`
	MerchantRaw          string     `json:"merchantRaw"`
	MerchantNormalized   string     `json:"merchantNormalized"`
	CategoryID           *string    `json:"categoryId,omitempty"`
	ManualOverride       bool       `json:"manualOverride"`
	Notes                string     `json:"notes"`
	Tags                 []string   `json:"tags"`
	CorrectedAt          *time.Time `json:"correctedAt,omitempty"`
	IsSplitParent        bool       `json:"isSplitParent"`
	SplitParentID        *string    `json:"splitParentId,omitempty"`
	ExplainabilityReason string     `json:"explainabilityReason"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// ToTransactionResponse converts a domain Transaction into its DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                   tx.ID.String(),
		AccountID:            tx.AccountID.String(),
		PostedAt:             tx.PostedAt,
		Amount:               tx.Amount,
		Description:          tx.Description,
		MerchantRaw:          tx.MerchantRaw,
		MerchantNormalized:   tx.MerchantNormalized,
		ManualOverride:       tx.ManualOverride,
		Notes:                tx.Notes,
		Tags:                 tx.Tags,
		CorrectedAt:          tx.CorrectedAt,
		IsSplitParent:        tx.IsSplitParent,
		ExplainabilityReason: string(tx.Explainability.Reason),
		CreatedAt:            tx.CreatedAt,
		UpdatedAt:            tx.UpdatedAt,
	}
	if tx.ImportID != nil {
		id := tx.ImportID.String()
		resp.ImportID = &id
	}
	if tx.CategoryID != nil {
		id := tx.CategoryID.String()
		resp.CategoryID = &id
	}
	if tx.SplitParentID != nil {
		id := tx.SplitParentID.String()
		resp.SplitParentID = &id
	}
	return resp
}

// ToTransactionResponses converts a slice of Transactions into DTOs.
func ToTransactionResponses(txs []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = ToTransactionResponse(tx)
	}
	return out
}

// PatchTransactionRequest is the request body for PATCH /transactions/{id}.
type PatchTransactionRequest struct {
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
}

// PatchTransactionResponse wraps the updated transaction with an optional
// rule suggestion surfaced by the correction.
type PatchTransactionResponse struct {
	Transaction    TransactionResponse     `json:"transaction"`
	RuleSuggestion *RuleSuggestionResponse `json:"ruleSuggestion,omitempty"`
}

// SplitChildRequest is one requested split in POST /transactions/{id}/split.
type SplitChildRequest struct {
	Amount     int64      `json:"amount" binding:"required"`
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// SplitTransactionRequest is the request body for POST /transactions/{id}/split.
type SplitTransactionRequest struct {
	Splits []SplitChildRequest `json:"splits" binding:"required,min=2,max=10"`
}
