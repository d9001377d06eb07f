// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
//
// postedAt/id form the composite cursor-pagination index; owner_id+tx_key
// is the dedupe uniqueness constraint from spec.md §3.
type TransactionModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID            string     `gorm:"type:varchar(255);not null;index:idx_tx_owner_posted,priority:1;index:idx_tx_owner_txkey,unique,priority:1"`
	AccountID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	ImportID           *uuid.UUID `gorm:"type:uuid;index"`
	PostedAt           time.Time  `gorm:"not null;index:idx_tx_owner_posted,priority:2,sort:desc"`
	Amount             int64      `gorm:"not null"`
	Description        string     `gorm:"type:varchar(500);not null"`
	MerchantRaw        string     `gorm:"type:varchar(255)"`
	MerchantNormalized string     `gorm:"type:varchar(255);index"`
	CategoryID         *uuid.UUID `gorm:"type:uuid;index"`
	AutoCategory       string     `gorm:"type:jsonb"`
	ManualOverride     bool       `gorm:"not null;default:false"`
	Explainability     string     `gorm:"type:jsonb;not null;default:'{}'"`
	Notes              string     `gorm:"type:varchar(500)"`
	Tags               string     `gorm:"type:jsonb;not null;default:'[]'"`
	CorrectedAt        *time.Time `gorm:"type:timestamptz"`
	IsSplitParent      bool       `gorm:"not null;default:false"`
	SplitParentID      *uuid.UUID `gorm:"type:uuid;index"`
	ReceiptLineItems   string     `gorm:"type:jsonb"`
	TxKey              string     `gorm:"type:varchar(64);not null;index:idx_tx_owner_txkey,unique,priority:2"`
	CreatedAt          time.Time  `gorm:"not null"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var tags []string
	if m.Tags != "" {
		if err := json.Unmarshal([]byte(m.Tags), &tags); err != nil {
			slog.Warn("failed to unmarshal transaction tags", "error", err, "id", m.ID)
		}
	}

	var explainability entity.Explainability
	if m.Explainability != "" {
		if err := json.Unmarshal([]byte(m.Explainability), &explainability); err != nil {
			slog.Warn("failed to unmarshal transaction explainability", "error", err, "id", m.ID)
		}
	}

	var autoCategory *entity.AutoCategorization
	if strings.TrimSpace(m.AutoCategory) != "" {
		autoCategory = &entity.AutoCategorization{}
		if err := json.Unmarshal([]byte(m.AutoCategory), autoCategory); err != nil {
			slog.Warn("failed to unmarshal transaction auto_category", "error", err, "id", m.ID)
			autoCategory = nil
		}
	}

	var receiptLineItems []entity.ReceiptLineItem
	if strings.TrimSpace(m.ReceiptLineItems) != "" {
		if err := json.Unmarshal([]byte(m.ReceiptLineItems), &receiptLineItems); err != nil {
			slog.Warn("failed to unmarshal transaction receipt line items", "error", err, "id", m.ID)
		}
	}

	return &entity.Transaction{
		ID:                 m.ID,
		OwnerID:            m.OwnerID,
		AccountID:          m.AccountID,
		ImportID:           m.ImportID,
		PostedAt:           m.PostedAt,
		Amount:             m.Amount,
		Description:        m.Description,
		MerchantRaw:        m.MerchantRaw,
		MerchantNormalized: m.MerchantNormalized,
		CategoryID:         m.CategoryID,
		AutoCategory:       autoCategory,
		ManualOverride:     m.ManualOverride,
		Explainability:     explainability,
		Notes:              m.Notes,
		Tags:               tags,
		CorrectedAt:        m.CorrectedAt,
		IsSplitParent:      m.IsSplitParent,
		SplitParentID:      m.SplitParentID,
		ReceiptLineItems:   receiptLineItems,
		TxKey:              m.TxKey,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(tx *entity.Transaction) *TransactionModel {
	tagsJSON, err := json.Marshal(tx.Tags)
	if err != nil {
		slog.Error("failed to marshal transaction tags", "error", err, "id", tx.ID)
		tagsJSON = []byte("[]")
	}

	explainabilityJSON, err := json.Marshal(tx.Explainability)
	if err != nil {
		slog.Error("failed to marshal transaction explainability", "error", err, "id", tx.ID)
		explainabilityJSON = []byte("{}")
	}

	var autoCategoryJSON []byte
	if tx.AutoCategory != nil {
		autoCategoryJSON, err = json.Marshal(tx.AutoCategory)
		if err != nil {
			slog.Error("failed to marshal transaction auto_category", "error", err, "id", tx.ID)
			autoCategoryJSON = nil
		}
	}

	var receiptLineItemsJSON []byte
	if len(tx.ReceiptLineItems) > 0 {
		receiptLineItemsJSON, err = json.Marshal(tx.ReceiptLineItems)
		if err != nil {
			slog.Error("failed to marshal transaction receipt line items", "error", err, "id", tx.ID)
			receiptLineItemsJSON = nil
		}
	}

	return &TransactionModel{
		ID:                 tx.ID,
		OwnerID:            tx.OwnerID,
		AccountID:          tx.AccountID,
		ImportID:           tx.ImportID,
		PostedAt:           tx.PostedAt,
		Amount:             tx.Amount,
		Description:        tx.Description,
		MerchantRaw:        tx.MerchantRaw,
		MerchantNormalized: tx.MerchantNormalized,
		CategoryID:         tx.CategoryID,
		AutoCategory:       string(autoCategoryJSON),
		ManualOverride:     tx.ManualOverride,
		Explainability:     string(explainabilityJSON),
		Notes:              tx.Notes,
		Tags:               string(tagsJSON),
		CorrectedAt:        tx.CorrectedAt,
		IsSplitParent:      tx.IsSplitParent,
		SplitParentID:      tx.SplitParentID,
		ReceiptLineItems:   string(receiptLineItemsJSON),
		TxKey:              tx.TxKey,
		CreatedAt:          tx.CreatedAt,
		UpdatedAt:          tx.UpdatedAt,
	}
}
