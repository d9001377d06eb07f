// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountType enumerates the kinds of financial accounts the ledger tracks.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeOther      AccountType = "other"
)

// Account is owned by exactly one user; OwnerID is immutable once set.
type Account struct {
	ID          uuid.UUID
	OwnerID     string
	Name        string
	Type        AccountType
	Institution string
	LastFour    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAccount creates a new Account owned by ownerID.
func NewAccount(ownerID, name string, accountType AccountType, institution, lastFour string) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Type:        accountType,
		Institution: institution,
		LastFour:    lastFour,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
