// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     string    `gorm:"type:varchar(255);not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Institution string    `gorm:"type:varchar(100)"`
	LastFour    string    `gorm:"type:varchar(4)"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Type:        entity.AccountType(m.Type),
		Institution: m.Institution,
		LastFour:    m.LastFour,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:          account.ID,
		OwnerID:     account.OwnerID,
		Name:        account.Name,
		Type:        string(account.Type),
		Institution: account.Institution,
		LastFour:    account.LastFour,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}
