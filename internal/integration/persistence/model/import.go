// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// ImportModel represents the imports table in the database.
type ImportModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID          string     `gorm:"type:varchar(255);not null;index"`
	AccountID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Filename         string     `gorm:"type:varchar(255);not null"`
	FileType         string     `gorm:"type:varchar(10);not null"`
	Status           string     `gorm:"type:varchar(20);not null;index"`
	TransactionCount int        `gorm:"not null;default:0"`
	ErrorMessage     string     `gorm:"type:text"`
	CreatedAt        time.Time  `gorm:"not null"`
	CompletedAt      *time.Time `gorm:"type:timestamptz"`
}

// TableName returns the table name for the ImportModel.
func (ImportModel) TableName() string {
	return "imports"
}

// ToEntity converts an ImportModel to a domain Import entity.
func (m *ImportModel) ToEntity() *entity.Import {
	return &entity.Import{
		ID:               m.ID,
		OwnerID:          m.OwnerID,
		AccountID:        m.AccountID,
		Filename:         m.Filename,
		FileType:         entity.FileType(m.FileType),
		Status:           entity.ImportStatus(m.Status),
		TransactionCount: m.TransactionCount,
		ErrorMessage:     m.ErrorMessage,
		CreatedAt:        m.CreatedAt,
		CompletedAt:      m.CompletedAt,
	}
}

// ImportFromEntity creates an ImportModel from a domain Import entity.
func ImportFromEntity(imp *entity.Import) *ImportModel {
	return &ImportModel{
		ID:               imp.ID,
		OwnerID:          imp.OwnerID,
		AccountID:        imp.AccountID,
		Filename:         imp.Filename,
		FileType:         string(imp.FileType),
		Status:           string(imp.Status),
		TransactionCount: imp.TransactionCount,
		ErrorMessage:     imp.ErrorMessage,
		CreatedAt:        imp.CreatedAt,
		CompletedAt:      imp.CompletedAt,
	}
}
