// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID   *string    `gorm:"type:varchar(255);index:idx_categories_owner"`
	Name      string     `gorm:"type:varchar(50);not null"`
	Icon      string     `gorm:"type:varchar(50);default:'tag'"`
	Color     string     `gorm:"type:varchar(7);default:'#6366F1'"`
	IsDefault bool       `gorm:"not null;default:false"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	SortOrder int        `gorm:"not null;default:0"`
	IsHidden  bool       `gorm:"not null;default:false"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		Icon:      m.Icon,
		Color:     m.Color,
		IsDefault: m.IsDefault,
		ParentID:  m.ParentID,
		SortOrder: m.SortOrder,
		IsHidden:  m.IsHidden,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:        category.ID,
		OwnerID:   category.OwnerID,
		Name:      category.Name,
		Icon:      category.Icon,
		Color:     category.Color,
		IsDefault: category.IsDefault,
		ParentID:  category.ParentID,
		SortOrder: category.SortOrder,
		IsHidden:  category.IsHidden,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
