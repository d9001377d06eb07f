// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is used when a category is created without one.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is used when a category is created without one.
const DefaultCategoryIcon = "tag"

// Category groups transactions for reporting and rule targeting. Default
// categories have a nil OwnerID and are read-only for every owner; user
// categories are scoped to exactly one OwnerID.
type Category struct {
	ID        uuid.UUID
	OwnerID   *string
	Name      string
	Icon      string
	Color     string
	IsDefault bool
	ParentID  *uuid.UUID
	SortOrder int
	IsHidden  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new user-owned Category.
func NewCategory(ownerID, name, icon, color string, parentID *uuid.UUID, sortOrder int) *Category {
	now := time.Now().UTC()
	if icon == "" {
		icon = DefaultCategoryIcon
	}
	if color == "" {
		color = DefaultCategoryColor
	}
	owner := ownerID
	return &Category{
		ID:        uuid.New(),
		OwnerID:   &owner,
		Name:      name,
		Icon:      icon,
		Color:     color,
		IsDefault: false,
		ParentID:  parentID,
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
