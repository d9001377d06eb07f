// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	OwnerID   *string   `json:"ownerId,omitempty"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	IsDefault bool      `json:"isDefault"`
	ParentID  *string   `json:"parentId,omitempty"`
	SortOrder int       `json:"sortOrder"`
	IsHidden  bool      `json:"isHidden"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToCategoryResponse converts a domain Category into its DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:        cat.ID.String(),
		OwnerID:   cat.OwnerID,
		Name:      cat.Name,
		Icon:      cat.Icon,
		Color:     cat.Color,
		IsDefault: cat.IsDefault,
		SortOrder: cat.SortOrder,
		IsHidden:  cat.IsHidden,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
	if cat.ParentID != nil {
		id := cat.ParentID.String()
		resp.ParentID = &id
	}
	return resp
}

// ToCategoryResponses converts a slice of Categories into DTOs.
func ToCategoryResponses(categories []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = ToCategoryResponse(c)
	}
	return out
}
