// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Institution string    `json:"institution"`
	LastFour    string    `json:"lastFour"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToAccountResponse converts a domain Account into its DTO.
func ToAccountResponse(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID.String(),
		Name:        a.Name,
		Type:        string(a.Type),
		Institution: a.Institution,
		LastFour:    a.LastFour,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToAccountResponses converts a slice of Accounts into DTOs.
func ToAccountResponses(accounts []*entity.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = ToAccountResponse(a)
	}
	return out
}

// CreateAccountRequest is the request body for POST /accounts.
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Type        string `json:"type" binding:"required,oneof=checking savings credit investment other"`
	Institution string `json:"institution,omitempty"`
	LastFour    string `json:"lastFour,omitempty" binding:"omitempty,len=4"`
}
