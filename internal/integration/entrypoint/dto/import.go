// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// UploadImportRequest is the request body for POST /imports/upload. Content
// is base64-encoded document bytes, matching a JSON-transportable upload.
type UploadImportRequest struct {
	AccountID uuid.UUID `json:"accountId" binding:"required"`
	Content   string    `json:"content" binding:"required"`
	Filename  string    `json:"filename" binding:"required"`
	MimeType  string    `json:"mimeType" binding:"required"`
}

// ImportResponse represents a single import in API responses.
type ImportResponse struct {
	ID               string     `json:"id"`
	AccountID        string     `json:"accountId"`
	Filename         string     `json:"filename"`
	FileType         string     `json:"fileType"`
	Status           string     `json:"status"`
	TransactionCount int        `json:"transactionCount"`
	ErrorMessage     string     `json:"errorMessage,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// ToImportResponse converts a domain Import into its DTO.
func ToImportResponse(imp *entity.Import) ImportResponse {
	return ImportResponse{
		ID:               imp.ID.String(),
		AccountID:        imp.AccountID.String(),
		Filename:         imp.Filename,
		FileType:         string(imp.FileType),
		Status:           string(imp.Status),
		TransactionCount: imp.TransactionCount,
		ErrorMessage:     imp.ErrorMessage,
		CreatedAt:        imp.CreatedAt,
		CompletedAt:      imp.CompletedAt,
	}
}

// ToImportResponses converts a slice of Imports into DTOs.
func ToImportResponses(imports []*entity.Import) []ImportResponse {
	out := make([]ImportResponse, len(imports))
	for i, imp := range imports {
		out[i] = ToImportResponse(imp)
	}
	return out
}
