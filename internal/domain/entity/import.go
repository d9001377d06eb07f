// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// FileType is the document modality an Import was submitted as.
type FileType string

const (
	FileTypeCSV   FileType = "csv"
	FileTypePDF   FileType = "pdf"
	FileTypeImage FileType = "image"
)

// ImportStatus is the Import state machine: pending -> processing -> {completed, failed}.
type ImportStatus string

const (
	ImportStatusPending    ImportStatus = "pending"
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// Import tracks one document submission through the ingestion pipeline.
// Terminal states (completed, failed) are immutable except for observational fields.
type Import struct {
	ID               uuid.UUID
	OwnerID          string
	AccountID        uuid.UUID
	Filename         string
	FileType         FileType
	Status           ImportStatus
	TransactionCount int
	ErrorMessage     string
	CreatedAt        time.Time
	CompletedAt      *time.Time
}

// NewImport creates a pending Import awaiting pipeline execution.
func NewImport(ownerID string, accountID uuid.UUID, filename string, fileType FileType) *Import {
	return &Import{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		AccountID: accountID,
		Filename:  filename,
		FileType:  fileType,
		Status:    ImportStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// MarkProcessing transitions a pending Import to processing.
func (i *Import) MarkProcessing() {
	i.Status = ImportStatusProcessing
}

// MarkCompleted transitions a processing Import to completed with its final transaction count.
func (i *Import) MarkCompleted(created int) {
	now := time.Now().UTC()
	i.Status = ImportStatusCompleted
	i.TransactionCount = created
	i.CompletedAt = &now
}

// MarkFailed transitions a processing Import to failed with a recorded error.
func (i *Import) MarkFailed(reason string) {
	now := time.Now().UTC()
	i.Status = ImportStatusFailed
	i.ErrorMessage = reason
	i.CompletedAt = &now
}
