// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// CategoryRepository persists Category records. Default categories
// (OwnerID == nil) are visible to every owner and read-only.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	// ListForOwner returns every default category plus the owner's own categories.
	ListForOwner(ctx context.Context, ownerID string) ([]*entity.Category, error)
}
