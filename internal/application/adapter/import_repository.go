// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// ImportRepository persists Import records, owner-scoped.
type ImportRepository interface {
	Create(ctx context.Context, imp *entity.Import) error
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Import, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Import, error)
	Update(ctx context.Context, imp *entity.Import) error
}
