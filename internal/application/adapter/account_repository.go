// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// AccountRepository persists Account records, owner-scoped.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Account, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Account, error)
}
