// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// RuleRepository persists Rule and DismissedSuggestion records, owner-scoped.
type RuleRepository interface {
	Create(ctx context.Context, rule *entity.Rule) error
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Rule, error)
	// ListEnabledByOwner returns enabled rules sorted by priority descending,
	// then by id ascending for a stable tie-break. Callers cache this
	// per-call (spec §5) — the repository itself holds no cache.
	ListEnabledByOwner(ctx context.Context, ownerID string) ([]*entity.Rule, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Rule, error)
	Update(ctx context.Context, rule *entity.Rule) error
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	// ExistsMerchantMatch reports whether any rule for ownerID already has
	// MerchantExact == m or MerchantContains == m (case-insensitive).
	ExistsMerchantMatch(ctx context.Context, ownerID, merchantNormalized string) (bool, error)
	// UpdatePriorities assigns priorities in one batch write.
	UpdatePriorities(ctx context.Context, ownerID string, updates map[uuid.UUID]int) error

	CreateDismissedSuggestion(ctx context.Context, d *entity.DismissedSuggestion) error
	FindDismissedSuggestion(ctx context.Context, ownerID, merchantNormalized string, categoryID uuid.UUID) (*entity.DismissedSuggestion, error)
}
