// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// TransactionFilter narrows a transaction listing. Every non-zero field is
// ANDed together; all filters are applied on top of the mandatory
// OwnerID predicate the repository injects itself.
type TransactionFilter struct {
	OwnerID         string
	StartDate       *time.Time
	EndDate         *time.Time
	CategoryID      *uuid.UUID
	AccountID       *uuid.UUID
	Merchant        string
	MinAmount       *int64
	MaxAmount       *int64
	Tags            []string
	Uncategorized   bool
	ImportID        *uuid.UUID
	ExcludeSplitParents bool
}

// TransactionRepository is the Store Adapter's entity-scoped view over
// Transaction records (spec §4.A). Every method is implicitly scoped to
// one owner; callers never pass a raw, unscoped query.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Transaction, error)
	FindByTxKey(ctx context.Context, ownerID, txKey string) (*entity.Transaction, error)
	List(ctx context.Context, filter TransactionFilter, page PageParams) (*entity.TransactionPage, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	BatchCreate(ctx context.Context, txs []*entity.Transaction) error

	// RunInTransaction executes fn within a single store transaction,
	// rolling back entirely if fn returns a non-nil error. Used by the
	// split/unsplit protocol to guarantee no partial state is visible.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// FindSplitChildren returns every transaction with SplitParentID == parentID.
	FindSplitChildren(ctx context.Context, ownerID string, parentID uuid.UUID) ([]*entity.Transaction, error)

	// DeleteSplitChildren permanently removes every transaction with
	// SplitParentID == parentID, used by Unsplit.
	DeleteSplitChildren(ctx context.Context, ownerID string, parentID uuid.UUID) error

	// MonthTransactions returns every non-split-parent transaction whose
	// PostedAt falls within [start, end], for the Monthly Aggregator.
	MonthTransactions(ctx context.Context, ownerID string, start, end time.Time) ([]*entity.Transaction, error)

	// IncrementRuleMatch is a best-effort atomic counter bump; it runs
	// synchronously, and callers log its error rather than returning it.
	IncrementRuleMatch(ctx context.Context, ruleID uuid.UUID, at time.Time) error
}
