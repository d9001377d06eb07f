// Package split implements the transactional Split/Unsplit protocol
// (spec §4.F) over TransactionRepository.RunInTransaction.
package split

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
)

// MinSplits and MaxSplits bound the number of children a split may produce.
const (
	MinSplits = 2
	MaxSplits = 10
)

// ChildInput is one requested child of a split.
type ChildInput struct {
	Amount     int64
	CategoryID *uuid.UUID
	Notes      string
}

// UseCase handles splitting and unsplitting transactions.
type UseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewUseCase creates a new split UseCase instance.
func NewUseCase(transactionRepo adapter.TransactionRepository) *UseCase {
	return &UseCase{transactionRepo: transactionRepo}
}

// Split validates children and, in a single transaction, flips the parent
// to isSplitParent=true and inserts n children with splitParentId set to
// the parent's id.
func (uc *UseCase) Split(ctx context.Context, ownerID string, parentID uuid.UUID, children []ChildInput) ([]*entity.Transaction, error) {
	if len(children) < MinSplits || len(children) > MaxSplits {
		return nil, domainerror.NewTransactionError(domainerror.KindValidation, domainerror.ErrCodeSplitCountOutOfRange, "split count must be between 2 and 10", domainerror.ErrSplitCountOutOfRange)
	}

	parent, err := uc.transactionRepo.FindByID(ctx, ownerID, parentID)
	if err != nil {
		return nil, err
	}
	if parent.IsSplitParent {
		return nil, domainerror.NewTransactionError(domainerror.KindConflict, domainerror.ErrCodeAlreadySplitParent, "transaction is already a split parent", domainerror.ErrAlreadySplitParent)
	}
	if parent.SplitParentID != nil {
		return nil, domainerror.NewTransactionError(domainerror.KindValidation, domainerror.ErrCodeAlreadySplitChild, "transaction is a split child and cannot be split", domainerror.ErrAlreadySplitChild)
	}

	var sum int64
	for _, c := range children {
		sum += c.Amount
		if (c.Amount < 0) != (parent.Amount < 0) {
			return nil, domainerror.NewTransactionError(domainerror.KindValidation, domainerror.ErrCodeSplitSignMismatch, "split amounts must share the parent's sign", domainerror.ErrSplitSignMismatch)
		}
	}
	if sum != parent.Amount {
		return nil, domainerror.NewTransactionError(domainerror.KindValidation, domainerror.ErrCodeSplitSumMismatch, "split amounts do not sum to the parent amount", domainerror.ErrSplitSumMismatch)
	}

	now := time.Now().UTC()
	n := len(children)
	childTxs := make([]*entity.Transaction, n)
	for i, c := range children {
		childID := parent.ID
		child := &entity.Transaction{
			ID:                 uuid.New(),
			OwnerID:            parent.OwnerID,
			AccountID:          parent.AccountID,
			ImportID:           parent.ImportID,
			PostedAt:           parent.PostedAt,
			Amount:             c.Amount,
			Description:        fmt.Sprintf("%s (Split %d/%d)", parent.Description, i+1, n),
			MerchantRaw:        parent.MerchantRaw,
			MerchantNormalized: parent.MerchantNormalized,
			CategoryID:         c.CategoryID,
			ManualOverride:     c.CategoryID != nil,
			Notes:              c.Notes,
			SplitParentID:      &childID,
			TxKey:              splitTxKey(parent.TxKey, i),
			Explainability: entity.Explainability{
				Reason:     entity.ReasonSplit,
				Confidence: 1.0,
				Timestamp:  now,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		childTxs[i] = child
	}

	err = uc.transactionRepo.RunInTransaction(ctx, func(ctx context.Context) error {
		parent.IsSplitParent = true
		parent.UpdatedAt = now
		if err := uc.transactionRepo.Update(ctx, parent); err != nil {
			return err
		}
		return uc.transactionRepo.BatchCreate(ctx, childTxs)
	})
	if err != nil {
		return nil, err
	}

	return childTxs, nil
}

// Children returns every split child of parentID.
func (uc *UseCase) Children(ctx context.Context, ownerID string, parentID uuid.UUID) ([]*entity.Transaction, error) {
	return uc.transactionRepo.FindSplitChildren(ctx, ownerID, parentID)
}

// Unsplit deletes every child of parentID and clears its isSplitParent
// flag in one transaction, returning the number of children removed.
func (uc *UseCase) Unsplit(ctx context.Context, ownerID string, parentID uuid.UUID) (int, error) {
	parent, err := uc.transactionRepo.FindByID(ctx, ownerID, parentID)
	if err != nil {
		return 0, err
	}
	if !parent.IsSplitParent {
		return 0, domainerror.NewTransactionError(domainerror.KindValidation, domainerror.ErrCodeNotSplitParent, "transaction is not a split parent", domainerror.ErrNotSplitParent)
	}

	children, err := uc.transactionRepo.FindSplitChildren(ctx, ownerID, parentID)
	if err != nil {
		return 0, err
	}

	err = uc.transactionRepo.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.transactionRepo.DeleteSplitChildren(ctx, ownerID, parentID); err != nil {
			return err
		}
		parent.IsSplitParent = false
		parent.UpdatedAt = time.Now().UTC()
		return uc.transactionRepo.Update(ctx, parent)
	})
	if err != nil {
		return 0, err
	}

	return len(children), nil
}

// splitTxKey derives a per-child key still unique within the owner, per
// spec §4.F's `parent.txKey + "_split_" + i` scheme, hashed so it stays
// within the same key format as every other TxKey.
func splitTxKey(parentTxKey string, index int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s_split_%d", parentTxKey, index)))
	return hex.EncodeToString(sum[:])
}
