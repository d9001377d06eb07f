package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// GetUseCase fetches one owner-scoped transaction by id.
type GetUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetUseCase creates a new GetUseCase instance.
func NewGetUseCase(transactionRepo adapter.TransactionRepository) *GetUseCase {
	return &GetUseCase{transactionRepo: transactionRepo}
}

// Execute returns the transaction, or domainerror.ErrTransactionNotFound
// if it does not exist or belongs to a different owner.
func (uc *GetUseCase) Execute(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Transaction, error) {
	return uc.transactionRepo.FindByID(ctx, ownerID, id)
}
