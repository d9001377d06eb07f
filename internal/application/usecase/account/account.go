// Package account contains Account CRUD use cases. The core never mutates
// an Account beyond user-initiated fields and never destroys one (spec §4.A).
package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
)

// CreateInput is the input for creating an Account.
type CreateInput struct {
	OwnerID     string
	Name        string
	Type        entity.AccountType
	Institution string
	LastFour    string
}

// UseCase handles Account creation and listing.
type UseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUseCase creates a new account UseCase instance.
func NewUseCase(accountRepo adapter.AccountRepository) *UseCase {
	return &UseCase{accountRepo: accountRepo}
}

// Create validates and persists a new Account for its owner.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*entity.Account, error) {
	if input.Name == "" {
		return nil, domainerror.NewAccountError(domainerror.KindValidation, domainerror.ErrCodeAccountNameEmpty, "account name is required", domainerror.ErrAccountNameEmpty)
	}

	a := entity.NewAccount(input.OwnerID, input.Name, input.Type, input.Institution, input.LastFour)
	if err := uc.accountRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get fetches one of the owner's accounts by id.
func (uc *UseCase) Get(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Account, error) {
	return uc.accountRepo.FindByID(ctx, ownerID, id)
}

// List returns every account owned by ownerID.
func (uc *UseCase) List(ctx context.Context, ownerID string) ([]*entity.Account, error) {
	return uc.accountRepo.ListByOwner(ctx, ownerID)
}
