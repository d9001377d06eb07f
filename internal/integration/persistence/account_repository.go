// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
	"github.com/finance-tracker/ledgerd/internal/infra/store"
	"github.com/finance-tracker/ledgerd/internal/integration/persistence/model"
)

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)
	if err := store.DBFromContext(ctx, r.db).Create(accountModel).Error; err != nil {
		return store.ClassifyError(err)
	}
	return nil
}

func (r *accountRepository) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel
	err := store.DBFromContext(ctx, r.db).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&accountModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, store.ClassifyError(err)
	}
	return accountModel.ToEntity(), nil
}

func (r *accountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Account, error) {
	var accountModels []model.AccountModel
	err := store.DBFromContext(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&accountModels).Error
	if err != nil {
		return nil, store.ClassifyError(err)
	}

	accounts := make([]*entity.Account, len(accountModels))
	for i, m := range accountModels {
		accounts[i] = m.ToEntity()
	}
	return accounts, nil
}
