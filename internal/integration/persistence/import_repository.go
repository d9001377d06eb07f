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

// importRepository implements the adapter.ImportRepository interface.
type importRepository struct {
	db *gorm.DB
}

// NewImportRepository creates a new import repository instance.
func NewImportRepository(db *gorm.DB) adapter.ImportRepository {
	return &importRepository{db: db}
}

func (r *importRepository) Create(ctx context.Context, imp *entity.Import) error {
	importModel := model.ImportFromEntity(imp)
	if err := store.DBFromContext(ctx, r.db).Create(importModel).Error; err != nil {
		return store.ClassifyError(err)
	}
	return nil
}

func (r *importRepository) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Import, error) {
	var importModel model.ImportModel
	err := store.DBFromContext(ctx, r.db).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&importModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrImportNotFound
		}
		return nil, store.ClassifyError(err)
	}
	return importModel.ToEntity(), nil
}

func (r *importRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Import, error) {
	var importModels []model.ImportModel
	err := store.DBFromContext(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&importModels).Error
	if err != nil {
		return nil, store.ClassifyError(err)
	}

	imports := make([]*entity.Import, len(importModels))
	for i, m := range importModels {
		imports[i] = m.ToEntity()
	}
	return imports, nil
}

func (r *importRepository) Update(ctx context.Context, imp *entity.Import) error {
	importModel := model.ImportFromEntity(imp)
	err := store.DBFromContext(ctx, r.db).
		Where("id = ? AND owner_id = ?", imp.ID, imp.OwnerID).
		Save(importModel).Error
	if err != nil {
		return store.ClassifyError(err)
	}
	return nil
}
