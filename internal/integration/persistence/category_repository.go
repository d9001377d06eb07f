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

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	if err := store.DBFromContext(ctx, r.db).Create(categoryModel).Error; err != nil {
		return store.ClassifyError(err)
	}
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	err := store.DBFromContext(ctx, r.db).Where("id = ?", id).First(&categoryModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, store.ClassifyError(err)
	}
	return categoryModel.ToEntity(), nil
}

// ListForOwner returns every default category plus the owner's own
// categories, ordered for stable display (defaults first, then sortOrder).
func (r *categoryRepository) ListForOwner(ctx context.Context, ownerID string) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	err := store.DBFromContext(ctx, r.db).
		Where("is_default = ? OR owner_id = ?", true, ownerID).
		Order("is_default DESC, sort_order ASC, name ASC").
		Find(&categoryModels).Error
	if err != nil {
		return nil, store.ClassifyError(err)
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i, m := range categoryModels {
		categories[i] = m.ToEntity()
	}
	return categories, nil
}
