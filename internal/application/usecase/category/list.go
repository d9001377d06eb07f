// Package category implements the read-only category listing exposed at
// GET /api/v1/categories; creation/update/deletion are not part of the
// public surface (spec §6).
package category

import (
	"context"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

// ListUseCase lists every category visible to an owner.
type ListUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListUseCase creates a new ListUseCase instance.
func NewListUseCase(categoryRepo adapter.CategoryRepository) *ListUseCase {
	return &ListUseCase{categoryRepo: categoryRepo}
}

// Execute returns every default category plus the owner's own.
func (uc *ListUseCase) Execute(ctx context.Context, ownerID string) ([]*entity.Category, error) {
	return uc.categoryRepo.ListForOwner(ctx, ownerID)
}
