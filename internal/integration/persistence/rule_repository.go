// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
	"github.com/finance-tracker/ledgerd/internal/infra/store"
	"github.com/finance-tracker/ledgerd/internal/integration/persistence/model"
)

// ruleRepository implements the adapter.RuleRepository interface.
type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository creates a new rule repository instance.
func NewRuleRepository(db *gorm.DB) adapter.RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) Create(ctx context.Context, rule *entity.Rule) error {
	ruleModel := model.RuleFromEntity(rule)
	if err := store.DBFromContext(ctx, r.db).Create(ruleModel).Error; err != nil {
		return store.ClassifyError(err)
	}
	return nil
}

func (r *ruleRepository) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Rule, error) {
	var ruleModel model.RuleModel
	err := store.DBFromContext(ctx, r.db).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&ruleModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRuleNotFound
		}
		return nil, store.ClassifyError(err)
	}
	return ruleModel.ToEntity(), nil
}

// ListEnabledByOwner returns enabled rules sorted by priority descending,
// then id ascending for a stable tie-break, matching the Rule Engine's own
// ordering so the orchestrator's cached list and the engine's re-sort agree.
func (r *ruleRepository) ListEnabledByOwner(ctx context.Context, ownerID string) ([]*entity.Rule, error) {
	var ruleModels []model.RuleModel
	err := store.DBFromContext(ctx, r.db).
		Where("owner_id = ? AND enabled = ?", ownerID, true).
		Order("priority DESC, id ASC").
		Find(&ruleModels).Error
	if err != nil {
		return nil, store.ClassifyError(err)
	}
	return toRuleEntities(ruleModels), nil
}

func (r *ruleRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Rule, error) {
	var ruleModels []model.RuleModel
	err := store.DBFromContext(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("priority DESC, id ASC").
		Find(&ruleModels).Error
	if err != nil {
		return nil, store.ClassifyError(err)
	}
	return toRuleEntities(ruleModels), nil
}

func (r *ruleRepository) Update(ctx context.Context, rule *entity.Rule) error {
	ruleModel := model.RuleFromEntity(rule)
	err := store.DBFromContext(ctx, r.db).
		Where("id = ? AND owner_id = ?", rule.ID, rule.OwnerID).
		Save(ruleModel).Error
	if err != nil {
		return store.ClassifyError(err)
	}
	return nil
}

func (r *ruleRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	err := store.DBFromContext(ctx, r.db).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.RuleModel{}).Error
	if err != nil {
		return store.ClassifyError(err)
	}
	return nil
}

func (r *ruleRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int64
	err := store.DBFromContext(ctx, r.db).
		Model(&model.RuleModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, store.ClassifyError(err)
	}
	return int(count), nil
}

// ExistsMerchantMatch reports whether any rule for ownerID already targets
// merchantNormalized via an exact or contains condition, case-insensitive.
func (r *ruleRepository) ExistsMerchantMatch(ctx context.Context, ownerID, merchantNormalized string) (bool, error) {
	var count int64
	needle := strings.ToUpper(merchantNormalized)
	err := store.DBFromContext(ctx, r.db).
		Model(&model.RuleModel{}).
		Where("owner_id = ? AND (UPPER(conditions->>'MerchantExact') = ? OR UPPER(conditions->>'MerchantContains') = ?)", ownerID, needle, needle).
		Count(&count).Error
	if err != nil {
		return false, store.ClassifyError(err)
	}
	return count > 0, nil
}

// UpdatePriorities assigns priorities to multiple rules in one batch write,
// used by the rule reorder endpoint.
func (r *ruleRepository) UpdatePriorities(ctx context.Context, ownerID string, updates map[uuid.UUID]int) error {
	return store.RunInTransaction(ctx, r.db, func(ctx context.Context) error {
		now := time.Now().UTC()
		tx := store.DBFromContext(ctx, r.db)
		for id, priority := range updates {
			result := tx.Model(&model.RuleModel{}).
				Where("id = ? AND owner_id = ?", id, ownerID).
				Updates(map[string]interface{}{
					"priority":   priority,
					"updated_at": now,
				})
			if result.Error != nil {
				return store.ClassifyError(result.Error)
			}
		}
		return nil
	})
}

func (r *ruleRepository) CreateDismissedSuggestion(ctx context.Context, d *entity.DismissedSuggestion) error {
	dismissedModel := model.DismissedSuggestionFromEntity(d)
	if err := store.DBFromContext(ctx, r.db).Create(dismissedModel).Error; err != nil {
		return store.ClassifyError(err)
	}
	return nil
}

func (r *ruleRepository) FindDismissedSuggestion(ctx context.Context, ownerID, merchantNormalized string, categoryID uuid.UUID) (*entity.DismissedSuggestion, error) {
	var dismissedModel model.DismissedSuggestionModel
	err := store.DBFromContext(ctx, r.db).
		Where("owner_id = ? AND merchant_normalized = ? AND category_id = ?", ownerID, merchantNormalized, categoryID).
		First(&dismissedModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, store.ClassifyError(err)
	}
	return dismissedModel.ToEntity(), nil
}

func toRuleEntities(models []model.RuleModel) []*entity.Rule {
	rules := make([]*entity.Rule, len(models))
	for i, m := range models {
		rules[i] = m.ToEntity()
	}
	return rules
}
