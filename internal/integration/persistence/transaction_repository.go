// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
	"github.com/finance-tracker/ledgerd/internal/infra/store"
	"github.com/finance-tracker/ledgerd/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	txModel := model.TransactionFromEntity(tx)
	if err := store.DBFromContext(ctx, r.db).Create(txModel).Error; err != nil {
		return translateTxWriteError(err)
	}
	return nil
}

func (r *transactionRepository) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Transaction, error) {
	var txModel model.TransactionModel
	err := store.DBFromContext(ctx, r.db).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&txModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, store.ClassifyError(err)
	}
	return txModel.ToEntity(), nil
}

func (r *transactionRepository) FindByTxKey(ctx context.Context, ownerID, txKey string) (*entity.Transaction, error) {
	var txModel model.TransactionModel
	err := store.DBFromContext(ctx, r.db).
		Where("owner_id = ? AND tx_key = ?", ownerID, txKey).
		First(&txModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, store.ClassifyError(err)
	}
	return txModel.ToEntity(), nil
}

// List applies filter on top of the mandatory owner scope and paginates
// via an opaque (postedAt, id) cursor: it fetches limit+1 rows ordered
// (posted_at DESC, id DESC), discards the surplus row after computing
// hasMore, and never conflates an invalid cursor with an empty page.
func (r *transactionRepository) List(ctx context.Context, filter adapter.TransactionFilter, page adapter.PageParams) (*entity.TransactionPage, error) {
	page = page.Clamp()

	cursor, err := store.DecodeCursor(page.Cursor)
	if err != nil {
		return nil, err
	}

	query := store.DBFromContext(ctx, r.db).Model(&model.TransactionModel{}).
		Where("owner_id = ?", filter.OwnerID)
	query = applyTransactionFilter(query, filter)

	if page.Cursor != "" {
		query = query.Where(
			"(posted_at, id) < (?, ?)",
			cursor.PostedAt, cursor.ID,
		)
	}

	var txModels []model.TransactionModel
	err = query.
		Order("posted_at DESC, id DESC").
		Limit(page.Limit + 1).
		Find(&txModels).Error
	if err != nil {
		return nil, store.ClassifyError(err)
	}

	hasMore := len(txModels) > page.Limit
	if hasMore {
		txModels = txModels[:page.Limit]
	}

	transactions := make([]*entity.Transaction, len(txModels))
	for i, m := range txModels {
		transactions[i] = m.ToEntity()
	}

	var nextCursor string
	if hasMore && len(transactions) > 0 {
		last := transactions[len(transactions)-1]
		nextCursor = store.EncodeCursor(store.Cursor{PostedAt: last.PostedAt, ID: last.ID})
	}

	return &entity.TransactionPage{
		Transactions: transactions,
		NextCursor:   nextCursor,
		HasMore:      hasMore,
	}, nil
}

func applyTransactionFilter(query *gorm.DB, filter adapter.TransactionFilter) *gorm.DB {
	if filter.StartDate != nil {
		query = query.Where("posted_at >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("posted_at <= ?", filter.EndDate)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", filter.AccountID)
	}
	if filter.Merchant != "" {
		query = query.Where("merchant_normalized ILIKE ?", "%"+strings.ToUpper(filter.Merchant)+"%")
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	if filter.Uncategorized {
		query = query.Where("category_id IS NULL")
	}
	if filter.ImportID != nil {
		query = query.Where("import_id = ?", filter.ImportID)
	}
	if filter.ExcludeSplitParents {
		query = query.Where("is_split_parent = ?", false)
	}
	for _, tag := range filter.Tags {
		query = query.Where("tags::jsonb @> ?", `["`+tag+`"]`)
	}
	return query
}

func (r *transactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	txModel := model.TransactionFromEntity(tx)
	err := store.DBFromContext(ctx, r.db).
		Where("id = ? AND owner_id = ?", tx.ID, tx.OwnerID).
		Save(txModel).Error
	if err != nil {
		return translateTxWriteError(err)
	}
	return nil
}

func (r *transactionRepository) BatchCreate(ctx context.Context, txs []*entity.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	models := make([]*model.TransactionModel, len(txs))
	for i, tx := range txs {
		models[i] = model.TransactionFromEntity(tx)
	}
	if err := store.DBFromContext(ctx, r.db).CreateInBatches(models, 100).Error; err != nil {
		return translateTxWriteError(err)
	}
	return nil
}

func (r *transactionRepository) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return store.RunInTransaction(ctx, r.db, fn)
}

func (r *transactionRepository) FindSplitChildren(ctx context.Context, ownerID string, parentID uuid.UUID) ([]*entity.Transaction, error) {
	var txModels []model.TransactionModel
	err := store.DBFromContext(ctx, r.db).
		Where("owner_id = ? AND split_parent_id = ?", ownerID, parentID).
		Order("created_at ASC").
		Find(&txModels).Error
	if err != nil {
		return nil, store.ClassifyError(err)
	}

	transactions := make([]*entity.Transaction, len(txModels))
	for i, m := range txModels {
		transactions[i] = m.ToEntity()
	}
	return transactions, nil
}

func (r *transactionRepository) DeleteSplitChildren(ctx context.Context, ownerID string, parentID uuid.UUID) error {
	err := store.DBFromContext(ctx, r.db).
		Where("owner_id = ? AND split_parent_id = ?", ownerID, parentID).
		Delete(&model.TransactionModel{}).Error
	if err != nil {
		return store.ClassifyError(err)
	}
	return nil
}

func (r *transactionRepository) MonthTransactions(ctx context.Context, ownerID string, start, end time.Time) ([]*entity.Transaction, error) {
	var txModels []model.TransactionModel
	err := store.DBFromContext(ctx, r.db).
		Where("owner_id = ? AND posted_at >= ? AND posted_at <= ? AND is_split_parent = ?", ownerID, start, end, false).
		Order("posted_at ASC, id ASC").
		Find(&txModels).Error
	if err != nil {
		return nil, store.ClassifyError(err)
	}

	transactions := make([]*entity.Transaction, len(txModels))
	for i, m := range txModels {
		transactions[i] = m.ToEntity()
	}
	return transactions, nil
}

// IncrementRuleMatch bumps match_count and sets last_matched_at in a single
// atomic UPDATE. Its caller is Orchestrator.RecordRuleMatch, which invokes
// it synchronously and only logs a failure.
func (r *transactionRepository) IncrementRuleMatch(ctx context.Context, ruleID uuid.UUID, at time.Time) error {
	err := store.DBFromContext(ctx, r.db).
		Exec("UPDATE rules SET match_count = match_count + 1, last_matched_at = ? WHERE id = ?", at, ruleID).Error
	if err != nil {
		return store.ClassifyError(err)
	}
	return nil
}

func translateTxWriteError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domainerror.ErrTxKeyConflict
	}
	return store.ClassifyError(err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
