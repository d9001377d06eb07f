package store

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// WithTx attaches an in-flight *gorm.DB transaction to ctx, so repository
// methods called from inside a RunInTransaction callback reuse it instead
// of opening a fresh connection-level statement.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// DBFromContext returns the transaction attached to ctx by WithTx, or base
// if none is attached. Every repository method should call this instead
// of closing over its constructor's *gorm.DB directly.
func DBFromContext(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return base.WithContext(ctx)
}

// RunInTransaction runs fn inside a single gorm transaction, committing on
// nil error and rolling back otherwise. The callback receives a context
// carrying the transaction so nested repository calls participate in it.
func RunInTransaction(ctx context.Context, base *gorm.DB, fn func(ctx context.Context) error) error {
	return base.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
