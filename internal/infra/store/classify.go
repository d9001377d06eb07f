package store

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
)

// ClassifyError maps a raw error returned by a gorm/pgx query into the
// domain Kind taxonomy. Connection-level failures and the handful of
// Postgres codes that mean "the store itself is unreachable" become
// StoreUnavailable; an undefined relation/index becomes IndexMissing,
// since that is an operations signal distinct from generic
// unavailability. Anything else is returned unchanged so the caller's
// own not-found/conflict handling still applies.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "57P01", "57P02", "57P03", "08000", "08003", "08006":
			slog.Error("store unavailable", "pg_code", pgErr.Code, "error", pgErr.Message)
			return domainerror.NewStoreError(domainerror.KindStoreUnavailable, domainerror.ErrCodeStoreUnavailable, "data store unavailable", err)
		case "42P01":
			slog.Error("missing relation/index for query", "pg_code", pgErr.Code, "error", pgErr.Message)
			return domainerror.NewStoreError(domainerror.KindIndexMissing, domainerror.ErrCodeIndexMissing, "required index missing for this query shape", err)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		slog.Error("store connection failed", "error", connErr)
		return domainerror.NewStoreError(domainerror.KindStoreUnavailable, domainerror.ErrCodeStoreUnavailable, "data store unavailable", err)
	}

	return err
}
