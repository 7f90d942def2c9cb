package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// DBTX is the subset of sqlx operations shared by *sqlx.DB and *sqlx.Tx, so
// repositories can transparently run inside or outside a transaction.
type DBTX interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// contextKey is the key type for context values set by this package.
type contextKey string

// TransactionContextKey carries the active *sqlx.Tx, when one exists.
const TransactionContextKey contextKey = "tx"

// GetExecutor returns the transaction stored in ctx, or db when none is.
func GetExecutor(ctx context.Context, db DBTX) DBTX {
	if tx := ctx.Value(TransactionContextKey); tx != nil {
		if sqlxTx, ok := tx.(*sqlx.Tx); ok {
			return sqlxTx
		}
	}
	return db
}
