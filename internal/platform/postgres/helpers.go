package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openbesluit/reportgen/internal/platform/logger"
)

// rollback discards a transaction, logging anything other than the
// expected "already committed" outcome.
func rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.FromContext(ctx).Error("failed to roll back transaction", "error", err)
	}
}

// closeRows closes a result set, logging close failures instead of
// dropping them.
func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logger.FromContext(ctx).Error("failed to close result set", "error", err)
	}
}
