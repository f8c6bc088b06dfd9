package repository

import (
	"context"
	"errors"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// LogMsgRollbackFailed is logged when a deferred rollback fails
const LogMsgRollbackFailed = "Failed to rollback transaction"

// SafeRollback is meant to be deferred right after a Tx begins. Once the
// Tx has committed the rollback is a no-op; any other failure is logged.
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(ctx)
	if err == nil || errors.Is(err, domain.ErrTxClosed) {
		return
	}
	logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
}
