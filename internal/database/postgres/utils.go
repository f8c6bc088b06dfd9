package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// advisoryXactLock takes a transaction-scoped advisory lock
func advisoryXactLock(ctx context.Context, tx pgx.Tx, key int64) error {
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", key); err != nil {
		return mapError(ErrMsgFailedToAcquireLock, err)
	}
	return nil
}

// balanceColumn maps a sub-balance onto its column. The result is safe to
// splice into SQL because it only ever comes from this fixed set.
func balanceColumn(sb domain.SubBalance) (string, error) {
	switch sb {
	case domain.SubBalanceCash, domain.SubBalanceCrypto, domain.SubBalanceBonus,
		domain.SubBalanceStakePool, domain.SubBalanceWagerPool, domain.SubBalanceAffiliatePool:
		return string(sb), nil
	}
	return "", fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgUnknownSubBalance, sb)
}

// nullableUint converts a scanned BIGINT into *uint64
func nullableUint(v *int64) (*uint64, error) {
	if v == nil {
		return nil, nil
	}
	if *v < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrPersistence, ErrMsgNegativeNonce)
	}
	u := uint64(*v)
	return &u, nil
}
