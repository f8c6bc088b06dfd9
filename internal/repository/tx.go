package repository

import "context"

// Tx is the commit/rollback half of a unit of work. Rollback after a
// successful Commit returns domain.ErrTxClosed.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
