package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/hashchain"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// HashChainStore implements hashchain.Store on the hash_chain_* tables
type HashChainStore struct {
	db *pgxpool.Pool
}

// NewHashChainStore creates a new HashChainStore
func NewHashChainStore(db *pgxpool.Pool) *HashChainStore {
	return &HashChainStore{db: db}
}

var (
	_ hashchain.Store        = (*HashChainStore)(nil)
	_ hashchain.IssuerLocker = (*HashChainStore)(nil)
)

// ClaimIssuer takes a session advisory lock on a connection kept out of the
// pool until release. A second process gets ErrConcurrencyConflict.
func (s *HashChainStore) ClaimIssuer(ctx context.Context) (func(), error) {
	conn, err := s.db.Acquire(ctx)
	if err != nil {
		return nil, mapError(ErrMsgFailedToAcquireLock, err)
	}

	var held bool
	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, advisoryLockChainIssuer).Scan(&held); err != nil {
		conn.Release()
		return nil, mapError(ErrMsgFailedToAcquireLock, err)
	}
	if !held {
		conn.Release()
		return nil, fmt.Errorf("%w: %s", domain.ErrConcurrencyConflict, ErrMsgIssuerHeld)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), issuerUnlockTimeout)
		defer cancel()
		if _, err := conn.Exec(ctx, `SELECT pg_advisory_unlock($1)`, advisoryLockChainIssuer); err != nil {
			// the session lock dies with the connection
			logger.FromContext(ctx).Warn("Failed to release chain issuer lock", "error", err)
			_ = conn.Conn().Close(ctx)
		}
		conn.Release()
	}, nil
}

// Load reads every segment and link. Returns nil when no segment exists.
func (s *HashChainStore) Load(ctx context.Context) (*domain.ChainState, error) {
	rows, err := s.db.Query(ctx, `
		SELECT segment_index, start_index, length, final_hash, created_at
		FROM hash_chain_segments
		ORDER BY segment_index`)
	if err != nil {
		return nil, mapError(ErrMsgFailedToLoadChain, err)
	}
	segments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ChainSegment, error) {
		var seg domain.ChainSegment
		err := row.Scan(&seg.Index, &seg.Start, &seg.Length, &seg.FinalHash, &seg.CreatedAt)
		return seg, err
	})
	if err != nil {
		return nil, mapError(ErrMsgFailedToLoadChain, err)
	}
	if len(segments) == 0 {
		return nil, nil
	}

	rows, err = s.db.Query(ctx, `SELECT hash FROM hash_chain_links ORDER BY order_index`)
	if err != nil {
		return nil, mapError(ErrMsgFailedToLoadChain, err)
	}
	links, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, mapError(ErrMsgFailedToLoadChain, err)
	}

	last := segments[len(segments)-1]
	if int64(len(links)) != last.End() {
		return nil, fmt.Errorf("%w: %d links stored, segments cover %d", domain.ErrChainMismatch, len(links), last.End())
	}

	state := &domain.ChainState{Links: links, Segments: segments}
	if err := s.db.QueryRow(ctx, `SELECT next_index FROM hash_chain_state WHERE id`).Scan(&state.Next); err != nil {
		return nil, mapError(ErrMsgFailedToLoadChain, err)
	}
	return state, nil
}

// AppendSegment inserts a segment and its links in one transaction. The
// advisory lock plus the start check reject a concurrent appender.
func (s *HashChainStore) AppendSegment(ctx context.Context, seg domain.ChainSegment, links []string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return mapError(ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if err := advisoryXactLock(ctx, tx, advisoryLockHashChain); err != nil {
		return err
	}

	var end int64
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(order_index) + 1, 0) FROM hash_chain_links`).Scan(&end); err != nil {
		return mapError(ErrMsgFailedToAppendSegment, err)
	}
	if end != seg.Start {
		return fmt.Errorf("%w: %s (start %d, end %d)", domain.ErrConcurrencyConflict, ErrMsgSegmentOverlap, seg.Start, end)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO hash_chain_segments (segment_index, start_index, length, final_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`, seg.Index, seg.Start, seg.Length, seg.FinalHash, seg.CreatedAt)
	if err != nil {
		return mapError(ErrMsgFailedToAppendSegment, err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"hash_chain_links"},
		[]string{"order_index", "segment_index", "reverse_index", "hash", "checksum"},
		pgx.CopyFromSlice(len(links), func(i int) ([]any, error) {
			return []any{seg.Start + int64(i), seg.Index, len(links) - 1 - i, links[i], hashchain.HashLink(links[i])}, nil
		}),
	)
	if err != nil {
		return mapError(ErrMsgFailedToCopyLinks, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// SaveNext records the issued pointer; it never moves backwards
func (s *HashChainStore) SaveNext(ctx context.Context, next int64) error {
	_, err := s.db.Exec(ctx, `
		UPDATE hash_chain_state
		SET next_index = GREATEST(next_index, $1), updated_at = NOW()
		WHERE id`, next)
	return mapError(ErrMsgFailedToSaveNext, err)
}
