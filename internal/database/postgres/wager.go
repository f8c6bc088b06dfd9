package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/repository"
)

const wagerColumns = `id, user_id, game_name, game_id, bet_amount, balance_before, target_multiplier,
	currency, status, won_amount, server_seed, client_seed, nonce,
	chain_order_index, chain_hash, chain_prev, created_at, settled_at`

const roundColumns = `game_id, start_time, end_time, status, server_seed, server_seed_hash,
	client_seed, nonce, result, chain_order_index, chain_hash, chain_prev`

// WagerRepository implements repository.Wager for PostgreSQL
type WagerRepository struct {
	db *pgxpool.Pool
}

// NewWagerRepository creates a new WagerRepository
func NewWagerRepository(db *pgxpool.Pool) *WagerRepository {
	return &WagerRepository{db: db}
}

var _ repository.Wager = (*WagerRepository)(nil)

// GetWager retrieves a wager by ID. Returns nil when it does not exist.
func (r *WagerRepository) GetWager(ctx context.Context, id uuid.UUID) (*domain.Wager, error) {
	row := r.db.QueryRow(ctx, `SELECT `+wagerColumns+` FROM wagers WHERE id = $1`, id)
	w, err := scanWager(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(ErrMsgFailedToGetWager, err)
	}
	return w, nil
}

// GetUserWagers lists a user's most recent wagers
func (r *WagerRepository) GetUserWagers(ctx context.Context, userID string, limit int) ([]domain.Wager, error) {
	if limit <= 0 {
		limit = DefaultWagerLimit
	}
	if limit > MaxWagerLimit {
		limit = MaxWagerLimit
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+wagerColumns+`
		FROM wagers
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, mapError(ErrMsgFailedToListWagers, err)
	}
	return collectWagers(rows)
}

// GetRoundWagersForUser lists one user's wagers on a group round
func (r *WagerRepository) GetRoundWagersForUser(ctx context.Context, gameID, userID string) ([]domain.Wager, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+wagerColumns+`
		FROM wagers
		WHERE game_id = $1 AND user_id = $2
		ORDER BY created_at, id`, gameID, userID)
	if err != nil {
		return nil, mapError(ErrMsgFailedToListWagers, err)
	}
	return collectWagers(rows)
}

// GetGroupRound retrieves a round by game ID. Returns nil when it does not exist.
func (r *WagerRepository) GetGroupRound(ctx context.Context, gameID string) (*domain.GroupRound, error) {
	row := r.db.QueryRow(ctx, `SELECT `+roundColumns+` FROM group_rounds WHERE game_id = $1`, gameID)
	return getRound(row)
}

// GetOpenGroupRound returns the pending round still accepting wagers, or nil
func (r *WagerRepository) GetOpenGroupRound(ctx context.Context, now time.Time) (*domain.GroupRound, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+roundColumns+`
		FROM group_rounds
		WHERE status = 'pending' AND end_time > $1
		ORDER BY end_time DESC
		LIMIT 1`, now)
	return getRound(row)
}

// GetExpiredPendingRounds lists pending rounds whose deadline has passed
func (r *WagerRepository) GetExpiredPendingRounds(ctx context.Context, now time.Time) ([]domain.GroupRound, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+roundColumns+`
		FROM group_rounds
		WHERE status = 'pending' AND end_time <= $1
		ORDER BY end_time`, now)
	if err != nil {
		return nil, mapError(ErrMsgFailedToGetRound, err)
	}
	defer rows.Close()

	var rounds []domain.GroupRound
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, mapError(ErrMsgFailedToGetRound, err)
		}
		rounds = append(rounds, *round)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ErrMsgFailedToGetRound, err)
	}
	return rounds, nil
}

// GetPlayerStats returns accumulated stats with the most recent history
// entries. Returns nil when the player has never settled a wager.
func (r *WagerRepository) GetPlayerStats(ctx context.Context, userID string, historyLimit int) (*domain.PlayerStats, error) {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}

	stats := domain.PlayerStats{UserID: userID}
	err := r.db.QueryRow(ctx, `
		SELECT total_base_wins, total_bonus_wins, total_base_win_amount, total_bonus_win_amount,
		       total_bet_amount, bonuses_triggered, bonus_retriggers, rounds_played
		FROM player_stats
		WHERE user_id = $1`, userID).Scan(
		&stats.TotalBaseWins, &stats.TotalBonusWins, &stats.TotalBaseWinAmount, &stats.TotalBonusWinAmount,
		&stats.TotalBetAmount, &stats.BonusesTriggered, &stats.BonusRetriggers, &stats.RoundsPlayed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(ErrMsgFailedToGetStats, err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT server_seed, client_seed, nonce, bet_amount, win_amount, created_at
		FROM game_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, userID, historyLimit)
	if err != nil {
		return nil, mapError(ErrMsgFailedToGetStats, err)
	}
	defer rows.Close()

	for rows.Next() {
		var h domain.GameHistory
		var nonce int64
		if err := rows.Scan(&h.ServerSeed, &h.ClientSeed, &nonce, &h.BetAmount, &h.WinAmount, &h.Timestamp); err != nil {
			return nil, mapError(ErrMsgFailedToGetStats, err)
		}
		if nonce < 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrPersistence, ErrMsgNegativeNonce)
		}
		h.Nonce = uint64(nonce)
		stats.GameHistory = append(stats.GameHistory, h)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ErrMsgFailedToGetStats, err)
	}
	return &stats, nil
}

// GetBalance returns a user's balances, or nil when the user has none
func (r *WagerRepository) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	b := domain.Balance{UserID: userID}
	err := r.db.QueryRow(ctx, `
		SELECT cash, crypto, bonus, stake_pool, wager_pool, affiliate_pool
		FROM user_balances
		WHERE user_id = $1`, userID).Scan(&b.Cash, &b.Crypto, &b.Bonus, &b.StakePool, &b.WagerPool, &b.AffiliatePool)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(ErrMsgFailedToGetBalance, err)
	}
	return &b, nil
}

// SeedBalance sets a sub-balance, creating the user's row when needed.
// Used by operator tooling and tests.
func (r *WagerRepository) SeedBalance(ctx context.Context, userID string, sb domain.SubBalance, amount decimal.Decimal) error {
	col, err := balanceColumn(sb)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, fmt.Sprintf(`
		INSERT INTO user_balances (user_id, %[1]s) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET %[1]s = EXCLUDED.%[1]s, updated_at = NOW()`, col), userID, amount)
	return mapError(ErrMsgFailedToSeedBalance, err)
}

// BeginWagerTx starts a transaction and returns a WagerTx for settlement
func (r *WagerRepository) BeginWagerTx(ctx context.Context) (repository.WagerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, mapError(ErrMsgFailedToBeginWagerTx, err)
	}
	return &wagerTx{tx: tx}, nil
}

// wagerTx implements repository.WagerTx
type wagerTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *wagerTx) Commit(ctx context.Context) error {
	return mapError(ErrMsgFailedToCommitTransaction, t.tx.Commit(ctx))
}

// Rollback rolls back the transaction. Rolling back after Commit reports
// domain.ErrTxClosed.
func (t *wagerTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return domain.ErrTxClosed
	}
	return err
}

// DebitBalance subtracts amount only when the sub-balance covers it, returning
// the balance before the debit
func (t *wagerTx) DebitBalance(ctx context.Context, userID string, sb domain.SubBalance, amount decimal.Decimal) (decimal.Decimal, error) {
	col, err := balanceColumn(sb)
	if err != nil {
		return decimal.Zero, err
	}

	var before decimal.Decimal
	err = t.tx.QueryRow(ctx, fmt.Sprintf(`
		UPDATE user_balances
		SET %[1]s = %[1]s - $2, updated_at = NOW()
		WHERE user_id = $1 AND %[1]s >= $2
		RETURNING %[1]s + $2`, col), userID, amount).Scan(&before)
	if err == nil {
		return before, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, mapError(ErrMsgFailedToDebit, err)
	}

	var exists bool
	if err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_balances WHERE user_id = $1)`, userID).Scan(&exists); err != nil {
		return decimal.Zero, mapError(ErrMsgFailedToDebit, err)
	}
	if !exists {
		return decimal.Zero, domain.ErrBalanceNotFound
	}
	return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrInsufficientBalance, col)
}

// CreditBalance adds amount to a sub-balance, creating the row if needed
func (t *wagerTx) CreditBalance(ctx context.Context, userID string, sb domain.SubBalance, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}
	col, err := balanceColumn(sb)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx, fmt.Sprintf(`
		INSERT INTO user_balances (user_id, %[1]s) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET %[1]s = user_balances.%[1]s + EXCLUDED.%[1]s, updated_at = NOW()`, col),
		userID, amount)
	return mapError(ErrMsgFailedToCredit, err)
}

// NextNonce increments and returns the player's nonce; the first is 1
func (t *wagerTx) NextNonce(ctx context.Context, userID string) (uint64, error) {
	var nonce int64
	err := t.tx.QueryRow(ctx, `
		INSERT INTO player_stats (user_id, nonce) VALUES ($1, 1)
		ON CONFLICT (user_id) DO UPDATE SET nonce = player_stats.nonce + 1, updated_at = NOW()
		RETURNING nonce`, userID).Scan(&nonce)
	if err != nil {
		return 0, mapError(ErrMsgFailedToAdvanceNonce, err)
	}
	if nonce < 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrPersistence, ErrMsgNegativeNonce)
	}
	return uint64(nonce), nil
}

// InsertWager stores a new wager row
func (t *wagerTx) InsertWager(ctx context.Context, w *domain.Wager) error {
	var serverSeed, clientSeed *string
	var nonce *int64
	if w.Seeds != nil {
		serverSeed, clientSeed = &w.Seeds.ServerSeed, &w.Seeds.ClientSeed
		n := int64(w.Seeds.Nonce)
		nonce = &n
	}
	chainIdx, chainHash, chainPrev := linkColumns(w.ChainLink)

	_, err := t.tx.Exec(ctx, `
		INSERT INTO wagers (`+wagerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		w.ID, w.UserID, string(w.GameName), w.GameID, w.BetAmount, w.BalanceBefore, w.TargetMultiplier,
		string(w.Currency), string(w.Status), w.WonAmount, serverSeed, clientSeed, nonce,
		chainIdx, chainHash, chainPrev, w.CreatedAt, w.SettledAt,
	)
	return mapError(ErrMsgFailedToInsertWager, err)
}

// SettleWagerIfPending moves a pending wager to a terminal status. Returns
// rows affected; zero means it was already settled.
func (t *wagerTx) SettleWagerIfPending(ctx context.Context, id uuid.UUID, status domain.WagerStatus, won decimal.Decimal, settledAt time.Time) (int64, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE wagers
		SET status = $2, won_amount = $3, settled_at = $4
		WHERE id = $1 AND status = 'pending'`, id, string(status), won, settledAt)
	if err != nil {
		return 0, mapError(ErrMsgFailedToSettleWager, err)
	}
	return tag.RowsAffected(), nil
}

// GetPendingRoundWagers locks and returns a round's pending wagers
func (t *wagerTx) GetPendingRoundWagers(ctx context.Context, gameID string) ([]domain.Wager, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT `+wagerColumns+`
		FROM wagers
		WHERE game_id = $1 AND status = 'pending'
		ORDER BY created_at, id
		FOR UPDATE`, gameID)
	if err != nil {
		return nil, mapError(ErrMsgFailedToListWagers, err)
	}
	return collectWagers(rows)
}

// RecordStats adds one settled wager to the player's totals and history
func (t *wagerTx) RecordStats(ctx context.Context, d domain.StatsDelta) error {
	res := d.Result
	baseWins, bonusWins := int64(res.BaseWinCount), int64(res.BonusWinCount)
	baseAmount, bonusAmount := res.BaseWinAmount, res.BonusWinAmount
	// a group round is played once with a unit bet; scale its amounts to this wager
	if !res.BetAmount.IsZero() && !res.BetAmount.Equal(d.Bet) {
		scale := d.Bet.Div(res.BetAmount)
		baseAmount, bonusAmount = baseAmount.Mul(scale), bonusAmount.Mul(scale)
	}

	_, err := t.tx.Exec(ctx, `
		INSERT INTO player_stats (user_id, total_base_wins, total_bonus_wins, total_base_win_amount,
			total_bonus_win_amount, total_bet_amount, bonuses_triggered, bonus_retriggers, rounds_played)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
		ON CONFLICT (user_id) DO UPDATE SET
			total_base_wins        = player_stats.total_base_wins + EXCLUDED.total_base_wins,
			total_bonus_wins       = player_stats.total_bonus_wins + EXCLUDED.total_bonus_wins,
			total_base_win_amount  = player_stats.total_base_win_amount + EXCLUDED.total_base_win_amount,
			total_bonus_win_amount = player_stats.total_bonus_win_amount + EXCLUDED.total_bonus_win_amount,
			total_bet_amount       = player_stats.total_bet_amount + EXCLUDED.total_bet_amount,
			bonuses_triggered      = player_stats.bonuses_triggered + EXCLUDED.bonuses_triggered,
			bonus_retriggers       = player_stats.bonus_retriggers + EXCLUDED.bonus_retriggers,
			rounds_played          = player_stats.rounds_played + 1,
			updated_at             = NOW()`,
		d.UserID, baseWins, bonusWins, baseAmount, bonusAmount, d.Bet,
		int64(res.BonusesTriggered), int64(res.BonusRetriggerCount),
	)
	if err != nil {
		return mapError(ErrMsgFailedToRecordStats, err)
	}

	h := d.History
	_, err = t.tx.Exec(ctx, `
		INSERT INTO game_history (user_id, server_seed, client_seed, nonce, bet_amount, win_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.UserID, h.ServerSeed, h.ClientSeed, int64(h.Nonce), h.BetAmount, h.WinAmount, h.Timestamp)
	return mapError(ErrMsgFailedToRecordStats, err)
}

// LockRoundCreation serializes "find or create the open round" across instances
func (t *wagerTx) LockRoundCreation(ctx context.Context) error {
	return advisoryXactLock(ctx, t.tx, advisoryLockGroupRound)
}

// GetOpenGroupRoundForShare returns the open round under a share lock, so it
// cannot complete while this transaction attaches a wager to it
func (t *wagerTx) GetOpenGroupRoundForShare(ctx context.Context, now time.Time) (*domain.GroupRound, error) {
	row := t.tx.QueryRow(ctx, `
		SELECT `+roundColumns+`
		FROM group_rounds
		WHERE status = 'pending' AND end_time > $1
		ORDER BY end_time DESC
		LIMIT 1
		FOR SHARE`, now)
	return getRound(row)
}

// CreateGroupRound inserts a pending round with its committed seeds
func (t *wagerTx) CreateGroupRound(ctx context.Context, round *domain.GroupRound) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO group_rounds (game_id, start_time, end_time, status, server_seed, server_seed_hash, client_seed, nonce)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		round.GameID, round.StartTime, round.EndTime, string(round.Status),
		round.Seeds.ServerSeed, round.ServerSeedHash, round.Seeds.ClientSeed, int64(round.Seeds.Nonce))
	return mapError(ErrMsgFailedToCreateRound, err)
}

// UpdateGroupRoundStatusIfMatches is the compare-and-swap guarding settlement
func (t *wagerTx) UpdateGroupRoundStatusIfMatches(ctx context.Context, gameID string, expected, next domain.GroupRoundStatus) (int64, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE group_rounds SET status = $3
		WHERE game_id = $1 AND status = $2`, gameID, string(expected), string(next))
	if err != nil {
		return 0, mapError(ErrMsgFailedToUpdateRound, err)
	}
	return tag.RowsAffected(), nil
}

// SaveGroupRoundResult stores the engine output and audit link of a round
func (t *wagerTx) SaveGroupRoundResult(ctx context.Context, gameID string, result domain.RoundResult, link *domain.ChainLink, completedAt time.Time) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeResult, err)
	}
	chainIdx, chainHash, chainPrev := linkColumns(link)
	_, err = t.tx.Exec(ctx, `
		UPDATE group_rounds
		SET result = $2, chain_order_index = $3, chain_hash = $4, chain_prev = $5, completed_at = $6
		WHERE game_id = $1`, gameID, data, chainIdx, chainHash, chainPrev, completedAt)
	return mapError(ErrMsgFailedToUpdateRound, err)
}

// ---- scanning ----

func linkColumns(link *domain.ChainLink) (*int64, *string, *string) {
	if link == nil {
		return nil, nil, nil
	}
	idx := link.OrderIndex
	return &idx, &link.Hash, &link.Prev
}

func scanLink(idx *int64, hash, prev *string) *domain.ChainLink {
	if idx == nil || hash == nil {
		return nil
	}
	link := &domain.ChainLink{OrderIndex: *idx, Hash: *hash}
	if prev != nil {
		link.Prev = *prev
	}
	return link
}

func scanWager(row pgx.Row) (*domain.Wager, error) {
	var (
		w                      domain.Wager
		gameName, currency     string
		status                 string
		serverSeed, clientSeed *string
		nonce, chainIdx        *int64
		chainHash, chainPrev   *string
	)
	err := row.Scan(
		&w.ID, &w.UserID, &gameName, &w.GameID, &w.BetAmount, &w.BalanceBefore, &w.TargetMultiplier,
		&currency, &status, &w.WonAmount, &serverSeed, &clientSeed, &nonce,
		&chainIdx, &chainHash, &chainPrev, &w.CreatedAt, &w.SettledAt,
	)
	if err != nil {
		return nil, err
	}
	w.GameName = domain.GameType(gameName)
	w.Currency = domain.Currency(currency)
	w.Status = domain.WagerStatus(status)

	if serverSeed != nil && clientSeed != nil {
		n, err := nullableUint(nonce)
		if err != nil {
			return nil, err
		}
		seeds := &domain.SeedTriple{ServerSeed: *serverSeed, ClientSeed: *clientSeed}
		if n != nil {
			seeds.Nonce = *n
		}
		w.Seeds = seeds
	}
	w.ChainLink = scanLink(chainIdx, chainHash, chainPrev)
	return &w, nil
}

func collectWagers(rows pgx.Rows) ([]domain.Wager, error) {
	defer rows.Close()
	var wagers []domain.Wager
	for rows.Next() {
		w, err := scanWager(rows)
		if err != nil {
			return nil, mapError(ErrMsgFailedToListWagers, err)
		}
		wagers = append(wagers, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ErrMsgFailedToListWagers, err)
	}
	return wagers, nil
}

func scanRound(row pgx.Row) (*domain.GroupRound, error) {
	var (
		r                    domain.GroupRound
		status               string
		nonce                int64
		result               []byte
		chainIdx             *int64
		chainHash, chainPrev *string
	)
	err := row.Scan(
		&r.GameID, &r.StartTime, &r.EndTime, &status, &r.Seeds.ServerSeed, &r.ServerSeedHash,
		&r.Seeds.ClientSeed, &nonce, &result, &chainIdx, &chainHash, &chainPrev,
	)
	if err != nil {
		return nil, err
	}
	if nonce < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrPersistence, ErrMsgNegativeNonce)
	}
	r.Status = domain.GroupRoundStatus(status)
	r.Seeds.Nonce = uint64(nonce)
	if len(result) > 0 {
		var res domain.RoundResult
		if err := json.Unmarshal(result, &res); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeResult, err)
		}
		r.Result = &res
	}
	r.ChainLink = scanLink(chainIdx, chainHash, chainPrev)
	return &r, nil
}

func getRound(row pgx.Row) (*domain.GroupRound, error) {
	round, err := scanRound(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(ErrMsgFailedToGetRound, err)
	}
	return round, nil
}
