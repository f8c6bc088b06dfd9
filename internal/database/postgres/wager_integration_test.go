package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newSettledWager(userID, gameID string, bet, won string, status domain.WagerStatus) *domain.Wager {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Wager{
		ID:               uuid.New(),
		UserID:           userID,
		GameName:         domain.GameTypeSolo,
		GameID:           gameID,
		BetAmount:        dec(bet),
		BalanceBefore:    dec("100"),
		TargetMultiplier: decimal.NewFromInt(1),
		Currency:         domain.CurrencyUSD,
		Status:           status,
		WonAmount:        dec(won),
		Seeds:            &domain.SeedTriple{ServerSeed: "server", ClientSeed: "client", Nonce: 7},
		ChainLink:        &domain.ChainLink{OrderIndex: 3, Hash: "h3", Prev: "h2"},
		CreatedAt:        now,
		SettledAt:        &now,
	}
}

func TestWagerRepository_DebitIsConditional(t *testing.T) {
	pool := setupIntegrationTest(t)
	ctx := context.Background()
	repo := NewWagerRepository(pool)
	require.NoError(t, repo.SeedBalance(ctx, "alice", domain.SubBalanceCash, dec("100")))

	tx, err := repo.BeginWagerTx(ctx)
	require.NoError(t, err)
	before, err := tx.DebitBalance(ctx, "alice", domain.SubBalanceCash, dec("30"))
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(before))

	_, err = tx.DebitBalance(ctx, "alice", domain.SubBalanceCash, dec("80"))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	require.NoError(t, tx.Commit(ctx))

	bal, err := repo.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, dec("70").Equal(bal.Cash), "cash %s", bal.Cash)

	tx, err = repo.BeginWagerTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	_, err = tx.DebitBalance(ctx, "nobody", domain.SubBalanceCash, dec("1"))
	assert.ErrorIs(t, err, domain.ErrBalanceNotFound)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestWagerRepository_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	pool := setupIntegrationTest(t)
	ctx := context.Background()
	repo := NewWagerRepository(pool)
	require.NoError(t, repo.SeedBalance(ctx, "bob", domain.SubBalanceCrypto, dec("100")))

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := repo.BeginWagerTx(ctx)
			if !assert.NoError(t, err) {
				return
			}
			defer repository.SafeRollback(ctx, tx)
			if _, err := tx.DebitBalance(ctx, "bob", domain.SubBalanceCrypto, dec("10")); err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
				return
			}
			if assert.NoError(t, tx.Commit(ctx)) {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	bal, err := repo.GetBalance(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, bal.Crypto.IsZero(), "crypto %s", bal.Crypto)
}

func TestWagerRepository_RollbackLeavesNoTrace(t *testing.T) {
	pool := setupIntegrationTest(t)
	ctx := context.Background()
	repo := NewWagerRepository(pool)
	require.NoError(t, repo.SeedBalance(ctx, "carol", domain.SubBalanceCash, dec("50")))

	w := newSettledWager("carol", "solo-1", "10", "0", domain.WagerStatusLost)
	tx, err := repo.BeginWagerTx(ctx)
	require.NoError(t, err)
	_, err = tx.DebitBalance(ctx, "carol", domain.SubBalanceCash, dec("10"))
	require.NoError(t, err)
	require.NoError(t, tx.InsertWager(ctx, w))
	require.NoError(t, tx.Rollback(ctx))

	got, err := repo.GetWager(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	bal, err := repo.GetBalance(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(bal.Cash))
}

func TestWagerRepository_InsertAndRead(t *testing.T) {
	pool := setupIntegrationTest(t)
	ctx := context.Background()
	repo := NewWagerRepository(pool)

	w := newSettledWager("dave", "solo-2", "10", "25.5", domain.WagerStatusWon)
	tx, err := repo.BeginWagerTx(ctx)
	require.NoError(t, err)
	nonce, err := tx.NextNonce(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)
	nonce, err = tx.NextNonce(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), nonce)
	require.NoError(t, tx.InsertWager(ctx, w))
	require.NoError(t, tx.Commit(ctx))

	got, err := repo.GetWager(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.WagerStatusWon, got.Status)
	assert.True(t, dec("25.5").Equal(got.WonAmount))
	assert.Equal(t, w.Seeds, got.Seeds)
	assert.Equal(t, w.ChainLink, got.ChainLink)

	list, err := repo.GetUserWagers(ctx, "dave", 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestWagerRepository_GroupRoundLifecycle(t *testing.T) {
	pool := setupIntegrationTest(t)
	ctx := context.Background()
	repo := NewWagerRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	round := &domain.GroupRound{
		GameID:         "group-1",
		StartTime:      now,
		EndTime:        now.Add(30 * time.Second),
		Status:         domain.GroupRoundPending,
		Seeds:          domain.SeedTriple{ServerSeed: "s", ClientSeed: "c", Nonce: 0},
		ServerSeedHash: "hash",
	}
	pending := newSettledWager("erin", "group-1", "4", "0", domain.WagerStatusPending)
	pending.GameName = domain.GameTypeGroup
	pending.Seeds, pending.ChainLink, pending.SettledAt = nil, nil, nil

	tx, err := repo.BeginWagerTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.LockRoundCreation(ctx))
	open, err := tx.GetOpenGroupRoundForShare(ctx, now)
	require.NoError(t, err)
	assert.Nil(t, open)
	require.NoError(t, tx.CreateGroupRound(ctx, round))
	require.NoError(t, tx.InsertWager(ctx, pending))
	require.NoError(t, tx.Commit(ctx))

	open, err = repo.GetOpenGroupRound(ctx, now)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, "group-1", open.GameID)

	expired, err := repo.GetExpiredPendingRounds(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, expired, 1)

	result := domain.RoundResult{BetAmount: decimal.NewFromInt(1), TotalPayout: dec("2.5"), PayoutMultiplier: dec("2.5"), BaseWinCount: 1}
	tx, err = repo.BeginWagerTx(ctx)
	require.NoError(t, err)
	n, err := tx.UpdateGroupRoundStatusIfMatches(ctx, "group-1", domain.GroupRoundPending, domain.GroupRoundCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	wagers, err := tx.GetPendingRoundWagers(ctx, "group-1")
	require.NoError(t, err)
	require.Len(t, wagers, 1)
	n, err = tx.SettleWagerIfPending(ctx, wagers[0].ID, domain.WagerStatusWon, dec("10"), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, tx.SaveGroupRoundResult(ctx, "group-1", result, &domain.ChainLink{OrderIndex: 5, Hash: "h5", Prev: "h4"}, now))
	require.NoError(t, tx.Commit(ctx))

	tx, err = repo.BeginWagerTx(ctx)
	require.NoError(t, err)
	n, err = tx.UpdateGroupRoundStatusIfMatches(ctx, "group-1", domain.GroupRoundPending, domain.GroupRoundCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "second finalizer loses the compare-and-swap")
	repository.SafeRollback(ctx, tx)

	stored, err := repo.GetGroupRound(ctx, "group-1")
	require.NoError(t, err)
	assert.Equal(t, domain.GroupRoundCompleted, stored.Status)
	require.NotNil(t, stored.Result)
	assert.True(t, dec("2.5").Equal(stored.Result.PayoutMultiplier))
	assert.Equal(t, int64(5), stored.ChainLink.OrderIndex)

	mine, err := repo.GetRoundWagersForUser(ctx, "group-1", "erin")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.WagerStatusWon, mine[0].Status)
}

func TestWagerRepository_RecordStats(t *testing.T) {
	pool := setupIntegrationTest(t)
	ctx := context.Background()
	repo := NewWagerRepository(pool)
	ts := time.Now().UTC().Truncate(time.Microsecond)

	tx, err := repo.BeginWagerTx(ctx)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		require.NoError(t, tx.RecordStats(ctx, domain.StatsDelta{
			UserID: "frank",
			Result: domain.RoundResult{
				BetAmount: dec("5"), BaseWinCount: 1, BaseWinAmount: dec("5"),
				BonusesTriggered: 1, BonusWinCount: 2, BonusWinAmount: dec("3"), BonusRetriggerCount: 1,
			},
			Bet:     dec("5"),
			Won:     dec("8"),
			History: domain.GameHistory{ServerSeed: "s", ClientSeed: "c", Nonce: uint64(i), BetAmount: dec("5"), WinAmount: dec("8"), Timestamp: ts.Add(time.Duration(i) * time.Second)},
		}))
	}
	require.NoError(t, tx.Commit(ctx))

	stats, err := repo.GetPlayerStats(ctx, "frank", 10)
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, int64(2), stats.RoundsPlayed)
	assert.Equal(t, int64(2), stats.TotalBaseWins)
	assert.Equal(t, int64(4), stats.TotalBonusWins)
	assert.Equal(t, int64(2), stats.BonusRetriggers)
	assert.True(t, dec("10").Equal(stats.TotalBetAmount))
	assert.True(t, dec("160").Equal(stats.RTP()), "rtp %s", stats.RTP())
	require.Len(t, stats.GameHistory, 2)
	assert.Equal(t, uint64(1), stats.GameHistory[0].Nonce, "newest first")

	missing, err := repo.GetPlayerStats(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
