package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

// Wager defines the data access required by the wager service
type Wager interface {
	GetWager(ctx context.Context, id uuid.UUID) (*domain.Wager, error)
	GetUserWagers(ctx context.Context, userID string, limit int) ([]domain.Wager, error)
	GetRoundWagersForUser(ctx context.Context, gameID, userID string) ([]domain.Wager, error)
	GetGroupRound(ctx context.Context, gameID string) (*domain.GroupRound, error)
	GetOpenGroupRound(ctx context.Context, now time.Time) (*domain.GroupRound, error)
	GetExpiredPendingRounds(ctx context.Context, now time.Time) ([]domain.GroupRound, error)
	GetPlayerStats(ctx context.Context, userID string, historyLimit int) (*domain.PlayerStats, error)
	GetBalance(ctx context.Context, userID string) (*domain.Balance, error)

	// Transaction support
	BeginWagerTx(ctx context.Context) (WagerTx, error)
}

// WagerTx extends Tx with the operations that make up one settlement.
// Everything done through a WagerTx commits or rolls back together.
type WagerTx interface {
	Tx // Commit, Rollback

	// Balance operations. DebitBalance fails with domain.ErrInsufficientBalance
	// (or domain.ErrBalanceNotFound) and changes nothing when funds are short.
	DebitBalance(ctx context.Context, userID string, sb domain.SubBalance, amount decimal.Decimal) (before decimal.Decimal, err error)
	CreditBalance(ctx context.Context, userID string, sb domain.SubBalance, amount decimal.Decimal) error

	// NextNonce increments and returns the player's seed nonce
	NextNonce(ctx context.Context, userID string) (uint64, error)

	// Wager operations within transaction
	InsertWager(ctx context.Context, w *domain.Wager) error
	SettleWagerIfPending(ctx context.Context, id uuid.UUID, status domain.WagerStatus, won decimal.Decimal, settledAt time.Time) (int64, error)
	GetPendingRoundWagers(ctx context.Context, gameID string) ([]domain.Wager, error)
	RecordStats(ctx context.Context, delta domain.StatsDelta) error

	// Group round operations within transaction
	LockRoundCreation(ctx context.Context) error
	GetOpenGroupRoundForShare(ctx context.Context, now time.Time) (*domain.GroupRound, error)
	CreateGroupRound(ctx context.Context, round *domain.GroupRound) error
	UpdateGroupRoundStatusIfMatches(ctx context.Context, gameID string, expected, next domain.GroupRoundStatus) (int64, error)
	SaveGroupRoundResult(ctx context.Context, gameID string, result domain.RoundResult, link *domain.ChainLink, completedAt time.Time) error
}
