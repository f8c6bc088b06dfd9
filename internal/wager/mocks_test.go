package wager

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/repository"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetWager(ctx context.Context, id uuid.UUID) (*domain.Wager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wager), args.Error(1)
}

func (m *MockRepository) GetUserWagers(ctx context.Context, userID string, limit int) ([]domain.Wager, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wager), args.Error(1)
}

func (m *MockRepository) GetRoundWagersForUser(ctx context.Context, gameID, userID string) ([]domain.Wager, error) {
	args := m.Called(ctx, gameID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wager), args.Error(1)
}

func (m *MockRepository) GetGroupRound(ctx context.Context, gameID string) (*domain.GroupRound, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupRound), args.Error(1)
}

func (m *MockRepository) GetOpenGroupRound(ctx context.Context, now time.Time) (*domain.GroupRound, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupRound), args.Error(1)
}

func (m *MockRepository) GetExpiredPendingRounds(ctx context.Context, now time.Time) ([]domain.GroupRound, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupRound), args.Error(1)
}

func (m *MockRepository) GetPlayerStats(ctx context.Context, userID string, historyLimit int) (*domain.PlayerStats, error) {
	args := m.Called(ctx, userID, historyLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerStats), args.Error(1)
}

func (m *MockRepository) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockRepository) BeginWagerTx(ctx context.Context) (repository.WagerTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.WagerTx), args.Error(1)
}

// MockWagerTx
type MockWagerTx struct {
	mock.Mock
}

func (m *MockWagerTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWagerTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWagerTx) DebitBalance(ctx context.Context, userID string, sb domain.SubBalance, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, sb, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWagerTx) CreditBalance(ctx context.Context, userID string, sb domain.SubBalance, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, sb, amount)
	return args.Error(0)
}

func (m *MockWagerTx) NextNonce(ctx context.Context, userID string) (uint64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockWagerTx) InsertWager(ctx context.Context, w *domain.Wager) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWagerTx) SettleWagerIfPending(ctx context.Context, id uuid.UUID, status domain.WagerStatus, won decimal.Decimal, settledAt time.Time) (int64, error) {
	args := m.Called(ctx, id, status, won, settledAt)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockWagerTx) GetPendingRoundWagers(ctx context.Context, gameID string) ([]domain.Wager, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wager), args.Error(1)
}

func (m *MockWagerTx) RecordStats(ctx context.Context, delta domain.StatsDelta) error {
	args := m.Called(ctx, delta)
	return args.Error(0)
}

func (m *MockWagerTx) LockRoundCreation(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWagerTx) GetOpenGroupRoundForShare(ctx context.Context, now time.Time) (*domain.GroupRound, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupRound), args.Error(1)
}

func (m *MockWagerTx) CreateGroupRound(ctx context.Context, round *domain.GroupRound) error {
	args := m.Called(ctx, round)
	return args.Error(0)
}

func (m *MockWagerTx) UpdateGroupRoundStatusIfMatches(ctx context.Context, gameID string, expected, next domain.GroupRoundStatus) (int64, error) {
	args := m.Called(ctx, gameID, expected, next)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockWagerTx) SaveGroupRoundResult(ctx context.Context, gameID string, result domain.RoundResult, link *domain.ChainLink, completedAt time.Time) error {
	args := m.Called(ctx, gameID, result, link, completedAt)
	return args.Error(0)
}

// MockChain
type MockChain struct {
	mock.Mock
}

func (m *MockChain) Next(ctx context.Context) (domain.ChainLink, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ChainLink), args.Error(1)
}

// MockTargets
type MockTargets struct {
	mock.Mock
}

func (m *MockTargets) GetDefaultTarget(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockResilientPublisher
type MockResilientPublisher struct {
	mock.Mock
}

func (m *MockResilientPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}
