// Package wager settles wagers: a solo wager is debited, played and paid in a
// single transaction; group wagers share one round that is closed exactly once
// after its deadline.
package wager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/osse101/ProvablyFair_Go/internal/concurrency"
	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/outcome"
	"github.com/osse101/ProvablyFair_Go/internal/repository"
)

// Service defines the interface for wager operations
type Service interface {
	// PlaceWager dispatches on req.GameType
	PlaceWager(ctx context.Context, req domain.WagerRequest) (*domain.WagerOutcome, error)
	PlaceSoloWager(ctx context.Context, req domain.WagerRequest) (*domain.WagerOutcome, error)
	PlaceGroupWager(ctx context.Context, req domain.WagerRequest) (*domain.WagerOutcome, error)

	// SettleGroupRound closes an expired round. It returns (nil, nil) when
	// the round was already completed.
	SettleGroupRound(ctx context.Context, gameID string) (*domain.GroupRound, error)

	GetGroupRoundStatus(ctx context.Context) (*domain.GroupRoundStatusView, error)
	GetGroupRoundResult(ctx context.Context, gameID, userID string) (*domain.GroupRoundResultView, error)
	GetOpenGroupRound(ctx context.Context) (*domain.GroupRound, error)
	// GetExpiredGroupRounds lists pending rounds whose deadline has passed
	GetExpiredGroupRounds(ctx context.Context) ([]domain.GroupRound, error)
	GetUserWagers(ctx context.Context, userID string, limit int) ([]domain.Wager, error)
	GetPlayerStats(ctx context.Context, userID string) (*domain.PlayerStats, error)
	Shutdown(ctx context.Context) error
}

// ChainIssuer hands out hash chain audit links
type ChainIssuer interface {
	Next(ctx context.Context) (domain.ChainLink, error)
}

// TargetProvider supplies the target multiplier recorded on new wagers
type TargetProvider interface {
	GetDefaultTarget(ctx context.Context) (decimal.Decimal, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Config holds the settlement tunables
type Config struct {
	GroupRoundDuration   time.Duration
	LateJoinSettleWindow time.Duration
	MaxRetries           uint64
	RetryBaseDelay       time.Duration
	RetryMaxDelay        time.Duration
	HistoryLimit         int
}

// DefaultConfig returns the production settlement tunables
func DefaultConfig() Config {
	return Config{
		GroupRoundDuration:   DefaultGroupRoundDuration,
		LateJoinSettleWindow: DefaultLateJoinSettleWindow,
		MaxRetries:           DefaultMaxRetries,
		RetryBaseDelay:       DefaultRetryBaseDelay,
		RetryMaxDelay:        DefaultRetryMaxDelay,
		HistoryLimit:         DefaultHistoryLimit,
	}
}

type strategy func(ctx context.Context, req domain.WagerRequest) (*domain.WagerOutcome, error)

type service struct {
	repo       repository.Wager
	engine     *outcome.Engine
	chain      ChainIssuer
	targets    TargetProvider
	publisher  EventPublisher
	clock      quartz.Clock
	cfg        Config
	strategies map[domain.GameType]strategy
	userLocks  *concurrency.LockManager
	settles    singleflight.Group

	mu          sync.Mutex
	lateSettles map[string]*quartz.Timer
	wg          sync.WaitGroup // Tracks scheduled settles for graceful shutdown
}

// NewService creates a new wager service. targets and publisher may be nil.
func NewService(repo repository.Wager, engine *outcome.Engine, chain ChainIssuer, targets TargetProvider, publisher EventPublisher, clock quartz.Clock, cfg Config) Service {
	if clock == nil {
		clock = quartz.NewReal()
	}
	s := &service{
		repo:        repo,
		engine:      engine,
		chain:       chain,
		targets:     targets,
		publisher:   publisher,
		clock:       clock,
		cfg:         cfg,
		userLocks:   concurrency.NewLockManager(),
		lateSettles: make(map[string]*quartz.Timer),
	}
	s.strategies = map[domain.GameType]strategy{
		domain.GameTypeSolo:  s.PlaceSoloWager,
		domain.GameTypeGroup: s.PlaceGroupWager,
	}
	return s
}

// PlaceWager selects the settlement strategy for the request's game type
func (s *service) PlaceWager(ctx context.Context, req domain.WagerRequest) (*domain.WagerOutcome, error) {
	place, ok := s.strategies[req.GameType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGameType, req.GameType)
	}
	return place(ctx, req)
}

// validateRequest checks the fields common to every game type and resolves
// the sub-balance the bet is drawn from
func validateRequest(req domain.WagerRequest) (domain.SubBalance, error) {
	if req.UserID == "" {
		return "", domain.ErrInvalidUserID
	}
	if !domain.ValidBetAmount(req.BetAmount) {
		return "", fmt.Errorf("%w (got %s)", domain.ErrInvalidBetAmount, req.BetAmount)
	}
	return req.Currency.SubBalance()
}

func (s *service) defaultTarget(ctx context.Context) decimal.Decimal {
	if s.targets != nil {
		target, err := s.targets.GetDefaultTarget(ctx)
		if err == nil && target.IsPositive() {
			return target
		}
		logger.FromContext(ctx).Warn(LogMsgDefaultTargetFallback, "error", err)
	}
	return decimal.NewFromInt(DefaultTargetMultiplier)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		logger.FromContext(ctx).Debug(LogMsgPublisherMissing, "type", evt.Type)
		return
	}
	s.publisher.PublishWithRetry(ctx, evt)
}

// GetOpenGroupRound returns the round currently accepting wagers, or nil
func (s *service) GetOpenGroupRound(ctx context.Context) (*domain.GroupRound, error) {
	round, err := s.repo.GetOpenGroupRound(ctx, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetOpenRound, err)
	}
	return round, nil
}

func (s *service) GetExpiredGroupRounds(ctx context.Context) ([]domain.GroupRound, error) {
	rounds, err := s.repo.GetExpiredPendingRounds(ctx, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetExpiredRounds, err)
	}
	return rounds, nil
}

// Shutdown stops pending late-join settles and waits for running ones
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDownWager)

	s.mu.Lock()
	for gameID, t := range s.lateSettles {
		if t.Stop() {
			s.wg.Done()
		}
		delete(s.lateSettles, gameID)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgWagerShutdownDone)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgWagerShutdownForced)
		return ctx.Err()
	}
}
