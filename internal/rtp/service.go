package rtp

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/repository"
)

// Service defines the interface for RTP reporting
type Service interface {
	ComputeRTP(ctx context.Context, filter domain.RTPFilter) (*domain.RTPStats, error)
	GetGameStats(ctx context.Context) ([]domain.GameStats, error)
	// Register invalidates cached aggregates whenever a wager settles
	Register(bus event.Bus)
}

type service struct {
	repo  repository.RTP
	cache *statsCache
	clock quartz.Clock
}

// NewService creates an RTP service with a cache of the given TTL
func NewService(repo repository.RTP, clock quartz.Clock, ttl time.Duration) Service {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		repo:  repo,
		cache: newStatsCache(DefaultCacheSize, ttl),
		clock: clock,
	}
}

// ComputeRTP aggregates won and lost wagers matching filter
func (s *service) ComputeRTP(ctx context.Context, filter domain.RTPFilter) (*domain.RTPStats, error) {
	if filter.TimeRangeDays < 0 || filter.TimeRangeDays > MaxTimeRangeDays {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidTimeRange)
	}

	if stats, ok := s.cache.Get(filter); ok {
		logger.FromContext(ctx).Debug(LogMsgRTPCacheHit, "filter", filter)
		return &stats, nil
	}

	var since *time.Time
	if filter.TimeRangeDays > 0 {
		t := s.clock.Now().AddDate(0, 0, -filter.TimeRangeDays)
		since = &t
	}

	totals, err := s.repo.AggregateSettled(ctx, filter, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToAggregate, err)
	}

	stats := Finalize(totals)
	s.cache.Set(filter, stats)
	return &stats, nil
}

// GetGameStats summarizes each game type
func (s *service) GetGameStats(ctx context.Context) ([]domain.GameStats, error) {
	stats, err := s.repo.GetGameStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGameStats, err)
	}
	return stats, nil
}

func (s *service) Register(bus event.Bus) {
	bus.Subscribe(event.WagerSettled, s.handleWagerSettled)
}

func (s *service) handleWagerSettled(ctx context.Context, evt event.Event) error {
	s.cache.Clear()
	logger.FromContext(ctx).Debug(LogMsgRTPCacheInvalidated, "type", evt.Type)
	return nil
}
