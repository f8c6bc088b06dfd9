// Package gameconfig serves the configuration key/value table, including the
// default target multiplier recorded on every wager.
package gameconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/repository"
)

// Service defines the interface for configuration access
type Service interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context) (map[string]string, error)
	GetDefaultTarget(ctx context.Context) (decimal.Decimal, error)
}

type service struct {
	repo   repository.GameConfig
	shared SharedCache
	local  *expirable.LRU[string, string]
	ttl    time.Duration
}

// NewService creates a configuration service. shared may be nil when no
// REDIS_URL is configured.
func NewService(repo repository.GameConfig, shared SharedCache, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		repo:   repo,
		shared: shared,
		local:  expirable.NewLRU[string, string](DefaultCacheSize, nil, ttl),
		ttl:    ttl,
	}
}

// Get reads through the local cache, then the shared cache, then the database
func (s *service) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyKey)
	}

	if v, ok := s.local.Get(key); ok {
		log.Debug(LogMsgConfigCacheHit, "key", key)
		return v, nil
	}

	if s.shared != nil {
		v, err := s.shared.Get(ctx, key)
		switch {
		case err == nil:
			log.Debug(LogMsgSharedCacheHit, "key", key)
			s.local.Add(key, v)
			return v, nil
		case !errors.Is(err, ErrCacheMiss):
			log.Warn(LogMsgSharedCacheFailed, "key", key, "error", err)
		}
	}

	v, err := s.repo.GetConfig(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%s: %w", ErrContextFailedToGetConfig, err)
	}

	s.local.Add(key, v)
	if s.shared != nil {
		if err := s.shared.Set(ctx, key, v, s.ttl); err != nil {
			log.Warn(LogMsgSharedCacheFailed, "key", key, "error", err)
		}
	}
	return v, nil
}

// Set writes to the database and drops the key from both caches
func (s *service) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyKey)
	}
	if key == KeyDefaultTarget {
		if _, err := parseTarget(value); err != nil {
			return err
		}
	}

	if err := s.repo.SetConfig(ctx, key, value); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSetConfig, err)
	}

	s.local.Remove(key)
	if s.shared != nil {
		if err := s.shared.Del(ctx, key); err != nil {
			logger.FromContext(ctx).Warn(LogMsgSharedCacheFailed, "key", key, "error", err)
		} else {
			logger.FromContext(ctx).Debug(LogMsgSharedCacheCleared, "key", key)
		}
	}

	logger.FromContext(ctx).Info(LogMsgConfigUpdated, "key", key)
	return nil
}

func (s *service) List(ctx context.Context) (map[string]string, error) {
	values, err := s.repo.ListConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListConfig, err)
	}
	return values, nil
}

// GetDefaultTarget returns default_target, or 1 when it was never set
func (s *service) GetDefaultTarget(ctx context.Context) (decimal.Decimal, error) {
	raw, err := s.Get(ctx, KeyDefaultTarget)
	if errors.Is(err, domain.ErrConfigNotFound) {
		return decimal.NewFromInt(DefaultTarget), nil
	}
	if err != nil {
		return decimal.Decimal{}, err
	}

	target, err := parseTarget(raw)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidTarget, "value", raw)
		return decimal.Decimal{}, err
	}
	return target, nil
}

func parseTarget(raw string) (decimal.Decimal, error) {
	target, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !target.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidTarget)
	}
	return target, nil
}
