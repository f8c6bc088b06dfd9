package wager

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/metrics"
)

// withRetry runs op until it succeeds, fails with anything other than a
// concurrency conflict, or exhausts cfg.MaxRetries. Each attempt must open its
// own transaction and re-read whatever state it depends on.
func (s *service) withRetry(ctx context.Context, game domain.GameType, op func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = s.cfg.RetryBaseDelay
	exp.MaxInterval = s.cfg.RetryMaxDelay
	exp.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(exp, s.cfg.MaxRetries), ctx)

	attempt := func() error {
		err := op()
		if err != nil && !errors.Is(err, domain.ErrConcurrencyConflict) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, next time.Duration) {
		metrics.SettlementRetries.WithLabelValues(string(game)).Inc()
		logger.FromContext(ctx).Warn(LogMsgSettlementRetry, "game", game, "error", err, "next_attempt_in", next)
	}

	err := backoff.RetryNotify(attempt, b, notify)
	if err != nil {
		metrics.SettlementFailures.WithLabelValues(string(game), errorCategory(err)).Inc()
	}
	return err
}

// errorCategory labels a settlement failure by its domain category
func errorCategory(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return "concurrency_conflict"
	case errors.Is(err, domain.ErrFairnessVerification):
		return "fairness"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	}
	return "other"
}
