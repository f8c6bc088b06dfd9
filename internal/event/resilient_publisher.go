package event

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// ResilientPublisher publishes events and retries failures in the background
// with exponential backoff. Events that exhaust their retries are appended to a
// dead-letter file instead of being lost.
type ResilientPublisher struct {
	bus        Bus
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// NewResilientPublisher creates a publisher wrapping bus
func NewResilientPublisher(bus Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	return &ResilientPublisher{
		bus:        bus,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		deadLetter: dlw,
		stop:       make(chan struct{}),
	}, nil
}

// PublishWithRetry publishes once synchronously. On failure the event is
// retried in a tracked goroutine; the caller never blocks on retries.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	if p.maxRetries <= 0 {
		p.writeDeadLetter(evt, 1, err)
		return
	}

	select {
	case <-p.stop:
		logger.FromContext(ctx).Warn(LogMsgEventDroppedShutdown, "event_type", evt.Type, "error", err)
		p.writeDeadLetter(evt, 1, err)
		return
	default:
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)

	p.wg.Add(1)
	go p.retry(evt, err)
}

func (p *ResilientPublisher) retry(evt Event, firstErr error) {
	defer p.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-p.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	attempts := 1
	select {
	case <-time.After(p.baseDelay):
	case <-ctx.Done():
		p.writeDeadLetter(evt, attempts, firstErr)
		return
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.baseDelay
	bo.Multiplier = RetryMultiplier
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0

	lastErr := firstErr
	op := func() error {
		attempts++
		lastErr = p.bus.Publish(ctx, evt)
		return lastErr
	}
	notify := func(err error, next time.Duration) {
		logger.Warn(LogMsgEventRetryFailed, "event_type", evt.Type, "attempt", attempts, "next", next, "error", err)
	}

	err := backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(bo, retryBudget(p.maxRetries)), ctx), notify)
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded, "event_type", evt.Type, "attempt", attempts)
		return
	}

	logger.Error(LogMsgEventRetryExhausted, "event_type", evt.Type, "attempts", attempts, "error", lastErr)
	p.writeDeadLetter(evt, attempts, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(evt Event, attempts int, err error) {
	if werr := p.deadLetter.Write(evt, attempts, err); werr != nil {
		logger.Error(LogMsgDeadLetterWritten, "event_type", evt.Type, "error", werr)
		return
	}
	logger.Info(LogMsgDeadLetterWritten, "event_type", evt.Type)
}

// Shutdown cancels pending retries, dead-lettering their events, and waits
// for retry goroutines to exit
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.stop) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}

// retryBudget converts a retry count into backoff's "retries after the first call"
func retryBudget(maxRetries int) uint64 {
	if maxRetries <= 1 {
		return 0
	}
	return uint64(maxRetries - 1)
}
