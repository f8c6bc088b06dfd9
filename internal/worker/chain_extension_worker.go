package worker

import (
	"context"
	"sync/atomic"

	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// ChainExtender appends hash chain segments
type ChainExtender interface {
	ExtendIfLow(ctx context.Context) error
}

// ChainExtensionWorker moves hash chain generation off the settlement path.
// At most one extension is queued or running at a time.
type ChainExtensionWorker struct {
	pool    *Pool
	chain   ChainExtender
	pending atomic.Bool
}

// NewChainExtensionWorker creates a worker that runs extensions on pool
func NewChainExtensionWorker(pool *Pool, chain ChainExtender) *ChainExtensionWorker {
	return &ChainExtensionWorker{pool: pool, chain: chain}
}

// Subscribe subscribes the worker to relevant events
func (w *ChainExtensionWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.ChainLow, w.handleChainLow)
}

func (w *ChainExtensionWorker) handleChainLow(ctx context.Context, e event.Event) error {
	log := logger.FromContext(ctx)
	if !w.pending.CompareAndSwap(false, true) {
		log.Debug(LogMsgChainExtensionSkipped)
		return nil
	}
	if !w.pool.TryEnqueue(JobFunc(w.extend)) {
		w.pending.Store(false)
		return nil
	}
	if payload, err := event.DecodePayload[event.ChainLowPayloadV1](e.Payload); err == nil {
		log.Info(LogMsgChainExtensionQueued, "remaining", payload.Remaining, "threshold", payload.Threshold)
	}
	return nil
}

func (w *ChainExtensionWorker) extend(ctx context.Context) error {
	defer w.pending.Store(false)
	if err := w.chain.ExtendIfLow(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgChainExtensionFailed, "error", err)
		return err
	}
	logger.FromContext(ctx).Info(LogMsgChainExtensionCompleted)
	return nil
}
