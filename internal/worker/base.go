package worker

import (
	"context"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// BaseWorker provides common functionality for background workers that manage timers
type BaseWorker struct {
	clock    quartz.Clock
	mu       sync.Mutex
	timers   map[string]*quartz.Timer
	shutdown chan struct{}
	closed   bool
	wg       sync.WaitGroup
}

func (w *BaseWorker) init(clock quartz.Clock) {
	if clock == nil {
		clock = quartz.NewReal()
	}
	w.clock = clock
	if w.timers == nil {
		w.timers = make(map[string]*quartz.Timer)
	}
	if w.shutdown == nil {
		w.shutdown = make(chan struct{})
	}
}

// schedule runs fn after d, replacing any timer already registered for id.
// A non-positive d runs fn right away on its own goroutine.
func (w *BaseWorker) schedule(id string, d time.Duration, fn func(), tags ...string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	if existing, ok := w.timers[id]; ok {
		if existing.Stop() {
			w.wg.Done()
		}
		delete(w.timers, id)
	}

	w.wg.Add(1)
	if d <= 0 {
		go func() {
			defer w.wg.Done()
			fn()
		}()
		return
	}

	var timer *quartz.Timer
	timer = w.clock.AfterFunc(d, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.timers[id] == timer {
			delete(w.timers, id)
		}
		w.mu.Unlock()

		select {
		case <-w.shutdown:
			return
		default:
		}
		fn()
	}, tags...)
	w.timers[id] = timer
}

func (w *BaseWorker) pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

func (w *BaseWorker) shutdownInternal(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down " + workerName)

	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.shutdown)
	}
	for id, timer := range w.timers {
		if timer.Stop() {
			w.wg.Done()
		}
		log.Info("Cancelled pending "+workerName+" execution", "id", id)
	}
	w.timers = make(map[string]*quartz.Timer)
	w.mu.Unlock()

	// Wait for in-flight executions
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(workerName + " shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn(workerName + " shutdown timeout")
		return ctx.Err()
	}
}
