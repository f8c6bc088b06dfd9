package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ProvablyFair_Go/internal/event"
)

type fakeExtender struct {
	calls   int32
	release chan struct{}
	err     error
}

func (f *fakeExtender) ExtendIfLow(ctx context.Context) error {
	atomic.AddInt32(&f.calls, 1)
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func TestChainExtensionWorker_CollapsesBursts(t *testing.T) {
	pool := NewPool(1, TestQueueSize)
	pool.Start()
	defer pool.Stop()

	ext := &fakeExtender{release: make(chan struct{})}
	w := NewChainExtensionWorker(pool, ext)
	bus := event.NewMemoryBus()
	w.Subscribe(bus)

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(context.Background(), event.NewChainLowEvent(10, 100)))
	}
	require.Eventually(t, func() bool { return atomic.LoadInt32(&ext.calls) == 1 }, time.Second, 5*time.Millisecond)
	close(ext.release)

	require.Eventually(t, func() bool { return !w.pending.Load() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&ext.calls))

	// the next low signal queues a fresh extension
	require.NoError(t, bus.Publish(context.Background(), event.NewChainLowEvent(10, 100)))
	require.Eventually(t, func() bool { return atomic.LoadInt32(&ext.calls) == 2 }, time.Second, 5*time.Millisecond)
}

func TestChainExtensionWorker_FailureClearsPending(t *testing.T) {
	pool := NewPool(1, TestQueueSize)
	pool.Start()
	defer pool.Stop()

	ext := &fakeExtender{err: errors.New("disk full")}
	w := NewChainExtensionWorker(pool, ext)

	require.NoError(t, w.handleChainLow(context.Background(), event.NewChainLowEvent(1, 100)))
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&ext.calls) == 1 && !w.pending.Load()
	}, time.Second, 5*time.Millisecond)
}

func TestChainExtensionWorker_StoppedPool(t *testing.T) {
	pool := NewPool(1, TestQueueSize)
	pool.Stop()

	ext := &fakeExtender{}
	w := NewChainExtensionWorker(pool, ext)
	require.NoError(t, w.handleChainLow(context.Background(), event.NewChainLowEvent(1, 100)))

	assert.False(t, w.pending.Load())
	assert.Equal(t, int32(0), atomic.LoadInt32(&ext.calls))
}
