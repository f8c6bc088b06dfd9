package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ProvablyFair_Go/internal/worker"
)

func signalJob(done chan<- struct{}) worker.Job {
	return worker.JobFunc(func(context.Context) error {
		done <- struct{}{}
		return nil
	})
}

func waitDone(ctx context.Context, t *testing.T, done <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-done:
	case <-ctx.Done():
		require.FailNow(t, "job did not run", what)
	}
}

func TestScheduler_RunsOnEveryTick(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	mClock := quartz.NewMock(t)
	sched := NewWithClock(pool, mClock)
	defer sched.Stop()

	done := make(chan struct{}, 10)
	sched.Schedule("cleanup", time.Hour, signalJob(done))

	for i := 0; i < 2; i++ {
		mClock.Advance(time.Hour).MustWait(ctx)
		waitDone(ctx, t, done, "tick")
	}
	assert.Zero(t, sched.Skipped())
}

func TestScheduler_RunImmediately(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := NewWithClock(pool, quartz.NewMock(t))
	defer sched.Stop()

	done := make(chan struct{}, 10)
	sched.Schedule("cleanup", time.Hour, signalJob(done), RunImmediately())
	waitDone(ctx, t, done, "immediate run")
}

func TestScheduler_SkipsWhenQueueFull(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// never started, so the single queue slot stays taken
	pool := worker.NewPool(1, 1)
	defer pool.Stop()

	mClock := quartz.NewMock(t)
	sched := NewWithClock(pool, mClock)
	defer sched.Stop()

	noop := worker.JobFunc(func(context.Context) error { return nil })
	sched.Schedule("cleanup", time.Minute, noop, RunImmediately())
	for i := int64(1); i <= 2; i++ {
		mClock.Advance(time.Minute).MustWait(ctx)
		require.Eventually(t, func() bool { return sched.Skipped() == i }, time.Second, 5*time.Millisecond)
	}
}

func TestScheduler_IgnoresNonPositiveInterval(t *testing.T) {
	pool := worker.NewPool(1, 1)
	sched := NewWithClock(pool, quartz.NewMock(t))

	for _, interval := range []time.Duration{0, -time.Second} {
		sched.Schedule("cleanup", interval, worker.JobFunc(func(context.Context) error { return nil }), RunImmediately())
	}
	assert.True(t, pool.TryEnqueue(worker.JobFunc(func(context.Context) error { return nil })), "nothing was queued")

	sched.Stop()
	assert.NotPanics(t, sched.Stop)
}
