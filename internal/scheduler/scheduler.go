package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"

	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/worker"
)

const clockTagSchedule = "scheduler"

const (
	LogMsgTickSkipped      = "Scheduled job skipped, worker queue full"
	LogMsgScheduleDisabled = "Scheduled job disabled by non-positive interval"
)

// Scheduler hands jobs to a worker pool on fixed intervals. It never runs a
// job itself.
type Scheduler struct {
	workerPool *worker.Pool
	clock      quartz.Clock
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	skipped    atomic.Int64
}

// Option tweaks a single Schedule call
type Option func(*schedule)

type schedule struct {
	immediate bool
}

// RunImmediately enqueues the job once at Schedule time as well as on every
// tick.
func RunImmediately() Option {
	return func(s *schedule) { s.immediate = true }
}

// New creates a scheduler on the wall clock
func New(pool *worker.Pool) *Scheduler {
	return NewWithClock(pool, quartz.NewReal())
}

// NewWithClock creates a scheduler driven by clock
func NewWithClock(pool *worker.Pool, clock quartz.Clock) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		clock:      clock,
		quit:       make(chan struct{}),
	}
}

// Schedule enqueues job every interval until Stop. name only labels logs.
// A tick that finds the pool queue full is dropped rather than queued up.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job, opts ...Option) {
	if interval <= 0 {
		logger.Warn(LogMsgScheduleDisabled, "job", name, "interval", interval)
		return
	}
	var cfg schedule
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.immediate {
		s.enqueue(name, job)
	}

	ticker := s.clock.NewTicker(interval, clockTagSchedule)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.enqueue(name, job)
			case <-s.quit:
				return
			}
		}
	}()
}

func (s *Scheduler) enqueue(name string, job worker.Job) {
	if !s.workerPool.TryEnqueue(job) {
		s.skipped.Add(1)
		logger.Warn(LogMsgTickSkipped, "job", name)
	}
}

// Skipped counts runs dropped because the pool could not take them
func (s *Scheduler) Skipped() int64 {
	return s.skipped.Load()
}

// Stop ends every schedule. Jobs already queued still run.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
