package worker

import (
	"context"
	"errors"
	"time"

	"github.com/coder/quartz"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// GroupRoundSettler is the part of the wager service the worker drives
type GroupRoundSettler interface {
	SettleGroupRound(ctx context.Context, gameID string) (*domain.GroupRound, error)
	GetOpenGroupRound(ctx context.Context) (*domain.GroupRound, error)
	GetExpiredGroupRounds(ctx context.Context) ([]domain.GroupRound, error)
}

// GroupRoundWorker settles group rounds when their deadline passes
type GroupRoundWorker struct {
	BaseWorker
	service GroupRoundSettler
}

// NewGroupRoundWorker creates a new GroupRoundWorker
func NewGroupRoundWorker(service GroupRoundSettler, clock quartz.Clock) *GroupRoundWorker {
	w := &GroupRoundWorker{service: service}
	w.init(clock)
	return w
}

// Start settles rounds that expired while the process was down and schedules
// the round still open, if any
func (w *GroupRoundWorker) Start(ctx context.Context) {
	log := logger.FromContext(ctx)

	expired, err := w.service.GetExpiredGroupRounds(ctx)
	if err != nil {
		log.Error(LogMsgFailedToCheckRoundsOnStartup, "error", err)
	}
	for _, r := range expired {
		w.scheduleSettle(r.GameID, r.EndTime)
	}

	open, err := w.service.GetOpenGroupRound(ctx)
	if err != nil {
		log.Error(LogMsgFailedToCheckRoundsOnStartup, "error", err)
		return
	}
	if open != nil {
		w.scheduleSettle(open.GameID, open.EndTime)
	}
}

// Subscribe subscribes the worker to relevant events
func (w *GroupRoundWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.GroupRoundOpened, w.handleGroupRoundOpened)
}

func (w *GroupRoundWorker) handleGroupRoundOpened(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[domain.GroupRoundOpenedPayload](e.Payload)
	if err != nil || payload.GameID == "" {
		logger.FromContext(ctx).Warn(LogMsgInvalidRoundPayload, "error", err)
		return nil
	}
	w.scheduleSettle(payload.GameID, time.UnixMilli(payload.EndTime))
	return nil
}

func (w *GroupRoundWorker) scheduleSettle(gameID string, endTime time.Time) {
	delay := endTime.Sub(w.clock.Now())
	logger.FromContext(context.Background()).Info(LogMsgSchedulingRoundSettle, "gameID", gameID, "delay", delay)
	w.schedule(gameID, delay, func() { w.settle(gameID) }, clockTagGroupRound, gameID)
}

func (w *GroupRoundWorker) settle(gameID string) {
	ctx, cancel := context.WithTimeout(context.Background(), SettleTimeout)
	defer cancel()
	log := logger.FromContext(ctx)
	log.Info(LogMsgSettlingScheduledRound, "gameID", gameID)

	round, err := w.service.SettleGroupRound(ctx, gameID)
	switch {
	case errors.Is(err, domain.ErrRoundStillOpen):
		log.Info(LogMsgRoundNotYetExpired, "gameID", gameID)
		w.schedule(gameID, SettleRetryDelay, func() { w.settle(gameID) }, clockTagGroupRound, gameID)
	case err != nil:
		log.Error(LogMsgFailedToSettleRound, "gameID", gameID, "error", err)
	case round != nil:
		log.Info(LogMsgRoundSettledByWorker, "gameID", gameID)
	}
}

// Shutdown cancels pending settles and waits for running ones
func (w *GroupRoundWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, "group round worker")
}
