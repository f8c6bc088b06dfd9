package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/eventlog"
	"github.com/osse101/ProvablyFair_Go/internal/metrics"
	"github.com/osse101/ProvablyFair_Go/internal/rtp"
	"github.com/osse101/ProvablyFair_Go/internal/sse"
	"github.com/osse101/ProvablyFair_Go/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	RTPService      rtp.Service
	EventLogService eventlog.Service
	GroupWorker     *worker.GroupRoundWorker
	ChainWorker     *worker.ChainExtensionWorker
	Hub             *sse.Hub        // optional
	Nats            event.Publisher // optional
	NatsPrefix      string
}

// RegisterEventHandlers sets up all event handlers and subscribers.
// This includes:
// - Metrics collector (settlement counters and chain gauge)
// - RTP cache invalidation
// - Event logger (persists settlement events to database)
// - Group round and chain extension workers
// - SSE and NATS fan-out when configured
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	deps.RTPService.Register(deps.EventBus)

	if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	if deps.GroupWorker != nil {
		deps.GroupWorker.Subscribe(deps.EventBus)
	}
	if deps.ChainWorker != nil {
		deps.ChainWorker.Subscribe(deps.EventBus)
	}

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}

	if deps.Nats != nil {
		forwarder := event.NewNatsForwarder(deps.Nats, deps.NatsPrefix)
		forwarder.Subscribe(deps.EventBus, eventlog.LoggedEventTypes...)
		slog.Info(LogMsgNatsForwarderRegistered, "prefix", deps.NatsPrefix)
	}

	return nil
}
