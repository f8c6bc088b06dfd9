package metrics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	bus.Subscribe(event.AllEvents, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.WagerSettled:
		p, err := event.DecodePayload[domain.WagerSettledPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
			return nil
		}
		game := string(p.GameName)
		WagersSettled.WithLabelValues(game, string(p.Status)).Inc()
		AmountWagered.WithLabelValues(game).Add(amount(p.BetAmount))
		AmountWon.WithLabelValues(game).Add(amount(p.WonAmount))

	case event.GroupRoundOpened:
		GroupRoundsOpened.Inc()

	case event.GroupRoundCompleted:
		p, err := event.DecodePayload[domain.GroupRoundCompletedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
			return nil
		}
		GroupRoundsSettled.Inc()
		GroupRoundWagers.Observe(float64(p.WagerCount))

	case event.ChainExtended:
		HashChainExtensions.Inc()

	case event.ChainLow:
		p, err := event.DecodePayload[event.ChainLowPayloadV1](evt.Payload)
		if err == nil {
			HashChainRemaining.Set(float64(p.Remaining))
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// amount converts a decimal string from a payload; counters cannot go negative
func amount(s string) float64 {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return 0
	}
	return d.InexactFloat64()
}
