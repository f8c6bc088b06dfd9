package sse

import (
	"context"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.GroupRoundOpened, s.handleRoundOpened)
	s.bus.Subscribe(event.GroupRoundCompleted, s.handleRoundCompleted)
	s.bus.Subscribe(event.WagerSettled, s.handleWagerSettled)
	s.bus.Subscribe(event.ChainExtended, s.handleChainExtended)

	logger.FromContext(context.Background()).Info(LogMsgSubscriberReady,
		"types", []string{
			EventTypeRoundOpened,
			EventTypeRoundCompleted,
			EventTypeWagerSettled,
			EventTypeChainExtended,
		})
}

func (s *Subscriber) broadcast(ctx context.Context, eventType string, payload interface{}) {
	if !s.hub.Broadcast(eventType, payload) {
		logger.FromContext(ctx).Warn(LogMsgEventDropped, "event_type", eventType)
		return
	}
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", eventType)
}

func (s *Subscriber) handleRoundOpened(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.GroupRoundOpenedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	s.broadcast(ctx, EventTypeRoundOpened, RoundOpenedPayload{
		GameID:         p.GameID,
		EndTime:        p.EndTime,
		ServerSeedHash: p.ServerSeedHash,
	})
	return nil
}

func (s *Subscriber) handleRoundCompleted(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.GroupRoundCompletedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	s.broadcast(ctx, EventTypeRoundCompleted, RoundCompletedPayload{
		GameID:           p.GameID,
		PayoutMultiplier: p.PayoutMultiplier,
		WagerCount:       p.WagerCount,
		ServerSeed:       p.Seeds.ServerSeed,
		ClientSeed:       p.Seeds.ClientSeed,
		Nonce:            p.Seeds.Nonce,
	})
	return nil
}

func (s *Subscriber) handleWagerSettled(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.WagerSettledPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	s.broadcast(ctx, EventTypeWagerSettled, WagerSettledPayload{
		WagerID:   p.WagerID,
		GameName:  string(p.GameName),
		GameID:    p.GameID,
		Status:    string(p.Status),
		BetAmount: p.BetAmount,
		WonAmount: p.WonAmount,
	})
	return nil
}

func (s *Subscriber) handleChainExtended(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.ChainExtendedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	s.broadcast(ctx, EventTypeChainExtended, ChainExtendedPayload{
		Segment:   p.Segment,
		FinalHash: p.FinalHash,
		Length:    p.Length,
	})
	return nil
}
