package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version   string      `json:"version"` // Event schema version (e.g., "1.0")
	Type      Type        `json:"type"`
	Payload   interface{} `json:"payload"`
	Metadata  Metadata    `json:"metadata"`
	Timestamp int64       `json:"timestamp"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types published by the settlement core
const (
	WagerSettled        Type = domain.EventTypeWagerSettled
	GroupRoundOpened    Type = domain.EventTypeGroupRoundOpened
	GroupRoundCompleted Type = domain.EventTypeGroupRoundCompleted
	ChainExtended       Type = domain.EventTypeChainExtended
	ChainLow            Type = "hashchain.low"
)

// ChainLowPayloadV1 is published when unissued links drop below the extension threshold
type ChainLowPayloadV1 struct {
	Remaining int64 `json:"remaining"`
	Threshold int64 `json:"threshold"`
}

func newEvent(t Type, payload interface{}) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
}

// NewWagerSettledEvent creates a wager settled event with type-safe payload
func NewWagerSettledEvent(w domain.Wager) Event {
	return newEvent(WagerSettled, domain.WagerSettledPayload{
		WagerID:   w.ID.String(),
		UserID:    w.UserID,
		GameName:  w.GameName,
		GameID:    w.GameID,
		Status:    w.Status,
		BetAmount: w.BetAmount.String(),
		WonAmount: w.WonAmount.String(),
	})
}

// NewGroupRoundOpenedEvent announces a round and its deadline
func NewGroupRoundOpenedEvent(r domain.GroupRound) Event {
	return newEvent(GroupRoundOpened, domain.GroupRoundOpenedPayload{
		GameID:         r.GameID,
		EndTime:        r.EndTime.UnixMilli(),
		ServerSeedHash: r.ServerSeedHash,
	})
}

// NewGroupRoundCompletedEvent reveals a settled round
func NewGroupRoundCompletedEvent(r domain.GroupRound, wagerCount int) Event {
	payload := domain.GroupRoundCompletedPayload{
		GameID:     r.GameID,
		WagerCount: wagerCount,
		Seeds:      r.Seeds,
	}
	if r.Result != nil {
		payload.PayoutMultiplier = r.Result.PayoutMultiplier.String()
	}
	return newEvent(GroupRoundCompleted, payload)
}

// NewChainExtendedEvent describes a newly appended hash chain segment
func NewChainExtendedEvent(seg domain.ChainSegment) Event {
	return newEvent(ChainExtended, domain.ChainExtendedPayload{
		Segment:   seg.Index,
		FinalHash: seg.FinalHash,
		Length:    seg.Length,
	})
}

// NewChainLowEvent signals that the chain needs another segment
func NewChainLowEvent(remaining, threshold int64) Event {
	return newEvent(ChainLow, ChainLowPayloadV1{Remaining: remaining, Threshold: threshold})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	wildcard := append([]Handler(nil), b.handlers[AllEvents]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range append(handlers, wildcard...) {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type. AllEvents receives every event.
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
