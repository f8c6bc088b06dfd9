package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	var got Event

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		got = event
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType, Payload: "payload"})

	require.NoError(t, err)
	assert.Equal(t, eventType, got.Type)
	assert.Equal(t, "payload", got.Payload)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}
	bus.Subscribe(eventType, handler)
	bus.Subscribe(eventType, handler)
	bus.Subscribe(AllEvents, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Type: eventType}))
	assert.Equal(t, 3, count)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), Event{Type: "nobody"}))
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	assert.ErrorContains(t, err, "encountered 1 errors")
}

func TestNewWagerSettledEvent(t *testing.T) {
	id := uuid.New()
	w := domain.Wager{
		ID:        id,
		UserID:    "user-1",
		GameName:  domain.GameTypeSolo,
		Status:    domain.WagerStatusWon,
		BetAmount: decimal.NewFromInt(10),
		WonAmount: decimal.NewFromInt(20),
	}

	evt := NewWagerSettledEvent(w)

	assert.Equal(t, WagerSettled, evt.Type)
	assert.Equal(t, EventSchemaVersion, evt.Version)
	payload, err := DecodePayload[domain.WagerSettledPayload](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, id.String(), payload.WagerID)
	assert.Equal(t, "20", payload.WonAmount)
}

func TestNewGroupRoundOpenedEvent_HidesSeed(t *testing.T) {
	end := time.Date(2026, 1, 1, 0, 0, 30, 0, time.UTC)
	r := domain.GroupRound{
		GameID:         "round-1",
		EndTime:        end,
		Seeds:          domain.SeedTriple{ServerSeed: "secret"},
		ServerSeedHash: "hash",
	}

	payload, err := DecodePayload[domain.GroupRoundOpenedPayload](NewGroupRoundOpenedEvent(r).Payload)

	require.NoError(t, err)
	assert.Equal(t, end.UnixMilli(), payload.EndTime)
	assert.Equal(t, "hash", payload.ServerSeedHash)
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]interface{}{"remaining": 3, "threshold": 10}

	payload, err := DecodePayload[ChainLowPayloadV1](raw)

	require.NoError(t, err)
	assert.Equal(t, int64(3), payload.Remaining)
	assert.Equal(t, int64(10), payload.Threshold)
}

func TestDecodePayload_RawJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    int64
		wantErr bool
	}{
		{"raw message", json.RawMessage(`{"remaining":7,"threshold":50}`), 7, false},
		{"byte slice", []byte(`{"remaining":2,"threshold":50}`), 2, false},
		{"nil", nil, 0, true},
		{"malformed", []byte(`{`), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := DecodePayload[ChainLowPayloadV1](tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, payload.Remaining)
		})
	}
}
