package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/event"
)

// MockEventBus is a mock implementation of event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func TestService_Subscribe(t *testing.T) {
	service := NewService(new(MockRepository))
	mockBus := new(MockEventBus)

	for _, et := range LoggedEventTypes {
		mockBus.On("Subscribe", et, mock.Anything).Return()
	}

	err := service.Subscribe(mockBus)
	assert.NoError(t, err)
	mockBus.AssertExpectations(t)
	mockBus.AssertNumberOfCalls(t, "Subscribe", len(LoggedEventTypes))
}

func TestService_HandleEvent(t *testing.T) {
	ctx := context.Background()
	wagerID := uuid.New()
	settled := event.NewWagerSettledEvent(domain.Wager{
		ID:        wagerID,
		UserID:    "user123",
		GameName:  domain.GameTypeGroup,
		GameID:    "round-1",
		Status:    domain.WagerStatusWon,
		BetAmount: decimal.NewFromInt(10),
		WonAmount: decimal.NewFromInt(25),
	})

	t.Run("stores typed payload with user and game", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo).(*service)

		mockRepo.On("LogEvent", ctx, mock.MatchedBy(func(e Event) bool {
			return e.EventType == string(event.WagerSettled) &&
				e.UserID != nil && *e.UserID == "user123" &&
				e.GameID != nil && *e.GameID == "round-1" &&
				e.Payload["wagerId"] == wagerID.String() &&
				e.Payload["wonAmount"] == "25"
		})).Return(nil)

		require.NoError(t, svc.handleEvent(ctx, settled))
		mockRepo.AssertExpectations(t)
	})

	t.Run("chain events have no user", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo).(*service)

		mockRepo.On("LogEvent", ctx, mock.MatchedBy(func(e Event) bool {
			return e.UserID == nil && e.GameID == nil && e.Payload["remaining"] == float64(12)
		})).Return(nil)

		require.NoError(t, svc.handleEvent(ctx, event.NewChainLowEvent(12, 1000)))
		mockRepo.AssertExpectations(t)
	})

	t.Run("skips scalar payloads", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo).(*service)

		err := svc.handleEvent(ctx, event.Event{Type: event.WagerSettled, Payload: "not an object"})

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "LogEvent", mock.Anything, mock.Anything)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo).(*service)
		mockRepo.On("LogEvent", ctx, mock.Anything).Return(errors.New("db down"))

		err := svc.handleEvent(ctx, settled)

		assert.EqualError(t, err, "db down")
	})
}

func TestService_GetEvents_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default when unset", 0, DefaultQueryLimit},
		{"negative", -3, DefaultQueryLimit},
		{"within bounds", 10, 10},
		{"above max", MaxQueryLimit + 1, MaxQueryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			mockRepo.On("GetEvents", mock.Anything, EventFilter{Limit: tt.want}).Return([]Event{}, nil)

			_, err := NewService(mockRepo).GetEvents(context.Background(), EventFilter{Limit: tt.limit})

			require.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_HandleEvent_ThroughBus(t *testing.T) {
	mockRepo := new(MockRepository)
	bus := event.NewMemoryBus()
	require.NoError(t, NewService(mockRepo).Subscribe(bus))

	mockRepo.On("LogEvent", mock.Anything, mock.MatchedBy(func(e Event) bool {
		return e.EventType == string(event.ChainExtended)
	})).Return(nil).Once()

	err := bus.Publish(context.Background(), event.NewChainExtendedEvent(domain.ChainSegment{Index: 1, Length: 10, FinalHash: "ab"}))

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
