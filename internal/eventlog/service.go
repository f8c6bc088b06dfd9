// Package eventlog keeps an append-only audit trail of settlement events so
// operators can reconstruct what was published and when.
package eventlog

import (
	"context"

	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger on every settlement event type
	Subscribe(bus event.Bus) error

	// GetEvents queries the log. Limit is clamped to MaxQueryLimit.
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all logged event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range LoggedEventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent flattens the typed payload to JSON fields and stores it
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil || payload == nil {
		log.Debug(LogMsgEventPayloadNotObject, "type", evt.Type)
		return nil
	}

	entry := Event{
		EventType: string(evt.Type),
		UserID:    stringField(payload, PayloadKeyUserID),
		GameID:    stringField(payload, PayloadKeyGameID),
		Payload:   payload,
	}
	if evt.Metadata != nil {
		if md, err := event.DecodePayload[map[string]interface{}](evt.Metadata); err == nil {
			entry.Metadata = md
		}
	}

	if err := s.repo.LogEvent(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "game_id", entry.GameID)
	return nil
}

func stringField(payload map[string]interface{}, key string) *string {
	if v, ok := payload[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

// GetEvents queries the log
func (s *service) GetEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultQueryLimit
	}
	if filter.Limit > MaxQueryLimit {
		filter.Limit = MaxQueryLimit
	}
	return s.repo.GetEvents(ctx, filter)
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
