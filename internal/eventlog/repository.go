package eventlog

import (
	"context"
	"time"
)

// Event is one row of the audit log. Payload and Metadata are the JSON
// objects the settlement event carried.
type Event struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"eventType"`
	UserID    *string                `json:"userId,omitempty"`
	GameID    *string                `json:"gameId,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// EventFilter narrows a log query; nil fields match everything. Results are
// newest first, and BeforeID continues a previous page from its last ID.
type EventFilter struct {
	UserID    *string
	GameID    *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	BeforeID  *int64
	Limit     int
}

// Repository stores the audit log
type Repository interface {
	LogEvent(ctx context.Context, entry Event) error
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)
	// CleanupOldEvents deletes rows older than retentionDays and returns how many
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
