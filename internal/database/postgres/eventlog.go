package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ProvablyFair_Go/internal/eventlog"
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository returns the events table audit log
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &eventLogRepository{db: db}
}

func (r *eventLogRepository) LogEvent(ctx context.Context, entry eventlog.Event) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", entry.EventType, err)
	}

	// NULL rather than 'null'::jsonb when there is no metadata
	var metadata []byte
	if len(entry.Metadata) > 0 {
		if metadata, err = json.Marshal(entry.Metadata); err != nil {
			return fmt.Errorf("encode %s metadata: %w", entry.EventType, err)
		}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO events (event_type, user_id, game_id, payload, metadata)
		VALUES (@event_type, @user_id, @game_id, @payload, @metadata)`,
		pgx.NamedArgs{
			"event_type": entry.EventType,
			"user_id":    entry.UserID,
			"game_id":    entry.GameID,
			"payload":    payload,
			"metadata":   metadata,
		})
	return err
}

// Unset filter fields bind as NULL and drop out of the WHERE clause. A zero
// limit binds NULL too, which Postgres treats as LIMIT ALL.
const selectEvents = `
	SELECT id, event_type, user_id, game_id, payload, metadata, created_at
	FROM events
	WHERE (@user_id::text IS NULL OR user_id = @user_id)
	  AND (@game_id::text IS NULL OR game_id = @game_id)
	  AND (@event_type::text IS NULL OR event_type = @event_type)
	  AND (@since::timestamptz IS NULL OR created_at >= @since)
	  AND (@until::timestamptz IS NULL OR created_at <= @until)
	  AND (@before_id::bigint IS NULL OR id < @before_id)
	ORDER BY id DESC
	LIMIT @limit`

func (r *eventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var limit *int
	if filter.Limit > 0 {
		limit = &filter.Limit
	}

	rows, err := r.db.Query(ctx, selectEvents, pgx.NamedArgs{
		"user_id":    filter.UserID,
		"game_id":    filter.GameID,
		"event_type": filter.EventType,
		"since":      filter.Since,
		"until":      filter.Until,
		"before_id":  filter.BeforeID,
		"limit":      limit,
	})
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (eventlog.Event, error) {
		var rec eventRecord
		if err := row.Scan(&rec.ID, &rec.EventType, &rec.UserID, &rec.GameID, &rec.Payload, &rec.Metadata, &rec.CreatedAt); err != nil {
			return eventlog.Event{}, err
		}
		return rec.toEvent(), nil
	})
}

// eventRecord mirrors an events row. jsonb columns decode straight into maps;
// a NULL metadata column leaves the map nil.
type eventRecord struct {
	ID        int64
	EventType string
	UserID    *string
	GameID    *string
	Payload   map[string]interface{}
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

func (rec eventRecord) toEvent() eventlog.Event {
	return eventlog.Event{
		ID:        rec.ID,
		EventType: rec.EventType,
		UserID:    rec.UserID,
		GameID:    rec.GameID,
		Payload:   rec.Payload,
		Metadata:  rec.Metadata,
		CreatedAt: rec.CreatedAt,
	}
}

func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM events WHERE created_at < NOW() - make_interval(days => $1)`,
		retentionDays)
	if err != nil {
		return 0, fmt.Errorf("delete events older than %d days: %w", retentionDays, err)
	}
	return tag.RowsAffected(), nil
}
