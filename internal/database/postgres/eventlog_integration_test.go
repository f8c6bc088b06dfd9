package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ProvablyFair_Go/internal/eventlog"
)

func TestEventLogRepository(t *testing.T) {
	pool := setupIntegrationTest(t)
	ctx := context.Background()
	repo := NewEventLogRepository(pool)

	user := "u1"
	game := "round-1"
	require.NoError(t, repo.LogEvent(ctx, eventlog.Event{
		EventType: "wager.settled",
		UserID:    &user,
		GameID:    &game,
		Payload:   map[string]interface{}{"wonAmount": "20"},
	}))
	require.NoError(t, repo.LogEvent(ctx, eventlog.Event{
		EventType: "hashchain.extended",
		Payload:   map[string]interface{}{"segment": float64(1)},
		Metadata:  map[string]interface{}{"source": "worker"},
	}))

	all, err := repo.GetEvents(ctx, eventlog.EventFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "hashchain.extended", all[0].EventType, "newest first")
	assert.Equal(t, "worker", all[0].Metadata["source"])
	assert.Nil(t, all[1].Metadata, "missing metadata stays NULL")

	limited, err := repo.GetEvents(ctx, eventlog.EventFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	nextPage, err := repo.GetEvents(ctx, eventlog.EventFilter{Limit: 1, BeforeID: &limited[0].ID})
	require.NoError(t, err)
	require.Len(t, nextPage, 1)
	assert.Equal(t, "wager.settled", nextPage[0].EventType)

	byGame, err := repo.GetEvents(ctx, eventlog.EventFilter{GameID: &game})
	require.NoError(t, err)
	require.Len(t, byGame, 1)
	assert.Equal(t, "wager.settled", byGame[0].EventType)

	future := time.Now().Add(time.Hour)
	later, err := repo.GetEvents(ctx, eventlog.EventFilter{Since: &future})
	require.NoError(t, err)
	assert.Empty(t, later)

	byUser, err := repo.GetEvents(ctx, eventlog.EventFilter{UserID: &user, Limit: 10})
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, "20", byUser[0].Payload["wonAmount"])
	require.NotNil(t, byUser[0].GameID)
	assert.Equal(t, game, *byUser[0].GameID)

	typ := "group_round.completed"
	none, err := repo.GetEvents(ctx, eventlog.EventFilter{EventType: &typ})
	require.NoError(t, err)
	assert.Empty(t, none)

	deleted, err := repo.CleanupOldEvents(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	_, err = pool.Exec(ctx, `UPDATE events SET created_at = NOW() - INTERVAL '3 days'`)
	require.NoError(t, err)
	deleted, err = repo.CleanupOldEvents(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
