package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/repository"
)

type rtpRepository struct {
	db *pgxpool.Pool
}

// NewRTPRepository creates a new PostgreSQL RTP repository
func NewRTPRepository(db *pgxpool.Pool) repository.RTP {
	return &rtpRepository{db: db}
}

// AggregateSettled sums settled wagers matching the filter
func (r *rtpRepository) AggregateSettled(ctx context.Context, filter domain.RTPFilter, since *time.Time) (domain.RTPStats, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT COALESCE(SUM(bet_amount), 0), COALESCE(SUM(won_amount), 0), COUNT(*)
		FROM wagers
		WHERE status IN ('won', 'lost')`)

	args := []interface{}{}
	argNum := 1

	if filter.GameID != "" {
		fmt.Fprintf(&queryBuilder, " AND game_id = $%d", argNum)
		args = append(args, filter.GameID)
		argNum++
	}

	if filter.GameName != "" {
		fmt.Fprintf(&queryBuilder, " AND game_name = $%d", argNum)
		args = append(args, string(filter.GameName))
		argNum++
	}

	if since != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at >= $%d", argNum)
		args = append(args, *since)
	}

	var stats domain.RTPStats
	err := r.db.QueryRow(ctx, queryBuilder.String(), args...).Scan(&stats.TotalWagered, &stats.TotalWon, &stats.WagerCount)
	if err != nil {
		return domain.RTPStats{}, mapError(ErrMsgFailedToAggregateRTP, err)
	}
	return stats, nil
}

// GetGameStats summarizes settled wagers per game type
func (r *rtpRepository) GetGameStats(ctx context.Context) ([]domain.GameStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT game_name, COUNT(*), COALESCE(SUM(bet_amount), 0), COALESCE(SUM(won_amount), 0),
		       COUNT(*) FILTER (WHERE status = 'won')
		FROM wagers
		WHERE status IN ('won', 'lost')
		GROUP BY game_name
		ORDER BY game_name`)
	if err != nil {
		return nil, mapError(ErrMsgFailedToGetGameStats, err)
	}
	defer rows.Close()

	var stats []domain.GameStats
	for rows.Next() {
		var s domain.GameStats
		var name string
		if err := rows.Scan(&name, &s.WagerCount, &s.TotalWagered, &s.TotalWon, &s.WinCount); err != nil {
			return nil, mapError(ErrMsgFailedToGetGameStats, err)
		}
		s.GameName = domain.GameType(name)
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ErrMsgFailedToGetGameStats, err)
	}
	return stats, nil
}
