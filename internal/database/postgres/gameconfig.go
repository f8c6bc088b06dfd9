package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/repository"
)

type gameConfigRepository struct {
	db *pgxpool.Pool
}

// NewGameConfigRepository creates a new PostgreSQL configuration repository
func NewGameConfigRepository(db *pgxpool.Pool) repository.GameConfig {
	return &gameConfigRepository{db: db}
}

func (r *gameConfigRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM configuration WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrConfigNotFound
		}
		return "", mapError(ErrMsgFailedToGetConfig, err)
	}
	return value, nil
}

func (r *gameConfigRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO configuration (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`, key, value)
	return mapError(ErrMsgFailedToSetConfig, err)
}

func (r *gameConfigRepository) ListConfig(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value FROM configuration ORDER BY key`)
	if err != nil {
		return nil, mapError(ErrMsgFailedToListConfig, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, mapError(ErrMsgFailedToListConfig, err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ErrMsgFailedToListConfig, err)
	}
	return values, nil
}
