package repository

import "context"

// GameConfig is the configuration key/value table
type GameConfig interface {
	// GetConfig returns domain.ErrConfigNotFound when key is absent
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
	ListConfig(ctx context.Context) (map[string]string, error)
}
