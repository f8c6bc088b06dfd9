package repository

import (
	"context"
	"time"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

// RTP defines aggregate reads over settled wagers
type RTP interface {
	// AggregateSettled sums bet and won amounts of won/lost wagers matching
	// the filter. since is nil when no time range applies.
	AggregateSettled(ctx context.Context, filter domain.RTPFilter, since *time.Time) (domain.RTPStats, error)
	GetGameStats(ctx context.Context) ([]domain.GameStats, error)
}
