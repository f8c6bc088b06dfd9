package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coder/quartz"

	"github.com/osse101/ProvablyFair_Go/internal/config"
	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/eventlog"
	"github.com/osse101/ProvablyFair_Go/internal/fairness"
	"github.com/osse101/ProvablyFair_Go/internal/gameconfig"
	"github.com/osse101/ProvablyFair_Go/internal/hashchain"
	"github.com/osse101/ProvablyFair_Go/internal/outcome"
	"github.com/osse101/ProvablyFair_Go/internal/rtp"
	"github.com/osse101/ProvablyFair_Go/internal/wager"
)

// Services holds the application services built on top of the repositories
type Services struct {
	Engine     *outcome.Engine
	Chain      *hashchain.Service
	Wager      wager.Service
	Fairness   fairness.Service
	RTP        rtp.Service
	GameConfig gameconfig.Service
	EventLog   eventlog.Service
	Redis      *gameconfig.RedisCache // nil without REDIS_URL
}

// InitializeServices wires every service and loads the hash chain, generating
// its first segment on an empty store.
func InitializeServices(ctx context.Context, cfg *config.Config, settings GameSettings, repos *Repositories,
	bus event.Bus, publisher wager.EventPublisher, clock quartz.Clock) (*Services, error) {

	svcs := &Services{Engine: outcome.NewEngine(settings.Outcome)}

	var shared gameconfig.SharedCache
	if cfg.RedisURL != "" {
		redisCache, err := gameconfig.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
		}
		svcs.Redis = redisCache
		shared = redisCache
	} else {
		slog.Info(LogMsgRedisDisabled)
	}
	svcs.GameConfig = gameconfig.NewService(repos.GameConfig, shared, cfg.ConfigCacheTTL)

	svcs.Chain = hashchain.NewService(repos.ChainStore, bus, hashchain.Config{
		SegmentLength:   cfg.HashchainLength,
		SaveInterval:    cfg.HashchainSaveInterval,
		ExtendThreshold: int64(cfg.HashchainExtendThreshold),
	})
	if err := svcs.Chain.Init(ctx); err != nil {
		svcs.closeRedis()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedInitHashchain, err)
	}
	commitment := svcs.Chain.Commitment()
	slog.Info(LogMsgHashchainReady, "remaining", commitment.Remaining, "segments", len(commitment.Segments))

	svcs.Wager = wager.NewService(repos.Wager, svcs.Engine, svcs.Chain, svcs.GameConfig, publisher, clock, settings.Settlement)
	svcs.Fairness = fairness.NewService(svcs.Engine, repos.Wager, svcs.Chain)
	svcs.RTP = rtp.NewService(repos.RTP, clock, cfg.RTPCacheTTL)
	svcs.EventLog = eventlog.NewService(repos.EventLog)

	return svcs, nil
}

func (s *Services) closeRedis() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			slog.Warn(LogMsgRedisCloseFailed, "error", err)
		}
	}
}
