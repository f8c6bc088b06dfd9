package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/ProvablyFair_Go/internal/database"
	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/gameconfig"
	"github.com/osse101/ProvablyFair_Go/internal/hashchain"
	"github.com/osse101/ProvablyFair_Go/internal/scheduler"
	"github.com/osse101/ProvablyFair_Go/internal/server"
	"github.com/osse101/ProvablyFair_Go/internal/sse"
	"github.com/osse101/ProvablyFair_Go/internal/wager"
	"github.com/osse101/ProvablyFair_Go/internal/worker"
)

// Closer is satisfied by *nats.Conn
type Closer interface {
	Close()
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	GroupWorker        *worker.GroupRoundWorker
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	WagerService       wager.Service
	Chain              *hashchain.Service
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	Redis              *gameconfig.RedisCache
	Nats               Closer
	DBPool             database.Pool
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in the correct order:
// 1. HTTP server (stop accepting new wagers)
// 2. Timers and background jobs
// 3. Settlement service (drain in-flight settlements)
// 4. Event publisher (flush pending events to ensure consistency)
// 5. External connections
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.GroupWorker != nil {
		if err := components.GroupWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgGroupWorkerShutdownFailed, "error", err)
		}
	}
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.WagerService != nil {
		if err := components.WagerService.Shutdown(ctx); err != nil {
			slog.Error(LogMsgWagerShutdownFailed, "error", err)
		}
	}

	// Settlement has drained, so no more links are issued
	if components.Chain != nil {
		components.Chain.Close()
	}

	if components.Hub != nil {
		components.Hub.Stop()
	}

	// Publisher goes last among in-process parts so queued retries can land
	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Redis != nil {
		if err := components.Redis.Close(); err != nil {
			slog.Warn(LogMsgRedisCloseFailed, "error", err)
		}
	}
	if components.Nats != nil {
		components.Nats.Close()
	}
	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgShutdownComplete)
}
