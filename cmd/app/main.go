package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	_ "github.com/osse101/ProvablyFair_Go/docs"
	"github.com/osse101/ProvablyFair_Go/internal/bootstrap"
	"github.com/osse101/ProvablyFair_Go/internal/config"
	"github.com/osse101/ProvablyFair_Go/internal/database"
	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/eventlog"
	"github.com/osse101/ProvablyFair_Go/internal/handler"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/scheduler"
	"github.com/osse101/ProvablyFair_Go/internal/server"
	"github.com/osse101/ProvablyFair_Go/internal/sse"
	"github.com/osse101/ProvablyFair_Go/internal/worker"
)

const (
	shutdownTimeout = 30 * time.Second
	workerQueueSize = 64
)

// @title Provably Fair API
// @version 1.0
// @description Wager placement, settlement and fairness verification.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		if !logger.IsDevelopment(cfg.Environment) {
			return err
		}
		slog.Warn("Environment validation failed", "error", err)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	settings, err := bootstrap.LoadGameSettings(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	repos, err := bootstrap.InitializeRepositories(dbPool, cfg)
	if err != nil {
		dbPool.Close()
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		dbPool.Close()
		return err
	}

	clock := quartz.NewReal()
	svcs, err := bootstrap.InitializeServices(ctx, cfg, settings, repos, bus, publisher, clock)
	if err != nil {
		dbPool.Close()
		return err
	}

	pool := worker.NewPool(cfg.WorkerPoolSize, workerQueueSize)
	pool.Start()

	groupWorker := worker.NewGroupRoundWorker(svcs.Wager, clock)
	chainWorker := worker.NewChainExtensionWorker(pool, svcs.Chain)

	hub := sse.NewHub()
	hub.Start()

	components := bootstrap.ShutdownComponents{
		GroupWorker:        groupWorker,
		WorkerPool:         pool,
		WagerService:       svcs.Wager,
		Chain:              svcs.Chain,
		Hub:                hub,
		ResilientPublisher: publisher,
		Redis:              svcs.Redis,
		DBPool:             dbPool,
	}

	deps := bootstrap.EventHandlerDependencies{
		EventBus:        bus,
		RTPService:      svcs.RTP,
		EventLogService: svcs.EventLog,
		GroupWorker:     groupWorker,
		ChainWorker:     chainWorker,
		Hub:             hub,
		NatsPrefix:      cfg.NatsSubjectPrefix,
	}
	if cfg.NatsURL != "" {
		nc, err := event.ConnectNats(cfg.NatsURL)
		if err != nil {
			bootstrap.GracefulShutdown(ctx, components)
			return err
		}
		deps.Nats = nc
		components.Nats = nc
	}

	if err := bootstrap.RegisterEventHandlers(deps); err != nil {
		bootstrap.GracefulShutdown(ctx, components)
		return err
	}

	groupWorker.Start(ctx)

	sched := scheduler.NewWithClock(pool, clock)
	sched.Schedule("eventlog-cleanup", cfg.EventLogCleanupEvery,
		eventlog.NewCleanupJob(svcs.EventLog, cfg.EventLogRetentionDays), scheduler.RunImmediately())
	components.Scheduler = sched

	var checks []handler.ReadinessCheck
	if svcs.Redis != nil {
		checks = append(checks, handler.ReadinessCheck{Name: "redis", Checker: handler.CheckFunc(svcs.Redis.Ping)})
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, server.Services{
		Wager:    svcs.Wager,
		Fairness: svcs.Fairness,
		RTP:      svcs.RTP,
		Config:   svcs.GameConfig,
		EventLog: svcs.EventLog,
	}, hub, checks...)
	components.Server = srv

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, components)
		return nil
	})

	return g.Wait()
}
