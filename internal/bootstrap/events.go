package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/ProvablyFair_Go/internal/config"
	"github.com/osse101/ProvablyFair_Go/internal/event"
)

// InitializeEventSystem creates the in-process bus and the resilient publisher
// that settlement uses to emit events. Unset retry settings fall back to the
// config defaults and the dead-letter directory is created up front.
func InitializeEventSystem(cfg *config.Config) (*event.MemoryBus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	maxRetries := cfg.EventMaxRetries
	if maxRetries <= 0 {
		maxRetries = config.DefaultEventMaxRetries
	}
	retryDelay := cfg.EventRetryDelay
	if retryDelay <= 0 {
		retryDelay = config.DefaultEventRetryDelay
	}
	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = config.DefaultEventDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	// Leftover events are not replayed; fairctl dead-letters lists them
	if backlog, err := event.ReadDeadLetters(deadLetterPath); err != nil {
		slog.Warn(LogMsgDeadLetterUnreadable, "path", deadLetterPath, "error", err)
	} else if len(backlog) > 0 {
		slog.Warn(LogMsgDeadLetterBacklog, "path", deadLetterPath, "count", len(backlog))
	}

	resilientPublisher, err := event.NewResilientPublisher(eventBus, maxRetries, retryDelay, deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, resilientPublisher, nil
}
