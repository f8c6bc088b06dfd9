package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ProvablyFair_Go/internal/config"
	"github.com/osse101/ProvablyFair_Go/internal/database/postgres"
	"github.com/osse101/ProvablyFair_Go/internal/eventlog"
	"github.com/osse101/ProvablyFair_Go/internal/hashchain"
	"github.com/osse101/ProvablyFair_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Wager      *postgres.WagerRepository
	RTP        repository.RTP
	GameConfig repository.GameConfig
	EventLog   eventlog.Repository
	ChainStore hashchain.Store
}

// InitializeRepositories creates all repository implementations. The hash
// chain lives in postgres unless HASHCHAIN_STORE selects the JSON artifact.
func InitializeRepositories(dbPool *pgxpool.Pool, cfg *config.Config) (*Repositories, error) {
	repos := &Repositories{
		Wager:      postgres.NewWagerRepository(dbPool),
		RTP:        postgres.NewRTPRepository(dbPool),
		GameConfig: postgres.NewGameConfigRepository(dbPool),
		EventLog:   postgres.NewEventLogRepository(dbPool),
	}

	switch cfg.HashchainStore {
	case config.HashchainStoreFile:
		store, err := hashchain.NewFileStore(cfg.HashchainDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenChainStore, err)
		}
		repos.ChainStore = store
	default:
		repos.ChainStore = postgres.NewHashChainStore(dbPool)
	}
	slog.Info(LogMsgHashchainStoreSelected, "store", cfg.HashchainStore, "dir", cfg.HashchainDir)

	return repos, nil
}
