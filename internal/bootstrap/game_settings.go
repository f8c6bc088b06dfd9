package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/ProvablyFair_Go/internal/config"
	"github.com/osse101/ProvablyFair_Go/internal/outcome"
	"github.com/osse101/ProvablyFair_Go/internal/wager"
)

// GameSettings are the tunables the engine and the settlement service run with
type GameSettings struct {
	Outcome    outcome.Config
	Settlement wager.Config
}

// LoadGameSettings reads the game file and applies the environment overrides
// on top of it. A missing game file falls back to the built-in defaults.
func LoadGameSettings(cfg *config.Config) (GameSettings, error) {
	game, found, err := config.LoadGameFile(cfg.GameConfigPath)
	if err != nil {
		return GameSettings{}, fmt.Errorf("%s: %w", ErrMsgFailedLoadGameFile, err)
	}
	if !found {
		slog.Warn(LogMsgGameFileMissing, "path", cfg.GameConfigPath)
	}

	settlement := wager.DefaultConfig()
	settlement.GroupRoundDuration = game.Group.RoundDuration
	settlement.LateJoinSettleWindow = game.Group.LateJoinSettleWindow
	if cfg.GroupRoundDuration > 0 {
		settlement.GroupRoundDuration = cfg.GroupRoundDuration
	}
	if cfg.SettlementMaxRetries >= 0 {
		settlement.MaxRetries = uint64(cfg.SettlementMaxRetries)
	}

	slog.Info(LogMsgGameSettingsLoaded,
		"path", cfg.GameConfigPath,
		"group_round_duration", settlement.GroupRoundDuration,
		"late_join_settle_window", settlement.LateJoinSettleWindow,
		"max_retries", settlement.MaxRetries)

	return GameSettings{Outcome: game.Outcome, Settlement: settlement}, nil
}
