package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/outcome"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "fairctl",
		Short:         "Offline tooling for hash chains and round replay",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := logger.LogLevelWarn
			if verbose {
				level = logger.LogLevelDebug
			}
			cfg := logger.Config{Level: level, Format: logger.LogFormatText}
			slog.SetDefault(slog.New(logger.NewHandler(cfg, cmd.ErrOrStderr())))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newGenerateChainCmd(),
		newVerifyChainCmd(),
		newReplayCmd(),
		newSimulateCmd(),
		newValidateConfigCmd(),
		newDBCmd(),
		newDeadLettersCmd(),
	)
	return root
}

// loadOutcomeConfig reads the outcome section of a game file, or the defaults
func loadOutcomeConfig(path string) (outcome.Config, error) {
	if path == "" {
		return outcome.DefaultConfig(), nil
	}
	return outcome.LoadConfig(path)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
