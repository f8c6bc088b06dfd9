package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/ProvablyFair_Go/internal/config"
	"github.com/osse101/ProvablyFair_Go/internal/validation"
)

func newValidateConfigCmd() *cobra.Command {
	var (
		file       string
		schemaPath string
	)

	cmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Check a game file against its schema and the engine's own rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.NewSchemaValidator().ValidateFile(file, schemaPath); err != nil {
				return err
			}

			game, found, err := config.LoadGameFile(file)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("game file not found: %s", file)
			}
			return writeJSON(cmd.OutOrStdout(), game)
		},
	}

	cmd.Flags().StringVar(&file, "file", config.ConfigPathGame, "game file to check")
	cmd.Flags().StringVar(&schemaPath, "schema", validation.GameSchemaPath, "JSON schema for the game file")
	return cmd
}
