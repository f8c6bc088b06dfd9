package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/osse101/ProvablyFair_Go/internal/config"
	"github.com/osse101/ProvablyFair_Go/internal/database"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Create, migrate or reset the settlement database",
	}
	cmd.AddCommand(newDBSetupCmd(), newDBResetCmd())
	return cmd
}

func newDBSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the database if missing and apply migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			err = withServerConn(ctx, cfg, func(conn *pgx.Conn) error {
				var exists bool
				if err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists); err != nil {
					return fmt.Errorf("failed to check if database exists: %w", err)
				}
				if exists {
					slog.Info("Database already exists", "db", cfg.DBName)
					return nil
				}
				if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
					return fmt.Errorf("failed to create database: %w", err)
				}
				slog.Info("Database created", "db", cfg.DBName)
				return nil
			})
			if err != nil {
				return err
			}

			pool, err := database.NewPool(cfg.GetDBConnString(), 2, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := database.Migrate(ctx, pool); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database %s is ready\n", cfg.DBName)
			return nil
		},
	}
}

func newDBResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate the database, discarding every wager",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("refusing to drop %s without --force", cfg.DBName)
			}
			ctx := cmd.Context()
			ident := pgx.Identifier{cfg.DBName}.Sanitize()

			return withServerConn(ctx, cfg, func(conn *pgx.Conn) error {
				// Terminate existing connections to the database
				if _, err := conn.Exec(ctx, `
					SELECT pg_terminate_backend(pg_stat_activity.pid)
					FROM pg_stat_activity
					WHERE pg_stat_activity.datname = $1
					AND pid <> pg_backend_pid()`, cfg.DBName); err != nil {
					slog.Warn("Failed to terminate connections", "error", err)
				}

				if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
					return fmt.Errorf("failed to drop database: %w", err)
				}
				if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
					return fmt.Errorf("failed to create database: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Database %s reset. Run 'fairctl db setup' to apply migrations\n", cfg.DBName)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "confirm the drop")
	return cmd
}

// withServerConn connects to the maintenance database on the configured server
func withServerConn(ctx context.Context, cfg *config.Config, fn func(*pgx.Conn) error) error {
	conn, err := pgx.Connect(ctx, cfg.DBConnStringFor("postgres"))
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)
	return fn(conn)
}
