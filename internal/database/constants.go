package database

import "time"

// DefaultMinConnections is both the pool floor and the smallest MaxConns
// NewPool accepts.
const DefaultMinConnections = 2

// HealthCheckPeriod is how often idle pool connections are probed
const HealthCheckPeriod = 30 * time.Second

const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgFailedToApplyMigrations = "failed to apply migrations"

	LogMsgConnected        = "Connected to the settlement database"
	LogMsgAppliedMigration = "Applied migration"
	LogMsgSchemaUpToDate   = "Database schema up to date"
)
