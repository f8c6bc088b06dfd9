package eventlog

import "github.com/osse101/ProvablyFair_Go/internal/event"

// LoggedEventTypes are the settlement events persisted to the audit log
var LoggedEventTypes = []event.Type{
	event.WagerSettled,
	event.GroupRoundOpened,
	event.GroupRoundCompleted,
	event.ChainExtended,
	event.ChainLow,
}

// JSON payload field keys
const (
	PayloadKeyUserID = "userId"
	PayloadKeyGameID = "gameId"
)

// Query bounds
const (
	DefaultQueryLimit = 50
	MaxQueryLimit     = 500
)

// Log messages - service events
const (
	LogMsgEventPayloadNotObject = "Event payload is not an object, skipping log"
	LogMsgFailedToLogEvent      = "Failed to log event to database"
	LogMsgEventLogged           = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobDisabled  = "Event log retention disabled, skipping cleanup"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)
