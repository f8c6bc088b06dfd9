package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// AllEvents subscribes a handler to every event type
const AllEvents Type = "*"

// Retry configuration constants
const (
	// RetryMaxAttempts is the default maximum number of retry attempts
	RetryMaxAttempts = 5

	// RetryMultiplier doubles the delay between attempts: 2s, 4s, 8s, 16s, 32s
	RetryMultiplier = 2.0
)

// Dead letter file configuration
const (
	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0o644

	// maxDeadLetterLine bounds a single JSONL entry when reading the file back
	maxDeadLetterLine = 1 << 20
)

// NATS forwarding
const (
	// DefaultSubjectPrefix is prepended to the event type to form the NATS subject
	DefaultSubjectPrefix = "provablyfair"
)

// Log message constants
const (
	LogMsgEventPublishFailed   = "Event publish failed, queuing for retry"
	LogMsgEventRetryExhausted  = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed     = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded  = "Event retry succeeded"
	LogMsgEventDroppedShutdown = "Event dropped during shutdown"
	LogMsgShutdownTimeout      = "Resilient publisher shutdown timed out"
	LogMsgDeadLetterWritten    = "Event written to dead-letter"
	LogMsgForwardFailed        = "Failed to forward event to NATS"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)
