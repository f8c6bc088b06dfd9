package bootstrap

// File modes for the log and dead-letter directories and session log files
const (
	DirPermission     = 0755
	LogFilePermission = 0644
)

// Session log files are named session_<start time>.log. Only the newest
// LogFileRetentionCount older sessions survive a restart.
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	LogFileRetentionCount  = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting provably fair service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// Event system
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgDeadLetterBacklog              = "Undelivered events found in dead-letter file"
	LogMsgDeadLetterUnreadable           = "Could not read dead-letter file"
)

// Repositories and Services
const (
	LogMsgHashchainStoreSelected = "Hash chain store selected"
	LogMsgGameSettingsLoaded     = "Game settings loaded"
	LogMsgGameFileMissing        = "Game file not found, using built-in defaults"
	LogMsgRedisDisabled          = "REDIS_URL not set, configuration cache is process-local"
	LogMsgHashchainReady         = "Hash chain ready"

	ErrMsgFailedOpenChainStore = "failed to open hash chain store"
	ErrMsgFailedLoadGameFile   = "failed to load game file"
	ErrMsgInvalidOutcomeConfig = "invalid outcome configuration"
	ErrMsgFailedConnectRedis   = "failed to connect to redis"
	ErrMsgFailedInitHashchain  = "failed to initialize hash chain"
)

// Event Handler Configuration
// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgNatsForwarderRegistered    = "NATS forwarder registered"
	LogMsgSSESubscriberRegistered    = "SSE subscriber registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
)

// Shutdown Messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgGroupWorkerShutdownFailed  = "Group round worker shutdown failed"
	LogMsgWagerShutdownFailed        = "Wager service shutdown failed"
	LogMsgRedisCloseFailed           = "Redis close failed"
	LogMsgShutdownComplete           = "Shutdown complete"
)
