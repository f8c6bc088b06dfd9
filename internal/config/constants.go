package config

import "time"

const (
	// Configuration file paths
	ConfigPathGame = "configs/game.yaml"
)

// Hash chain store backends
const (
	HashchainStorePostgres = "postgres"
	HashchainStoreFile     = "file"
)

// Defaults
const (
	DefaultPort                     = 8080
	DefaultDBMaxConns               = 20
	DefaultDBMaxConnIdleTime        = 5 * time.Minute
	DefaultDBMaxConnLifetime        = 30 * time.Minute
	DefaultHashchainLength          = 10000
	DefaultHashchainSaveInterval    = 1000
	DefaultHashchainExtendThreshold = 1000
	DefaultGroupRoundDuration       = 30 * time.Second
	DefaultLateJoinSettleWindow     = time.Second
	DefaultRTPCacheTTL              = 30 * time.Second
	DefaultConfigCacheTTL           = time.Minute
	DefaultSettlementMaxRetries     = 3
	DefaultNatsSubjectPrefix        = "provablyfair"
	DefaultEventMaxRetries          = 5
	DefaultEventRetryDelay          = 2 * time.Second
	DefaultEventDeadLetterPath      = "logs/event_deadletter.jsonl"
	DefaultWorkerPoolSize           = 2
	DefaultEventLogRetentionDays    = 90
	DefaultEventLogCleanupEvery     = 24 * time.Hour
)

// Error messages
const (
	ErrMsgInvalidPort          = "invalid PORT value"
	ErrMsgAPIKeyRequired       = "API_KEY environment variable must be set for security"
	ErrMsgInvalidHashchain     = "invalid HASHCHAIN_STORE value"
	ErrMsgFailedToReadGameFile = "failed to read game file"
	ErrMsgFailedToParseGame    = "failed to parse game file"
	ErrMsgInvalidGroupDuration = "group.round_duration must be positive"
)
