package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerQueueFull = "Worker queue full, job dropped"
)

// JobTimeout bounds a single pool job
const JobTimeout = 2 * time.Minute

// ============================================================================
// Log Messages - Group Round Worker
// ============================================================================

// Log messages for group round worker operations
const (
	LogMsgFailedToCheckRoundsOnStartup = "Failed to check group rounds on startup"
	LogMsgSchedulingRoundSettle        = "Scheduling group round settle"
	LogMsgSettlingScheduledRound       = "Settling scheduled group round"
	LogMsgFailedToSettleRound          = "Failed to settle group round"
	LogMsgRoundSettledByWorker         = "Group round settled by worker"
	LogMsgRoundNotYetExpired           = "Group round not yet expired, rescheduling"
	LogMsgInvalidRoundPayload          = "Invalid group round payload"
)

// ============================================================================
// Log Messages - Chain Extension Worker
// ============================================================================

// Log messages for chain extension worker operations
const (
	LogMsgChainExtensionQueued    = "Hash chain extension queued"
	LogMsgChainExtensionSkipped   = "Hash chain extension already pending"
	LogMsgChainExtensionFailed    = "Hash chain extension failed"
	LogMsgChainExtensionCompleted = "Hash chain extension completed"
)

// ============================================================================
// Timing
// ============================================================================

const (
	// SettleRetryDelay is how long to wait before retrying a round that was
	// not yet expired when its timer fired
	SettleRetryDelay = 500 * time.Millisecond

	// SettleTimeout bounds one settle attempt triggered by a timer
	SettleTimeout = 30 * time.Second

	clockTagGroupRound = "group_round_worker"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
