package wager

import "time"

// ============================================================================
// Group Round Timing
// ============================================================================

// DefaultGroupRoundDuration is how long a group round accepts wagers
const DefaultGroupRoundDuration = 30 * time.Second

// DefaultLateJoinSettleWindow is the distance to the deadline under which a
// join also schedules the settle itself
const DefaultLateJoinSettleWindow = time.Second

// GroupRoundNonceRange bounds the nonce drawn for a new group round
const GroupRoundNonceRange = 1_000_000

// ============================================================================
// Settlement Retry
// ============================================================================

// DefaultMaxRetries bounds how often a settlement is retried after a
// serialization failure or deadlock
const DefaultMaxRetries = 3

// DefaultRetryBaseDelay is the first backoff interval between attempts
const DefaultRetryBaseDelay = 25 * time.Millisecond

// DefaultRetryMaxDelay caps a single backoff interval
const DefaultRetryMaxDelay = 500 * time.Millisecond

// ============================================================================
// Defaults
// ============================================================================

// DefaultTargetMultiplier is stored on a wager when no configured value is available
const DefaultTargetMultiplier = 1

// DefaultHistoryLimit is the number of game history entries returned with player stats
const DefaultHistoryLimit = 20

// groupRoundBet is the unit bet a group round is played with; each wager is
// paid bet * PayoutMultiplier
const groupRoundBet = 1

// clock tags, used by tests to trap specific timer calls
const (
	clockTagWager    = "wager"
	clockTagLateJoin = "late-join"
)

// ============================================================================
// Log Messages
// ============================================================================

// Info log messages
const (
	LogMsgPlaceSoloWagerCalled    = "PlaceSoloWager called"
	LogMsgPlaceGroupWagerCalled   = "PlaceGroupWager called"
	LogMsgSettleGroupRoundCalled  = "SettleGroupRound called"
	LogMsgSoloWagerSettled        = "Solo wager settled"
	LogMsgGroupWagerAccepted      = "Group wager accepted"
	LogMsgGroupRoundCreated       = "Group round created"
	LogMsgGroupRoundSettled       = "Group round settled"
	LogMsgGroupRoundAlreadyClosed = "Group round already completed, skipping"
	LogMsgGroupRoundClaimedByPeer = "Group round was settled by another finalizer"
	LogMsgLateJoinSettleScheduled = "Late join, settle scheduled at deadline"
	LogMsgNoPlayerStats           = "No stats recorded for player"
	LogMsgShuttingDownWager       = "Shutting down wager service"
	LogMsgWagerShutdownDone       = "Wager service shutdown complete"
	LogMsgWagerShutdownForced     = "Wager service shutdown forced by context cancellation"
)

// Warn/Error log messages
const (
	LogMsgSettlementRetry       = "Settlement conflicted, retrying"
	LogMsgSettlementFailed      = "Settlement rolled back"
	LogMsgDefaultTargetFallback = "Default target unavailable, using built-in value"
	LogMsgLateSettleFailed      = "Late join settle failed"
	LogMsgPublisherMissing      = "Event publisher not configured, event dropped"
)

// ============================================================================
// Error Context Messages
// ============================================================================

const (
	ErrContextFailedToBeginTx           = "failed to begin transaction"
	ErrContextFailedToCommitTx          = "failed to commit transaction"
	ErrContextFailedToDebit             = "failed to debit balance"
	ErrContextFailedToCredit            = "failed to credit balance"
	ErrContextFailedToGetNonce          = "failed to get next nonce"
	ErrContextFailedToGenerateSeeds     = "failed to generate seeds"
	ErrContextFailedToIssueChainLink    = "failed to issue hash chain link"
	ErrContextFailedToInsertWager       = "failed to insert wager"
	ErrContextFailedToSettleWager       = "failed to settle wager"
	ErrContextFailedToRecordStats       = "failed to record player stats"
	ErrContextFailedToLockRounds        = "failed to lock group round creation"
	ErrContextFailedToGetOpenRound      = "failed to get open group round"
	ErrContextFailedToGetExpiredRounds  = "failed to get expired group rounds"
	ErrContextFailedToCreateRound       = "failed to create group round"
	ErrContextFailedToGetRound          = "failed to get group round"
	ErrContextFailedToCloseRound        = "failed to transition group round"
	ErrContextFailedToGetRoundWagers    = "failed to get group round wagers"
	ErrContextFailedToSaveRoundResult   = "failed to save group round result"
	ErrContextFailedToGetWagers         = "failed to get wagers"
	ErrContextFailedToGetPlayerStats    = "failed to get player stats"
	ErrContextFailedToResolveSubBalance = "failed to resolve sub-balance"
)
