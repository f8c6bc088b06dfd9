package postgres

import "time"

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeCheckViolation fires when a sub-balance CHECK (x >= 0) would be broken
	PgErrorCodeCheckViolation = "23514"
	// PgErrorCodeSerializationFailure is raised under SERIALIZABLE/REPEATABLE READ contention
	PgErrorCodeSerializationFailure = "40001"
	// PgErrorCodeDeadlockDetected is raised when postgres breaks a lock cycle
	PgErrorCodeDeadlockDetected = "40P01"
)

// Advisory lock keys. Transaction scoped; released on commit or rollback.
const (
	advisoryLockGroupRound = 7_261_001
	advisoryLockHashChain  = 7_261_002
)

// advisoryLockChainIssuer is session scoped and held for the issuer's lifetime
const advisoryLockChainIssuer = 7_261_003

// issuerUnlockTimeout bounds releasing the issuer lock at shutdown
const issuerUnlockTimeout = 5 * time.Second

// Default page sizes
const (
	DefaultWagerLimit   = 50
	MaxWagerLimit       = 500
	DefaultHistoryLimit = 20
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToBeginWagerTx      = "failed to begin wager transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToAcquireLock       = "failed to acquire advisory lock"
	ErrMsgIssuerHeld                = "another process is issuing chain links"
)

// Error Messages - Balance Operations
const (
	ErrMsgUnknownSubBalance    = "unknown sub-balance"
	ErrMsgFailedToDebit        = "failed to debit balance"
	ErrMsgFailedToCredit       = "failed to credit balance"
	ErrMsgFailedToGetBalance   = "failed to get balance"
	ErrMsgFailedToSeedBalance  = "failed to seed balance"
	ErrMsgFailedToAdvanceNonce = "failed to advance nonce"
)

// Error Messages - Wager Operations
const (
	ErrMsgFailedToInsertWager   = "failed to insert wager"
	ErrMsgFailedToGetWager      = "failed to get wager"
	ErrMsgFailedToListWagers    = "failed to list wagers"
	ErrMsgFailedToSettleWager   = "failed to settle wager"
	ErrMsgFailedToRecordStats   = "failed to record player stats"
	ErrMsgFailedToGetStats      = "failed to get player stats"
	ErrMsgFailedToEncodeResult  = "failed to encode round result"
	ErrMsgFailedToDecodeResult  = "failed to decode round result"
	ErrMsgFailedToAggregateRTP  = "failed to aggregate rtp"
	ErrMsgFailedToGetGameStats  = "failed to get game stats"
	ErrMsgFailedToGetConfig     = "failed to get configuration"
	ErrMsgFailedToSetConfig     = "failed to set configuration"
	ErrMsgFailedToListConfig    = "failed to list configuration"
	ErrMsgNegativeNonce         = "stored nonce is negative"
	ErrMsgFailedToScanRoundLink = "failed to scan round chain link"
)

// Error Messages - Group Round Operations
const (
	ErrMsgFailedToCreateRound = "failed to create group round"
	ErrMsgFailedToGetRound    = "failed to get group round"
	ErrMsgFailedToUpdateRound = "failed to update group round"
)

// Error Messages - Hash Chain Operations
const (
	ErrMsgFailedToLoadChain     = "failed to load hash chain"
	ErrMsgFailedToAppendSegment = "failed to append hash chain segment"
	ErrMsgFailedToCopyLinks     = "failed to copy hash chain links"
	ErrMsgFailedToSaveNext      = "failed to save hash chain pointer"
	ErrMsgSegmentOverlap        = "segment does not start at the end of the chain"
)
