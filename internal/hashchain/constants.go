package hashchain

import "time"

// ============================================================================
// Defaults
// ============================================================================

const (
	DefaultSegmentLength   = 10000
	DefaultSaveInterval    = 1000
	DefaultExtendThreshold = 1000
)

// ============================================================================
// File Store
// ============================================================================

const (
	ChainFileName      = "hashChain.json"
	FinalHashFileName  = "finalHash.json"
	CheckpointFileName = "hashChain.partial.json"
	filePermissions    = 0o600
	dirPermissions     = 0o750
)

// extendTimeout bounds a background extension job
const extendTimeout = 2 * time.Minute

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgChainGenerated    = "Generated hash chain segment"
	LogMsgChainLoaded       = "Loaded hash chain"
	LogMsgChainLow          = "Hash chain running low, requesting extension"
	LogMsgChainExtendFailed = "Hash chain extension failed"
	LogMsgChainExhausted    = "Hash chain exhausted, extending inline"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgFailedToSaveCheckpoint = "failed to save chain checkpoint"
	ErrMsgFailedToLoadChain      = "failed to load hash chain"
	ErrMsgFailedToAppendSegment  = "failed to append chain segment"
	ErrMsgFailedToSaveNext       = "failed to persist issued pointer"
	ErrMsgFailedToWriteFile      = "failed to write chain file"
	ErrMsgSegmentOverlap         = "segment does not start at the end of the chain"
	ErrMsgIssuerClaimed          = "failed to claim the chain issuer role"
)
