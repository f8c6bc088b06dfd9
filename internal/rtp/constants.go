package rtp

import "time"

// CacheSchemaVersion is bumped when RTPStats changes shape so stale entries
// are dropped instead of served
const CacheSchemaVersion = "1.0"

// DefaultCacheSize bounds the number of distinct filters cached
const DefaultCacheSize = 256

// DefaultCacheTTL is how long an aggregate is served before being recomputed
const DefaultCacheTTL = 30 * time.Second

// MaxTimeRangeDays caps the look-back window of a filter
const MaxTimeRangeDays = 3650

// Log messages
const (
	LogMsgRTPCacheHit         = "RTP served from cache"
	LogMsgRTPCacheInvalidated = "RTP cache invalidated"
)

// Error context messages
const (
	ErrContextFailedToAggregate = "failed to aggregate settled wagers"
	ErrContextFailedToGameStats = "failed to get game stats"
	ErrMsgInvalidTimeRange      = "time range must be between 0 and 3650 days"
)
