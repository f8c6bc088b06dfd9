package gameconfig

import "time"

// Configuration keys
const (
	KeyDefaultTarget = "default_target"
)

// DefaultTarget is used when default_target has never been set
const DefaultTarget = 1

// Local cache sizing
const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = time.Minute
)

// SharedKeyPrefix namespaces configuration values in the shared cache
const SharedKeyPrefix = "provablyfair:config:"

// Redis client tuning
const (
	RedisDialTimeout  = 5 * time.Second
	RedisReadTimeout  = 3 * time.Second
	RedisWriteTimeout = 3 * time.Second
	RedisPingTimeout  = 10 * time.Second
)

// Log messages
const (
	LogMsgConfigCacheHit     = "Configuration served from local cache"
	LogMsgSharedCacheHit     = "Configuration served from shared cache"
	LogMsgSharedCacheFailed  = "Shared configuration cache unavailable, falling back to database"
	LogMsgConfigUpdated      = "Configuration updated"
	LogMsgInvalidTarget      = "Stored default target is invalid"
	LogMsgRedisConnected     = "Connected to Redis"
	LogMsgSharedCacheCleared = "Shared configuration cache entry removed"
)

// Error context messages
const (
	ErrContextFailedToGetConfig    = "failed to get configuration"
	ErrContextFailedToSetConfig    = "failed to set configuration"
	ErrContextFailedToListConfig   = "failed to list configuration"
	ErrContextFailedToParseRedis   = "failed to parse redis url"
	ErrContextFailedToConnectRedis = "failed to connect to redis"
	ErrMsgEmptyKey                 = "configuration key is required"
	ErrMsgInvalidTarget            = "default_target must be a positive number"
)
