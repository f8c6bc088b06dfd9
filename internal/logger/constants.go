package logger

// Accepted LOG_LEVEL and LOG_FORMAT values. Level matching is
// case-insensitive.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Environment names. "development" is accepted as an alias for dev.
const (
	EnvironmentDev        = "dev"
	EnvironmentProduction = "prod"
	EnvironmentTest       = "test"

	environmentDevAlias = "development"
)

// Attributes stamped on every record, plus the per-request id
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
