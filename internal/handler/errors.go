package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgRequestTooLarge       = "Request body too large"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidTimeRange  = "Invalid time_range_days parameter"
	ErrMsgInvalidWagerID    = "Invalid wager ID"

	// Wager error messages
	ErrMsgPlaceWagerFailed    = "Failed to place wager"
	ErrMsgGetWagersFailed     = "Failed to get wagers"
	ErrMsgGroupStatusFailed   = "Failed to get group round status"
	ErrMsgGroupResultFailed   = "Failed to get group round result"
	ErrMsgSettleRoundFailed   = "Failed to settle group round"
	ErrMsgPlayerStatsFailed   = "Failed to get player stats"
	ErrMsgRoundAlreadySettled = "Group round was already settled"

	// Fairness error messages
	ErrMsgVerifyFailed = "Failed to verify"

	// Reporting error messages
	ErrMsgRTPFailed       = "Failed to compute RTP"
	ErrMsgGameStatsFailed = "Failed to get game stats"

	// Configuration error messages
	ErrMsgGetConfigFailed = "Failed to get configuration"
	ErrMsgSetConfigFailed = "Failed to set configuration"

	// Admin error messages
	ErrMsgGetEventsFailed     = "Failed to retrieve events"
	ErrMsgGatherMetricsFailed = "Failed to gather metrics"
	ErrMsgInvalidSince        = "Invalid 'since' timestamp format (use RFC3339)"
	ErrMsgInvalidUntil        = "Invalid 'until' timestamp format (use RFC3339)"
	ErrMsgInvalidBeforeID     = "Invalid 'before_id' (must be a positive integer)"
)

// Success messages for API responses
const (
	MsgConfigUpdatedSuccess = "Configuration updated successfully"
)
