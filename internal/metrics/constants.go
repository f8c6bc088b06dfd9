package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Settlement metric names
const (
	MetricNameWagersPlaced        = "wagers_placed_total"
	MetricNameWagersSettled       = "wagers_settled_total"
	MetricNameAmountWagered       = "amount_wagered_total"
	MetricNameAmountWon           = "amount_won_total"
	MetricNameSettlementDuration  = "settlement_duration_seconds"
	MetricNameSettlementRetries   = "settlement_retries_total"
	MetricNameSettlementFailures  = "settlement_failures_total"
	MetricNameGroupRoundsOpened   = "group_rounds_opened_total"
	MetricNameGroupRoundsSettled  = "group_rounds_settled_total"
	MetricNameGroupRoundWagers    = "group_round_wagers"
	MetricNameHashChainRemaining  = "hash_chain_remaining_links"
	MetricNameHashChainExtensions = "hash_chain_extensions_total"

	MetricNameAuthFailures = "http_auth_failures_total"
	MetricNameRateLimited  = "http_rate_limited_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Settlement metric help text
const (
	HelpTextWagersPlaced        = "Total number of wagers accepted"
	HelpTextWagersSettled       = "Total number of wagers settled, by outcome"
	HelpTextAmountWagered       = "Total amount wagered on settled wagers"
	HelpTextAmountWon           = "Total amount paid out on settled wagers"
	HelpTextSettlementDuration  = "Settlement transaction latency in seconds"
	HelpTextSettlementRetries   = "Settlement attempts retried after a concurrency conflict"
	HelpTextSettlementFailures  = "Settlements that rolled back, by error category"
	HelpTextGroupRoundsOpened   = "Total number of group rounds opened"
	HelpTextGroupRoundsSettled  = "Total number of group rounds settled"
	HelpTextGroupRoundWagers    = "Wagers settled per group round"
	HelpTextHashChainRemaining  = "Hash chain links that can still be issued"
	HelpTextHashChainExtensions = "Hash chain segments appended"

	HelpTextAuthFailures = "Requests rejected for a missing or wrong API key"
	HelpTextRateLimited  = "Requests rejected by the per-IP rate limiter, by scope"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelGame     = "game"
	LabelCurrency = "currency"
	LabelCategory = "category"
	LabelScope    = "scope"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SettlementLatencyBuckets covers a settlement transaction, retries included
var SettlementLatencyBuckets = []float64{.0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

// GroupRoundWagerBuckets counts wagers attached to one group round
var GroupRoundWagerBuckets = []float64{1, 2, 5, 10, 25, 50, 100, 250}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)

// unmatchedRoute labels requests that no route matched
const unmatchedRoute = "unmatched"
