package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Security Metrics
var (
	AuthFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAuthFailures,
			Help: HelpTextAuthFailures,
		},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRateLimited,
			Help: HelpTextRateLimited,
		},
		[]string{LabelScope},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Settlement Metrics
var (
	WagersPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWagersPlaced,
			Help: HelpTextWagersPlaced,
		},
		[]string{LabelGame, LabelCurrency},
	)

	WagersSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWagersSettled,
			Help: HelpTextWagersSettled,
		},
		[]string{LabelGame, LabelStatus},
	)

	AmountWagered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAmountWagered,
			Help: HelpTextAmountWagered,
		},
		[]string{LabelGame},
	)

	AmountWon = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAmountWon,
			Help: HelpTextAmountWon,
		},
		[]string{LabelGame},
	)

	SettlementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSettlementDuration,
			Help:    HelpTextSettlementDuration,
			Buckets: SettlementLatencyBuckets,
		},
		[]string{LabelGame},
	)

	SettlementRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSettlementRetries,
			Help: HelpTextSettlementRetries,
		},
		[]string{LabelGame},
	)

	SettlementFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSettlementFailures,
			Help: HelpTextSettlementFailures,
		},
		[]string{LabelGame, LabelCategory},
	)
)

// Group Round Metrics
var (
	GroupRoundsOpened = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGroupRoundsOpened,
			Help: HelpTextGroupRoundsOpened,
		},
	)

	GroupRoundsSettled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGroupRoundsSettled,
			Help: HelpTextGroupRoundsSettled,
		},
	)

	GroupRoundWagers = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameGroupRoundWagers,
			Help:    HelpTextGroupRoundWagers,
			Buckets: GroupRoundWagerBuckets,
		},
	)
)

// Hash Chain Metrics
var (
	HashChainRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHashChainRemaining,
			Help: HelpTextHashChainRemaining,
		},
	)

	HashChainExtensions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameHashChainExtensions,
			Help: HelpTextHashChainExtensions,
		},
	)
)
