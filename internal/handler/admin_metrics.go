package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/osse101/ProvablyFair_Go/internal/metrics"
	"github.com/osse101/ProvablyFair_Go/internal/sse"
)

// AdminMetricsResponse contains JSON-formatted metrics for the admin dashboard
type AdminMetricsResponse struct {
	HTTP       HTTPMetrics       `json:"http"`
	Events     EventMetrics      `json:"events"`
	Settlement SettlementMetrics `json:"settlement"`
	SSE        SSEMetrics        `json:"sse"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

// SettlementMetrics summarizes wager flow per game
type SettlementMetrics struct {
	WagersSettledByStatus map[string]float64 `json:"wagers_settled_by_status"`
	AmountWageredByGame   map[string]float64 `json:"amount_wagered_by_game"`
	AmountWonByGame       map[string]float64 `json:"amount_won_by_game"`
	FailuresByCategory    map[string]float64 `json:"failures_by_category"`
	ChainRemaining        float64            `json:"chain_remaining"`
}

type SSEMetrics struct {
	ClientCount int `json:"client_count"`
}

// AdminMetricsHandler handles admin metrics requests
type AdminMetricsHandler struct {
	gatherer prometheus.Gatherer
	sseHub   *sse.Hub
}

// NewAdminMetricsHandler creates a new admin metrics handler. sseHub may be nil.
func NewAdminMetricsHandler(gatherer prometheus.Gatherer, sseHub *sse.Hub) *AdminMetricsHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &AdminMetricsHandler{gatherer: gatherer, sseHub: sseHub}
}

// HandleGetMetrics returns JSON-formatted metrics from Prometheus
// @Summary Dashboard metrics
// @Tags admin
// @Produce json
// @Success 200 {object} AdminMetricsResponse
// @Router /api/v1/admin/metrics [get]
func (h *AdminMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := gatherMetrics(h.gatherer)
	if err != nil {
		respondServiceError(w, r, ErrMsgGatherMetricsFailed, err)
		return
	}

	if h.sseHub != nil {
		resp.SSE.ClientCount = h.sseHub.ClientCount()
	}

	respondJSON(w, http.StatusOK, resp)
}

func gatherMetrics(gatherer prometheus.Gatherer) (*AdminMetricsResponse, error) {
	metricFamilies, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{
			RequestsTotalByStatus: make(map[string]float64),
		},
		Events: EventMetrics{
			PublishedTotalByType: make(map[string]float64),
			HandlerErrorsByType:  make(map[string]float64),
		},
		Settlement: SettlementMetrics{
			WagersSettledByStatus: make(map[string]float64),
			AmountWageredByGame:   make(map[string]float64),
			AmountWonByGame:       make(map[string]float64),
			FailuresByCategory:    make(map[string]float64),
		},
	}

	for _, mf := range metricFamilies {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			sumCounterBy(mf, metrics.LabelStatus, resp.HTTP.RequestsTotalByStatus)
		case metrics.MetricNameHTTPRequestDuration:
			var count uint64
			var sum float64
			merged := &dto.Histogram{}
			for _, m := range mf.GetMetric() {
				hist := m.GetHistogram()
				if hist == nil {
					continue
				}
				count += hist.GetSampleCount()
				sum += hist.GetSampleSum()
				merged = mergeBuckets(merged, hist)
			}
			if count > 0 {
				resp.HTTP.AvgLatencyMs = sum / float64(count) * 1000
				resp.HTTP.P95LatencyMs = estimateQuantile(merged, 0.95) * 1000
			}
		case metrics.MetricNameHTTPRequestsInFlight:
			for _, m := range mf.GetMetric() {
				resp.HTTP.InFlight += m.GetGauge().GetValue()
			}
		case metrics.MetricNameEventsPublished:
			sumCounterBy(mf, metrics.LabelType, resp.Events.PublishedTotalByType)
		case metrics.MetricNameEventHandlerErrors:
			sumCounterBy(mf, metrics.LabelType, resp.Events.HandlerErrorsByType)
		case metrics.MetricNameWagersSettled:
			sumCounterBy(mf, metrics.LabelStatus, resp.Settlement.WagersSettledByStatus)
		case metrics.MetricNameAmountWagered:
			sumCounterBy(mf, metrics.LabelGame, resp.Settlement.AmountWageredByGame)
		case metrics.MetricNameAmountWon:
			sumCounterBy(mf, metrics.LabelGame, resp.Settlement.AmountWonByGame)
		case metrics.MetricNameSettlementFailures:
			sumCounterBy(mf, metrics.LabelCategory, resp.Settlement.FailuresByCategory)
		case metrics.MetricNameHashChainRemaining:
			for _, m := range mf.GetMetric() {
				resp.Settlement.ChainRemaining = m.GetGauge().GetValue()
			}
		}
	}

	return resp, nil
}

func sumCounterBy(mf *dto.MetricFamily, label string, into map[string]float64) {
	for _, m := range mf.GetMetric() {
		if v := getLabelValue(m, label); v != "" {
			into[v] += m.GetCounter().GetValue()
		}
	}
}

func getLabelValue(m *dto.Metric, labelName string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == labelName {
			return label.GetValue()
		}
	}
	return ""
}

// mergeBuckets adds the cumulative counts of b into a. Every series of one
// histogram vector shares the same bucket layout.
func mergeBuckets(a, b *dto.Histogram) *dto.Histogram {
	total := a.GetSampleCount() + b.GetSampleCount()
	out := &dto.Histogram{SampleCount: &total}
	for i, bb := range b.GetBucket() {
		count := bb.GetCumulativeCount()
		if i < len(a.GetBucket()) {
			count += a.GetBucket()[i].GetCumulativeCount()
		}
		upper := bb.GetUpperBound()
		out.Bucket = append(out.Bucket, &dto.Bucket{CumulativeCount: &count, UpperBound: &upper})
	}
	return out
}

// estimateQuantile approximates the given quantile from a histogram
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	totalCount := hist.GetSampleCount()
	if totalCount == 0 {
		return 0
	}

	targetCount := float64(totalCount) * quantile
	buckets := hist.GetBucket()
	for _, bucket := range buckets {
		if float64(bucket.GetCumulativeCount()) >= targetCount {
			return bucket.GetUpperBound()
		}
	}

	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}
