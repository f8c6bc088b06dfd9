package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ProvablyFair_Go/internal/metrics"
	"github.com/osse101/ProvablyFair_Go/internal/sse"
)

func TestHandleGetMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	settled := prometheus.NewCounterVec(prometheus.CounterOpts{Name: metrics.MetricNameWagersSettled, Help: "h"},
		[]string{metrics.LabelGame, metrics.LabelStatus})
	wagered := prometheus.NewCounterVec(prometheus.CounterOpts{Name: metrics.MetricNameAmountWagered, Help: "h"},
		[]string{metrics.LabelGame})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: metrics.MetricNameHTTPRequestDuration, Help: "h", Buckets: []float64{.01, .1, 1},
	}, []string{metrics.LabelPath})
	remaining := prometheus.NewGauge(prometheus.GaugeOpts{Name: metrics.MetricNameHashChainRemaining, Help: "h"})
	reg.MustRegister(settled, wagered, latency, remaining)

	settled.WithLabelValues("RR (Solo)", "won").Add(3)
	settled.WithLabelValues("RR (Group)", "won").Add(2)
	settled.WithLabelValues("RR (Solo)", "lost").Add(1)
	wagered.WithLabelValues("RR (Solo)").Add(40)
	for i := 0; i < 19; i++ {
		latency.WithLabelValues("/a").Observe(0.005)
	}
	latency.WithLabelValues("/b").Observe(0.5)
	remaining.Set(1234)

	hub := sse.NewHub()
	rec := httptest.NewRecorder()
	NewAdminMetricsHandler(reg, hub).HandleGetMetrics(rec, httptest.NewRequest(http.MethodGet, "/admin/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AdminMetricsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, map[string]float64{"won": 5, "lost": 1}, resp.Settlement.WagersSettledByStatus)
	assert.Equal(t, 40.0, resp.Settlement.AmountWageredByGame["RR (Solo)"])
	assert.Equal(t, 1234.0, resp.Settlement.ChainRemaining)
	assert.InDelta(t, (19*0.005+0.5)/20*1000, resp.HTTP.AvgLatencyMs, 1e-6)
	assert.Equal(t, 10.0, resp.HTTP.P95LatencyMs, "19 of 20 samples sit in the 10ms bucket")
	assert.Zero(t, resp.SSE.ClientCount)
}

func TestHandleGetMetrics_NilHub(t *testing.T) {
	rec := httptest.NewRecorder()
	NewAdminMetricsHandler(prometheus.NewRegistry(), nil).HandleGetMetrics(rec, httptest.NewRequest(http.MethodGet, "/admin/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"client_count":0`)
}
