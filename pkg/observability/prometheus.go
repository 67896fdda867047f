package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks records pipeline, cache and HTTP events as Prometheus
// metrics. It implements PipelineHooks, CacheHooks and HTTPHooks.
type PrometheusHooks struct {
	StagesTotal   *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	StepsTotal    *prometheus.CounterVec
	CurvesAdded   prometheus.Histogram

	CacheEventsTotal *prometheus.CounterVec
	CacheSetBytes    *prometheus.HistogramVec

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

// NewPrometheusHooks creates the metrics and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		StagesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "venntower_pipeline_stages_total",
				Help: "Pipeline stages run, by stage, strategy and result",
			},
			[]string{"stage", "strategy", "result"}, // stage: decompose, recompose, render
		),
		StageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "venntower_pipeline_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"stage"},
		),
		StepsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "venntower_pipeline_steps_total",
				Help: "Decomposition steps produced, by strategy",
			},
			[]string{"strategy"},
		),
		CurvesAdded: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "venntower_recomposition_curves",
				Help:    "Curves drawn by a recomposition",
				Buckets: prometheus.LinearBuckets(1, 2, 10),
			},
		),
		CacheEventsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "venntower_cache_events_total",
				Help: "Cache lookups and writes, by key type and event",
			},
			[]string{"key_type", "event"}, // hit, miss, set
		),
		CacheSetBytes: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "venntower_cache_set_bytes",
				Help:    "Size of cache writes in bytes",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"key_type"},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "venntower_http_requests_total",
				Help: "HTTP requests served, by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "venntower_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "venntower_http_requests_in_flight",
				Help: "HTTP requests currently being served",
			},
		),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnDecomposeStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnDecomposeComplete(_ context.Context, strategy string, steps int, d time.Duration, err error) {
	h.StagesTotal.WithLabelValues("decompose", strategy, result(err)).Inc()
	h.StageDuration.WithLabelValues("decompose").Observe(d.Seconds())
	if err == nil {
		h.StepsTotal.WithLabelValues(strategy).Add(float64(steps))
	}
}

func (h *PrometheusHooks) OnRecomposeStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnRecomposeComplete(_ context.Context, strategy string, curves int, d time.Duration, err error) {
	h.StagesTotal.WithLabelValues("recompose", strategy, result(err)).Inc()
	h.StageDuration.WithLabelValues("recompose").Observe(d.Seconds())
	if err == nil {
		h.CurvesAdded.Observe(float64(curves))
	}
}

func (h *PrometheusHooks) OnRenderStart(context.Context, []string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	h.StagesTotal.WithLabelValues("render", "", result(err)).Inc()
	h.StageDuration.WithLabelValues("render").Observe(d.Seconds())
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheEventsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheEventsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.CacheEventsTotal.WithLabelValues(keyType, "set").Inc()
	h.CacheSetBytes.WithLabelValues(keyType).Observe(float64(size))
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string) {
	h.HTTPRequestsInFlight.Inc()
}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.HTTPRequestsInFlight.Dec()
	h.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
