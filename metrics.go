package aurora

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request
// lifecycle: totals, latency, in-flight gauge, gate and rate-limiter
// rejections, aborts and classified errors. It is safe for concurrent
// use, and a nil collector is a no-op so the client never branches on
// metrics being configured.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec

	gateRejections  *prometheus.CounterVec
	rateLimitDenied *prometheus.CounterVec
	abortsTotal     *prometheus.CounterVec

	errorsTotal *prometheus.CounterVec
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_requests_total",
				Help: "Total number of HTTP requests dispatched",
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aurora_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "aurora_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
			[]string{"method", "endpoint"},
		),
		gateRejections: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_gate_rejections_total",
				Help: "Total number of calls rejected by the concurrency gate",
			},
			[]string{"method"},
		),
		rateLimitDenied: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_rate_limit_denials_total",
				Help: "Total number of calls denied by the rate limiter",
			},
			[]string{"method"},
		),
		abortsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_aborts_total",
				Help: "Total number of requests rejected by a fired abort signal",
			},
			[]string{"method", "endpoint"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_errors_total",
				Help: "Total number of classified request errors",
			},
			[]string{"type", "method", "endpoint"},
		),
	}
}

// RecordRequest records request count and duration.
func (mc *MetricsCollector) RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	if mc == nil {
		return
	}

	statusCodeStr := strconv.Itoa(statusCode)
	mc.requestsTotal.WithLabelValues(method, statusCodeStr, endpoint).Inc()
	mc.requestDuration.WithLabelValues(method, statusCodeStr, endpoint).Observe(duration.Seconds())
}

// RecordRequestStart increments in-flight gauge.
func (mc *MetricsCollector) RecordRequestStart(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// RecordRequestEnd decrements in-flight gauge.
func (mc *MetricsCollector) RecordRequestEnd(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(method, endpoint).Dec()
}

// RecordGateRejection counts a concurrency-gate rejection.
func (mc *MetricsCollector) RecordGateRejection(method string) {
	if mc == nil {
		return
	}

	mc.gateRejections.WithLabelValues(method).Inc()
}

// RecordRateLimitDenial counts a rate-limiter denial.
func (mc *MetricsCollector) RecordRateLimitDenial(method string) {
	if mc == nil {
		return
	}

	mc.rateLimitDenied.WithLabelValues(method).Inc()
}

// RecordAbort counts a request rejected by a fired abort signal.
func (mc *MetricsCollector) RecordAbort(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.abortsTotal.WithLabelValues(method, endpoint).Inc()
}

// RecordError counts a classified request error by type.
func (mc *MetricsCollector) RecordError(errorType, method, endpoint string) {
	if mc == nil {
		return
	}

	mc.errorsTotal.WithLabelValues(errorType, method, endpoint).Inc()
}
