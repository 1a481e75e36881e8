package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/qcalc/internal/logging"
	"github.com/agbru/qcalc/internal/qanalog"
)

const metricsNamespace = "qcalc"

// Metrics holds the Prometheus collectors of one server. Each instance owns
// its registry so that several servers (and tests) can coexist in a process.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestsTotal   prometheus.Counter
	activeRequests  prometheus.Gauge
	requestDuration prometheus.Histogram
	responses       *prometheus.CounterVec
	computations    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests received.",
		}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_requests",
			Help:      "Number of HTTP requests being served.",
		}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "responses_total",
			Help:      "HTTP responses by status code.",
		}, []string{"code"}),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "computations_total",
			Help:      "Computations by function and outcome.",
		}, []string{"function", "outcome"}),
	}

	jordanCache := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "jordan_cache_entries",
		Help:      "Number of memoized q-Jordan values.",
	}, func() float64 { return float64(qanalog.DefaultJordanCache().Len()) })

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.activeRequests,
		m.requestDuration,
		m.responses,
		m.computations,
		jordanCache,
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests records the start of a request.
func (m *Metrics) IncrementActiveRequests() {
	m.requestsTotal.Inc()
	m.activeRequests.Inc()
}

// DecrementActiveRequests records the end of a request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveRequest records the latency and status code of a served request.
func (m *Metrics) ObserveRequest(code int, d time.Duration) {
	m.requestDuration.Observe(d.Seconds())
	m.responses.WithLabelValues(strconv.Itoa(code)).Inc()
}

// ObserveComputation counts one computation of function with outcome
// "ok", "invalid", "timeout", "canceled" or "error".
func (m *Metrics) ObserveComputation(function, outcome string) {
	m.computations.WithLabelValues(function, outcome).Inc()
}

// WritePrometheus serves the registry in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks active requests, latency and status codes.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r)
		s.metrics.ObserveRequest(rec.code, time.Since(start))
	}
}

// handleMetrics serves GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Info("rejected metrics request", logging.String("method", r.Method), logging.String("path", r.URL.Path))
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}
