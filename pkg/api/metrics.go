package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API. Each instance owns its
// registry, so several servers can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Engine operation metrics
	engineOperationsTotal   *prometheus.CounterVec
	engineOperationDuration *prometheus.HistogramVec
	datasetTerritories      prometheus.Gauge
	datasetRecords          prometheus.Gauge

	cacheLookupsTotal *prometheus.CounterVec
	batchJobsTotal    *prometheus.CounterVec
	batchPointsTotal  prometheus.Counter

	authRequestsTotal *prometheus.CounterVec
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates the metrics on a fresh registry that also carries the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapcode_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mapcode_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		httpRequestsInFlight: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mapcode_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		engineOperationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapcode_engine_operations_total",
				Help: "Total number of encode, decode and parse operations",
			},
			[]string{"operation", "status"},
		),
		engineOperationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mapcode_engine_operation_duration_seconds",
				Help:    "Engine operation duration in seconds",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
			[]string{"operation"},
		),
		datasetTerritories: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "mapcode_dataset_territories",
				Help: "Number of territories in the loaded dataset",
			},
		),
		datasetRecords: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "mapcode_dataset_records",
				Help: "Number of boundary records in the loaded dataset",
			},
		),

		cacheLookupsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapcode_cache_lookups_total",
				Help: "Decode cache lookups by result",
			},
			[]string{"result"},
		),
		batchJobsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapcode_batch_jobs_total",
				Help: "Finished batch jobs by status",
			},
			[]string{"status"},
		),
		batchPointsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "mapcode_batch_points_total",
				Help: "Points encoded by batch jobs",
			},
		),

		authRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapcode_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),
		healthChecksTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapcode_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func outcome(success bool) string {
	if success {
		return statusSuccess
	}
	return statusError
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordEngineOperation records an encode, decode or parse.
func (m *Metrics) RecordEngineOperation(operation string, success bool, duration time.Duration) {
	m.engineOperationsTotal.WithLabelValues(operation, outcome(success)).Inc()
	m.engineOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDatasetSize publishes the size of the loaded dataset.
func (m *Metrics) SetDatasetSize(territories, records int) {
	m.datasetTerritories.Set(float64(territories))
	m.datasetRecords.Set(float64(records))
}

// RecordCacheLookup records a decode cache hit or miss.
func (m *Metrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordBatchJob records a finished batch job.
func (m *Metrics) RecordBatchJob(status string, points int) {
	m.batchJobsTotal.WithLabelValues(status).Inc()
	m.batchPointsTotal.Add(float64(points))
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	m.authRequestsTotal.WithLabelValues(outcome(success)).Inc()
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	m.healthChecksTotal.WithLabelValues(outcome(success)).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// InstrumentAuthMiddleware instruments the authentication middleware
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		auth := next(h)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasAPIKey := r.Header.Get("X-API-Key") != ""
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			auth.ServeHTTP(rw, r)
			if hasAPIKey {
				m.RecordAuthRequest(rw.statusCode != http.StatusUnauthorized)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
