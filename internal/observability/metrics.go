// Package observability collects Prometheus metrics for the HTTP
// surface, the MongoDB repositories and the Redis cache, and serves
// them on a scrape endpoint.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	PrometheusPath string `mapstructure:"prometheus_path"`
}

// DefaultMetricsConfig returns default metrics configuration.
func DefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		Enabled:        true,
		ServiceName:    "savora-cloud-go",
		PrometheusPath: "/metrics",
	}
}

// MetricsProvider owns the Prometheus registry and the common
// collectors. A disabled provider is safe to call; every record method
// is a no-op.
type MetricsProvider struct {
	config   *MetricsConfig
	registry *prometheus.Registry
	handler  http.Handler
	logger   *zap.Logger

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsActive  prometheus.Gauge
	dbOperationsTotal   *prometheus.CounterVec
	dbOperationDuration *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
}

// NewMetricsProvider creates a metrics provider backed by its own
// registry so tests never collide on the default one.
func NewMetricsProvider(config *MetricsConfig, logger *zap.Logger) *MetricsProvider {
	mp := &MetricsProvider{
		config: config,
		logger: logger,
	}
	if !config.Enabled {
		return mp
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mp.registry = registry
	mp.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	mp.httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "savora",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})

	mp.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "savora",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"method", "route"})

	mp.httpRequestsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "savora",
		Subsystem: "http",
		Name:      "requests_active",
		Help:      "Number of HTTP requests currently being served.",
	})

	mp.dbOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "savora",
		Subsystem: "db",
		Name:      "operations_total",
		Help:      "Total number of database operations.",
	}, []string{"operation", "status"})

	mp.dbOperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "savora",
		Subsystem: "db",
		Name:      "operation_duration_seconds",
		Help:      "Database operation duration in seconds.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"operation"})

	mp.cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "savora",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total number of cache hits.",
	}, []string{"cache"})

	mp.cacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "savora",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total number of cache misses.",
	}, []string{"cache"})

	registry.MustRegister(
		mp.httpRequestsTotal,
		mp.httpRequestDuration,
		mp.httpRequestsActive,
		mp.dbOperationsTotal,
		mp.dbOperationDuration,
		mp.cacheHits,
		mp.cacheMisses,
	)

	logger.Info("metrics initialized",
		zap.String("service", config.ServiceName),
		zap.String("prometheus_path", config.PrometheusPath),
	)

	return mp
}

// Registerer exposes the underlying registry so other subsystems can
// register their own collectors. Returns nil when metrics are disabled.
func (mp *MetricsProvider) Registerer() prometheus.Registerer {
	if mp.registry == nil {
		return nil
	}
	return mp.registry
}

// RecordHTTPRequest records one served HTTP request.
func (mp *MetricsProvider) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	if mp.httpRequestsTotal == nil {
		return
	}
	status := strconv.Itoa(statusCode)
	mp.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	mp.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordDBOperation records one repository call.
func (mp *MetricsProvider) RecordDBOperation(operation string, success bool, duration time.Duration) {
	if mp.dbOperationsTotal == nil {
		return
	}
	status := "ok"
	if !success {
		status = "error"
	}
	mp.dbOperationsTotal.WithLabelValues(operation, status).Inc()
	mp.dbOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit.
func (mp *MetricsProvider) RecordCacheHit(cacheName string) {
	if mp.cacheHits == nil {
		return
	}
	mp.cacheHits.WithLabelValues(cacheName).Inc()
}

// RecordCacheMiss records a cache miss.
func (mp *MetricsProvider) RecordCacheMiss(cacheName string) {
	if mp.cacheMisses == nil {
		return
	}
	mp.cacheMisses.WithLabelValues(cacheName).Inc()
}

// Handler returns the Prometheus scrape handler.
func (mp *MetricsProvider) Handler() http.Handler {
	if mp.handler != nil {
		return mp.handler
	}
	return http.NotFoundHandler()
}
