// Package metrics exposes Prometheus collectors for the HTTP API, the live
// input sessions and the query cache.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Save kinds reported by ObserveStatsSave.
const (
	SaveExplicit = "explicit"
	SaveImplicit = "implicit"
)

type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	statsSaves        *prometheus.CounterVec
	statsTableErrors  *prometheus.CounterVec
	liveSessions      prometheus.Gauge
	liveSessionsSwept prometheus.Counter

	cacheLookups *prometheus.CounterVec
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tennis_stats",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})

	m.statsSaves = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "stats",
		Name:      "saves_total",
		Help:      "Set statistics saves by kind and outcome (ok, partial, failed)",
	}, []string{"kind", "outcome"})

	m.statsTableErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "stats",
		Name:      "table_write_errors_total",
		Help:      "Failed upserts per statistics table",
	}, []string{"table"})

	m.liveSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "live",
		Name:      "sessions",
		Help:      "Live input sessions currently held in memory",
	})

	m.liveSessionsSwept = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "live",
		Name:      "sessions_swept_total",
		Help:      "Idle live input sessions evicted by the sweeper",
	})

	m.cacheLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Cache lookups by result (hit, miss, error)",
	}, []string{"result"})
}

// Registry returns the registry the collectors live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and latency keyed by route template.
func (m *Manager) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// ObserveStatsSave records one three-table save. failedTables lists the
// tables whose upsert failed; total is the number of tables written.
func (m *Manager) ObserveStatsSave(kind string, failedTables []string, total int) {
	if m == nil {
		return
	}
	outcome := "ok"
	switch {
	case len(failedTables) == 0:
	case len(failedTables) < total:
		outcome = "partial"
	default:
		outcome = "failed"
	}
	m.statsSaves.WithLabelValues(kind, outcome).Inc()
	for _, table := range failedTables {
		m.statsTableErrors.WithLabelValues(table).Inc()
	}
}

func (m *Manager) SetLiveSessions(n int) {
	if m == nil {
		return
	}
	m.liveSessions.Set(float64(n))
}

func (m *Manager) AddSweptSessions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.liveSessionsSwept.Add(float64(n))
}

func (m *Manager) ObserveCacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
