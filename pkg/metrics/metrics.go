package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor owns the prometheus registry and every collector the server exports
type Monitor struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	callsStarted prometheus.Counter
	callsEnded   *prometheus.CounterVec
	dealScores   prometheus.Histogram
	callMinutes  prometheus.Histogram
}

// NewMonitor creates a Monitor with all collectors registered
func NewMonitor() *Monitor {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Monitor{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadpulse",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadpulse",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		callsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadpulse",
			Name:      "call_sessions_started_total",
			Help:      "Call sessions started.",
		}),
		callsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadpulse",
			Name:      "call_sessions_ended_total",
			Help:      "Call sessions ended, by disposition.",
		}, []string{"disposition"}),
		dealScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadpulse",
			Name:      "deal_score",
			Help:      "Final deal scores of completed call sessions.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		callMinutes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadpulse",
			Name:      "call_duration_minutes",
			Help:      "Duration of completed call sessions in minutes.",
			Buckets:   []float64{1, 2, 5, 10, 15, 30, 60, 120},
		}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpLatency,
		m.callsStarted,
		m.callsEnded,
		m.dealScores,
		m.callMinutes,
	)
	return m
}

// Handler returns the prometheus exposition handler for this monitor
func (m *Monitor) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// CallStarted records a started call session
func (m *Monitor) CallStarted() {
	m.callsStarted.Inc()
}

// CallEnded records a completed call session
func (m *Monitor) CallEnded(disposition string, dealScore, durationMinutes int) {
	if disposition == "" {
		disposition = "none"
	}
	m.callsEnded.WithLabelValues(disposition).Inc()
	m.dealScores.Observe(float64(dealScore))
	m.callMinutes.Observe(float64(durationMinutes))
}

// MonitorMiddleware records request counts and latency per route
func MonitorMiddleware(m *Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpLatency.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

var (
	globalMonitor *Monitor
	globalMu      sync.RWMutex
)

// SetGlobalMonitor installs the monitor used by code without an explicit handle
func SetGlobalMonitor(m *Monitor) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalMonitor = m
}

// GetGlobalMonitor returns the installed monitor, creating one on first use
func GetGlobalMonitor() *Monitor {
	globalMu.RLock()
	if globalMonitor != nil {
		defer globalMu.RUnlock()
		return globalMonitor
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalMonitor == nil {
		globalMonitor = NewMonitor()
	}
	return globalMonitor
}
