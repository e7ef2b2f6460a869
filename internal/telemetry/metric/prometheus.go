// Package metric provides Prometheus metrics for GridMatch.
//
// It exposes metrics in Prometheus format for monitoring lobby and
// session counts, event rates, latencies, and system health.
package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics backed by a private registry.
//
// A nil *Metrics is valid: every method is a no-op, so services can
// run without telemetry (tests, the CLI).
type Metrics struct {
	registry *prometheus.Registry

	lobbiesCreated   prometheus.Counter
	lobbiesRemoved   prometheus.Counter
	movesTotal       prometheus.Counter
	gamesFinished    *prometheus.CounterVec
	chatRelayed      prometheus.Counter
	dispatchErrors   *prometheus.CounterVec
	dispatchDuration prometheus.Histogram
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

// New creates and registers all application metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		lobbiesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridmatch_lobbies_created_total",
			Help: "Total lobbies created.",
		}),
		lobbiesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridmatch_lobbies_removed_total",
			Help: "Total lobbies removed.",
		}),
		movesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridmatch_moves_total",
			Help: "Total accepted moves.",
		}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridmatch_games_finished_total",
			Help: "Total finished games by result kind.",
		}, []string{"result"}),
		chatRelayed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridmatch_chat_relayed_total",
			Help: "Total chat messages relayed.",
		}),
		dispatchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridmatch_dispatch_errors_total",
			Help: "Total rejected dispatches by error code.",
		}, []string{"code"}),
		dispatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridmatch_dispatch_duration_seconds",
			Help:    "Event dispatch latency.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridmatch_http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridmatch_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		m.lobbiesCreated,
		m.lobbiesRemoved,
		m.movesTotal,
		m.gamesFinished,
		m.chatRelayed,
		m.dispatchErrors,
		m.dispatchDuration,
		m.requestsTotal,
		m.requestDuration,
	)

	return m
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RegisterStats registers a live stats collector backed by src.
// The active lobby and session gauges are read from src at scrape time.
func (m *Metrics) RegisterStats(src StatsSource) {
	if m == nil || src == nil {
		return
	}
	m.registry.MustRegister(NewStatsCollector(src))
}

// LobbyCreated counts one lobby creation.
func (m *Metrics) LobbyCreated() {
	if m == nil {
		return
	}
	m.lobbiesCreated.Inc()
}

// LobbyRemoved counts one lobby removal.
func (m *Metrics) LobbyRemoved() {
	if m == nil {
		return
	}
	m.lobbiesRemoved.Inc()
}

// MoveAccepted counts one accepted move.
func (m *Metrics) MoveAccepted() {
	if m == nil {
		return
	}
	m.movesTotal.Inc()
}

// GameFinished counts one finished game by result kind.
func (m *Metrics) GameFinished(result string) {
	if m == nil {
		return
	}
	m.gamesFinished.WithLabelValues(result).Inc()
}

// ChatRelayed counts one relayed chat message.
func (m *Metrics) ChatRelayed() {
	if m == nil {
		return
	}
	m.chatRelayed.Inc()
}

// DispatchRejected counts one rejected dispatch by error code.
func (m *Metrics) DispatchRejected(code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	m.dispatchErrors.WithLabelValues(code).Inc()
}

// ObserveDispatch records one dispatch latency sample.
func (m *Metrics) ObserveDispatch(d time.Duration) {
	if m == nil {
		return
	}
	m.dispatchDuration.Observe(d.Seconds())
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, path, status).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
