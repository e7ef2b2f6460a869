// Package metric provides Prometheus metrics for GridMatch.
package metric

import "github.com/prometheus/client_golang/prometheus"

// StatsSource exposes live counts from the registry store.
type StatsSource interface {
	LobbyCount() int
	SessionCount() int
}

// StatsCollector reads lobby and session counts at scrape time,
// so the gauges never drift from the store.
type StatsCollector struct {
	src StatsSource

	lobbiesDesc  *prometheus.Desc
	sessionsDesc *prometheus.Desc
}

// NewStatsCollector creates a collector over the given source.
func NewStatsCollector(src StatsSource) *StatsCollector {
	return &StatsCollector{
		src: src,
		lobbiesDesc: prometheus.NewDesc(
			"gridmatch_lobbies_active",
			"Number of registered lobbies.",
			nil, nil,
		),
		sessionsDesc: prometheus.NewDesc(
			"gridmatch_sessions_active",
			"Number of bound player sessions.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.lobbiesDesc
	ch <- c.sessionsDesc
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.lobbiesDesc, prometheus.GaugeValue, float64(c.src.LobbyCount()))
	ch <- prometheus.MustNewConstMetric(c.sessionsDesc, prometheus.GaugeValue, float64(c.src.SessionCount()))
}
