// Package metric provides Prometheus metrics for GridMatch.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry, instruments and HTTP handler
//   - collector.go: Scrape-time collector for live store statistics
//
// Metrics include:
//
//   - Lobby and session gauges
//   - Move, game result and chat counters
//   - Dispatch error counters and latency histograms
//   - HTTP request counters and latency histograms
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
