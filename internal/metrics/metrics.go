package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process-wide Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	LiveSessions   prometheus.Gauge
	LiveWatchers   prometheus.Gauge
	ScoresRecorded prometheus.Counter
	AuthFailures   prometheus.Counter
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		LiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snake_live_sessions",
			Help: "Number of live game sessions currently registered.",
		}),
		LiveWatchers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snake_live_watchers",
			Help: "Number of spectators across all live sessions.",
		}),
		ScoresRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_scores_recorded_total",
			Help: "Total scores appended to the leaderboard.",
		}),
		AuthFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_auth_failures_total",
			Help: "Total rejected authentication attempts.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.LiveSessions,
		m.LiveWatchers,
		m.ScoresRecorded,
		m.AuthFailures,
	)

	return m
}

// Handler serves the registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
