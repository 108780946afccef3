package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	upstreamRequests *prometheus.CounterVec
	upstreamDuration prometheus.Histogram
	feedFetches      *prometheus.CounterVec
	staleResponses   prometheus.Counter
	downloads        *prometheus.CounterVec
	activeSessions   prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		upstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallify_upstream_requests_total",
				Help: "Pexels search requests by HTTP status (0 when no response was received).",
			},
			[]string{"status"},
		),
		upstreamDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wallify_upstream_request_duration_seconds",
				Help:    "Pexels search request latency.",
				Buckets: prometheus.DefBuckets,
			},
		),
		feedFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallify_feed_fetches_total",
				Help: "Feed page fetches by outcome.",
			},
			[]string{"outcome"},
		),
		staleResponses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wallify_feed_stale_responses_total",
				Help: "Fetch results discarded because the query changed while they were in flight.",
			},
		),
		downloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallify_downloads_total",
				Help: "Original-resolution downloads by result.",
			},
			[]string{"result"},
		),
		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wallify_active_sessions",
				Help: "Chats with a live feed controller.",
			},
		),
	}

	reg.MustRegister(
		m.upstreamRequests,
		m.upstreamDuration,
		m.feedFetches,
		m.staleResponses,
		m.downloads,
		m.activeSessions,
	)
	return m
}

func (m *Metrics) ObserveUpstream(status string, d time.Duration) {
	m.upstreamRequests.WithLabelValues(status).Inc()
	m.upstreamDuration.Observe(d.Seconds())
}

func (m *Metrics) FeedFetch(outcome string) {
	m.feedFetches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) StaleResponse() {
	m.staleResponses.Inc()
}

func (m *Metrics) Download(result string) {
	m.downloads.WithLabelValues(result).Inc()
}

func (m *Metrics) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}
