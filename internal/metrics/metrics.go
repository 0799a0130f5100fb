package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playslug",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "playslug",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1, 2, 5},
	}, []string{"method", "path"})

	// LookupsTotal counts resolver outcomes per backing source.
	// source is "current", "legacy" or "none"; outcome is "hit", "miss",
	// "ambiguous" or "error".
	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playslug",
		Name:      "recording_lookups_total",
		Help:      "Total recording lookups by backing source and outcome.",
	}, []string{"source", "outcome"})

	PlayerStateTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playslug",
		Name:      "player_state_transitions_total",
		Help:      "Total player state machine transitions.",
	}, []string{"from", "to"})

	AutoplayAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playslug",
		Name:      "autoplay_attempts_total",
		Help:      "Autoplay attempts by result (started, muted, blocked).",
	}, []string{"result"})

	DownloadBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "playslug",
		Name:      "download_bytes_total",
		Help:      "Total bytes delivered through the streamed download path.",
	})

	DownloadFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playslug",
		Name:      "download_fallbacks_total",
		Help:      "Downloads that degraded to a fallback tier (direct, open).",
	}, []string{"tier"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		LookupsTotal,
		PlayerStateTransitionsTotal,
		AutoplayAttemptsTotal,
		DownloadBytesTotal,
		DownloadFallbacksTotal,
	)
}
