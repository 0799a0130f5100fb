package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	play := PlaybackHandler{Recordings: deps.Recordings, Limiter: deps.Limiter}
	dl := DownloadHandler{
		Recordings:    deps.Recordings,
		Objects:       deps.Objects,
		Limiter:       deps.Limiter,
		PublicBaseURL: deps.PublicBaseURL,
	}

	mux.HandleFunc("/healthz", health.Handle)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/play/", play.Handle)
	mux.HandleFunc("/api/download/", dl.Handle)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Recordings    RecordingResolver
	Objects       ObjectFetcher
	Limiter       RateLimiter
	PublicBaseURL string
}
