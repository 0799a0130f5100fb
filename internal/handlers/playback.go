package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/playslug/backend/internal/logging"
	"github.com/playslug/backend/internal/recordings"
)

// PlaybackHandler serves public playback metadata for short identifiers.
type PlaybackHandler struct {
	Recordings RecordingResolver
	Limiter    RateLimiter
}

// Handle implements GET /api/play/{shortId}.
func (h PlaybackHandler) Handle(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "play") {
		respondJSON(ctx, w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests"})
		return
	}

	if h.Recordings == nil {
		logger.Error("recording resolver unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	shortID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/play/"), "/")
	if shortID == "" {
		respondJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: "Missing shortId parameter"})
		return
	}

	rec, err := h.Recordings.Resolve(ctx, shortID)
	switch {
	case err == nil:
		respondJSON(ctx, w, http.StatusOK, playbackResponse{Success: true, Data: rec.Public()})
	case errors.Is(err, recordings.ErrNotFound):
		respondJSON(ctx, w, http.StatusNotFound, errorResponse{Error: "Recording not found"})
	default:
		logger.Error("resolve recording", "shortId", shortID, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}
