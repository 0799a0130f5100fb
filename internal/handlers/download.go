package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/playslug/backend/internal/download"
	"github.com/playslug/backend/internal/logging"
	"github.com/playslug/backend/internal/metrics"
	"github.com/playslug/backend/internal/recordings"
)

// DownloadHandler proxies a recording's media file with a download
// disposition. Files hosted outside the object store are redirected to
// their origin instead of proxied.
type DownloadHandler struct {
	Recordings RecordingResolver
	Objects    ObjectFetcher
	Limiter    RateLimiter

	// PublicBaseURL prefixes object-store keys in resolved file URLs.
	PublicBaseURL string
}

// Handle implements GET /api/download/{shortId}.
func (h DownloadHandler) Handle(w http.ResponseWriter, r *http.Request) {
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

	if !allowRequest(h.Limiter, r, "download") {
		respondJSON(ctx, w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests"})
		return
	}

	shortID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/download/"), "/")
	if shortID == "" {
		respondJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: "Missing shortId parameter"})
		return
	}

	rec, err := h.Recordings.Resolve(ctx, shortID)
	if err != nil {
		if errors.Is(err, recordings.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, errorResponse{Error: "Recording not found"})
			return
		}
		logger.Error("resolve recording for download", "shortId", shortID, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	key, ok := h.objectKey(rec.FileURL)
	if !ok || h.Objects == nil {
		http.Redirect(w, r, rec.FileURL, http.StatusFound)
		return
	}

	body, size, err := h.Objects.Fetch(ctx, key)
	if err != nil {
		logger.Error("fetch media object", "key", key, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}
	defer body.Close()

	if rec.MimeType != "" {
		w.Header().Set("Content-Type", rec.MimeType)
	}
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename(rec, time.Now())))

	n, err := io.Copy(w, body)
	metrics.DownloadBytesTotal.Add(float64(n))
	if err != nil {
		logger.Warn("stream media object interrupted", "key", key, "bytes", n, "error", err)
	}
}

func (h DownloadHandler) objectKey(fileURL string) (string, bool) {
	base := strings.TrimRight(h.PublicBaseURL, "/")
	if base == "" {
		return "", false
	}
	key, ok := strings.CutPrefix(fileURL, base+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
