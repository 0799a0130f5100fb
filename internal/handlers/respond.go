package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/playslug/backend/internal/logging"
	"github.com/playslug/backend/internal/models"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type playbackResponse struct {
	Success bool                   `json:"success"`
	Data    models.PublicRecording `json:"data"`
}

// writeCORS sets the permissive headers the public playback page relies on.
func writeCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}
