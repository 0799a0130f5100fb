package handlers

import (
	"context"
	"io"

	"github.com/playslug/backend/internal/models"
)

// RecordingResolver maps a public short identifier to playback metadata.
type RecordingResolver interface {
	Resolve(ctx context.Context, shortID string) (models.Recording, error)
}

// ObjectFetcher streams stored media objects for download proxying.
type ObjectFetcher interface {
	Fetch(ctx context.Context, key string) (io.ReadCloser, int64, error)
}
