package recordings

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/playslug/backend/internal/metrics"
	"github.com/playslug/backend/internal/models"
)

// CurrentRow mirrors a row of the current-schema table. The stored file path
// is relative to the public recordings bucket.
type CurrentRow struct {
	ID              string
	ProductName     string
	FilePath        string
	DurationSeconds float64
	SizeBytes       int64
	MimeType        string
	Type            string
	CreatedAt       string
	PlaySlug        string
}

// LegacyRow mirrors a row of the legacy table. The stored file URL is already
// absolute.
type LegacyRow struct {
	ID                   string
	RecordingID          string
	CustomerName         string
	ProductName          string
	FileURL              string
	DurationSeconds      float64
	FileSize             int64
	MediaType            string
	CreatedAt            string
	ShortURLSlug         string
	SenderName           string
	Occasion             string
	CustomMessage        string
	HasVirtualBackground bool
	BackgroundName       string
}

// CurrentSource queries the current schema by its short-slug column.
type CurrentSource interface {
	FindByPlaySlug(ctx context.Context, slug string) (CurrentRow, error)
}

// LegacySource queries the legacy schema by its own short-slug column.
type LegacySource interface {
	FindByShortSlug(ctx context.Context, slug string) (LegacyRow, error)
}

// AssetURLResolver builds absolute URLs for relative storage paths.
type AssetURLResolver interface {
	PublicURL(path string) string
}

// Resolver unifies the two historical schemas behind one identifier space.
// The current source is consulted first and a hit short-circuits; the legacy
// source only ever sees slugs the current schema missed.
type Resolver struct {
	current CurrentSource
	legacy  LegacySource
	urls    AssetURLResolver
	logger  *slog.Logger
}

// NewResolver constructs a resolver over the provided sources.
func NewResolver(current CurrentSource, legacy LegacySource, urls AssetURLResolver, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{current: current, legacy: legacy, urls: urls, logger: logger}
}

// Resolve looks up a short identifier across both backing sources and returns
// a freshly built descriptor. A transport failure against one source counts
// as a miss for that source; ErrLookupFailed is returned only when every
// queried source failed.
func (r *Resolver) Resolve(ctx context.Context, shortID string) (models.Recording, error) {
	if strings.TrimSpace(shortID) == "" {
		return models.Recording{}, ErrNotFound
	}

	currentFailed := false

	row, err := r.current.FindByPlaySlug(ctx, shortID)
	switch {
	case err == nil:
		metrics.LookupsTotal.WithLabelValues("current", "hit").Inc()
		return normalizeCurrent(row, r.urls), nil
	case errors.Is(err, ErrAmbiguous):
		metrics.LookupsTotal.WithLabelValues("current", "ambiguous").Inc()
		r.logger.Error("current schema holds multiple rows for slug", "shortId", shortID)
		return models.Recording{}, ErrAmbiguous
	case errors.Is(err, ErrNotFound):
		metrics.LookupsTotal.WithLabelValues("current", "miss").Inc()
	default:
		currentFailed = true
		metrics.LookupsTotal.WithLabelValues("current", "error").Inc()
		r.logger.Warn("current schema query failed, falling back to legacy", "shortId", shortID, "error", err)
	}

	legacyRow, err := r.legacy.FindByShortSlug(ctx, shortID)
	switch {
	case err == nil:
		metrics.LookupsTotal.WithLabelValues("legacy", "hit").Inc()
		return normalizeLegacy(legacyRow), nil
	case errors.Is(err, ErrAmbiguous):
		metrics.LookupsTotal.WithLabelValues("legacy", "ambiguous").Inc()
		r.logger.Error("legacy schema holds multiple rows for slug", "shortId", shortID)
		return models.Recording{}, ErrAmbiguous
	case errors.Is(err, ErrNotFound):
		metrics.LookupsTotal.WithLabelValues("legacy", "miss").Inc()
	default:
		metrics.LookupsTotal.WithLabelValues("legacy", "error").Inc()
		r.logger.Warn("legacy schema query failed", "shortId", shortID, "error", err)
		if currentFailed {
			metrics.LookupsTotal.WithLabelValues("none", "error").Inc()
			return models.Recording{}, ErrLookupFailed
		}
	}

	metrics.LookupsTotal.WithLabelValues("none", "miss").Inc()
	return models.Recording{}, ErrNotFound
}
