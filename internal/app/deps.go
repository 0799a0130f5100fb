package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/playslug/backend/internal/config"
	"github.com/playslug/backend/internal/db"
	"github.com/playslug/backend/internal/handlers"
	"github.com/playslug/backend/internal/middleware"
	"github.com/playslug/backend/internal/recordings"
	"github.com/playslug/backend/internal/repositories"
	"github.com/playslug/backend/internal/storage"
)

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config, logger *slog.Logger) (handlers.Dependencies, error) {
	store, err := storage.NewS3Store(ctx, cfg.ObjectStore)
	if err != nil {
		return handlers.Dependencies{}, err
	}

	resolver := recordings.NewResolver(
		repositories.NewPostgresCurrentRecordingRepository(pool),
		repositories.NewPostgresLegacyRecordingRepository(pool),
		store,
		logger,
	)

	limiter := middleware.NewIPRateLimiter(cfg.PlayRateLimit, cfg.PlayRateWindow, cfg.PlayRateBurst, 5*time.Minute)

	return handlers.Dependencies{
		Recordings:    resolver,
		Objects:       store,
		Limiter:       limiter,
		PublicBaseURL: cfg.ObjectStore.PublicBaseURL,
	}, nil
}
