package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playslug/backend/internal/config"
)

type fakePool struct{}

func (fakePool) Acquire(context.Context) (*pgxpool.Conn, error) {
	return nil, errors.New("not implemented")
}

func (fakePool) Close() {}

func TestBuildDependencies(t *testing.T) {
	cfg := config.Config{
		ObjectStore: config.ObjectStoreConfig{
			Bucket:        "test-bucket",
			Endpoint:      "http://localhost:9000",
			Region:        "us-east-1",
			PublicBaseURL: "http://localhost:9000/test-bucket",
		},
		PlayRateLimit:  60,
		PlayRateWindow: time.Minute,
		PlayRateBurst:  20,
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	deps, err := buildDependencies(context.Background(), fakePool{}, cfg, slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deps.Recordings == nil {
		t.Fatal("expected recording resolver to be configured")
	}
	if deps.Objects == nil {
		t.Fatal("expected object fetcher to be configured")
	}
	if deps.Limiter == nil {
		t.Fatal("expected rate limiter to be configured")
	}
	if deps.PublicBaseURL != cfg.ObjectStore.PublicBaseURL {
		t.Fatalf("public base URL not propagated: %q", deps.PublicBaseURL)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for input, want := range cases {
		if got := parseLogLevel(input); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
