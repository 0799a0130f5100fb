package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/playslug/backend/internal/metrics"
	"github.com/playslug/backend/internal/models"
)

// Saver persists a fully streamed file under the suggested name.
type Saver interface {
	Save(ctx context.Context, name string, body io.Reader) error
}

// DirectSaver hands the file URL straight to the platform's download
// machinery, skipping the streamed fetch.
type DirectSaver interface {
	SaveURL(ctx context.Context, url, name string) error
}

// Opener opens the file URL in a new browsing context as the last resort.
type Opener interface {
	OpenURL(ctx context.Context, url string) error
}

// Progress reports streamed bytes against the expected total. Total is zero
// when neither the response nor the recording carries a size.
type Progress func(received, total int64)

// Manager downloads a recording's media file with a tiered fallback chain.
type Manager struct {
	Client *http.Client
	Saver  Saver
	Direct DirectSaver
	Opener Opener
	Logger *slog.Logger

	// Now is injectable for deterministic filenames in tests.
	Now func() time.Time
}

// Filename derives the suggested local name for a recording's media file.
func Filename(rec models.Recording, now time.Time) string {
	ext := ".mp3"
	if rec.IsVideo {
		ext = ".mp4"
	}
	return fmt.Sprintf("voice-message-%d%s", now.UnixMilli(), ext)
}

// Download fetches the recording's file and saves it, walking the fallback
// chain when a tier fails. The progress callback may be nil.
func (m *Manager) Download(ctx context.Context, rec models.Recording, progress Progress) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	name := Filename(rec, now())

	if m.Saver != nil {
		err := m.stream(ctx, rec, name, progress)
		if err == nil {
			return nil
		}
		logger.Warn("streamed download failed, trying direct save", "error", err, "url", rec.FileURL)
	}

	if m.Direct != nil {
		metrics.DownloadFallbacksTotal.WithLabelValues("direct").Inc()
		err := m.Direct.SaveURL(ctx, rec.FileURL, name)
		if err == nil {
			return nil
		}
		logger.Warn("direct save failed, opening in new context", "error", err, "url", rec.FileURL)
	}

	if m.Opener != nil {
		metrics.DownloadFallbacksTotal.WithLabelValues("open").Inc()
		if err := m.Opener.OpenURL(ctx, rec.FileURL); err != nil {
			return fmt.Errorf("download: all tiers failed: %w", err)
		}
		return nil
	}

	return fmt.Errorf("download: no tier available for %q", rec.FileURL)
}

func (m *Manager) stream(ctx context.Context, rec models.Recording, name string, progress Progress) error {
	client := m.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rec.FileURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch: unexpected status %d", resp.StatusCode)
	}

	total := rec.FileSize
	if header := resp.Header.Get("Content-Length"); header != "" {
		if parsed, err := strconv.ParseInt(header, 10, 64); err == nil && parsed > 0 {
			total = parsed
		}
	}

	body := io.Reader(resp.Body)
	if progress != nil {
		body = &progressReader{r: resp.Body, total: total, report: progress}
	}

	counted := &countingReader{r: body}
	if err := m.Saver.Save(ctx, name, counted); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	metrics.DownloadBytesTotal.Add(float64(counted.n))
	return nil
}

type progressReader struct {
	r        io.Reader
	total    int64
	received int64
	report   Progress
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.received += int64(n)
		p.report(p.received, p.total)
	}
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(buf []byte) (int, error) {
	n, err := c.r.Read(buf)
	c.n += int64(n)
	return n, err
}
