package share

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/playslug/backend/internal/models"
)

// Content is what gets handed to the platform share surface.
type Content struct {
	Title string
	Text  string
	URL   string
}

const defaultShareText = "Listen to my voice message"

// ContentFor builds share content for a resolved recording and its public
// page URL.
func ContentFor(rec models.Recording, pageURL string) Content {
	text := defaultShareText
	if rec.IsVideo {
		text = "Watch my video message"
	}
	if rec.CustomMessage != "" {
		text = rec.CustomMessage
	}

	return Content{
		Title: rec.Title,
		Text:  text,
		URL:   pageURL,
	}
}

// NativeSharer is the host platform's share sheet, when it exists.
type NativeSharer interface {
	Share(ctx context.Context, content Content) error
}

// Clipboard copies text for the fallback path.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Notifier surfaces a short, synchronous message to the user.
type Notifier interface {
	Notify(message string)
}

// Helper routes a share request through the native surface, falling back to
// copying the page URL to the clipboard with a notification.
type Helper struct {
	Native    NativeSharer
	Clipboard Clipboard
	Notifier  Notifier
	Logger    *slog.Logger
}

// Share performs the share, degrading to the clipboard when the platform has
// no native surface or the native attempt fails.
func (h Helper) Share(ctx context.Context, content Content) error {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if h.Native != nil {
		err := h.Native.Share(ctx, content)
		if err == nil {
			return nil
		}
		logger.Info("native share failed, copying link", "error", err)
	}

	if h.Clipboard == nil {
		return fmt.Errorf("share: no native surface and no clipboard")
	}

	if err := h.Clipboard.WriteText(ctx, content.URL); err != nil {
		return fmt.Errorf("share: copy link: %w", err)
	}

	if h.Notifier != nil {
		h.Notifier.Notify("Link copied to clipboard!")
	}
	return nil
}

func shareBody(content Content) string {
	var b strings.Builder
	b.WriteString(content.Title)
	b.WriteString("\n\n")
	if content.Text != "" {
		b.WriteString(content.Text)
		b.WriteString("\n\n")
	}
	b.WriteString(content.URL)
	return b.String()
}
