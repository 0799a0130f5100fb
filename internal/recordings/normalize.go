package recordings

import (
	"fmt"
	"strings"

	"github.com/playslug/backend/internal/models"
)

// normalizeCurrent maps a current-schema row into the shared descriptor.
// The stored file path is relative and must be joined against the public
// bucket URL before the descriptor leaves the resolver.
func normalizeCurrent(row CurrentRow, urls AssetURLResolver) models.Recording {
	isVideo := row.Type == "video"

	mimeType := row.MimeType
	if mimeType == "" {
		if isVideo {
			mimeType = "video/webm"
		} else {
			mimeType = "audio/webm"
		}
	}

	title := row.ProductName
	if title == "" {
		title = models.DefaultTitle
	}

	fileURL := row.FilePath
	if urls != nil {
		fileURL = urls.PublicURL(row.FilePath)
	}

	return models.Recording{
		ID:          row.ID,
		ShortID:     row.PlaySlug,
		Title:       title,
		FileURL:     fileURL,
		Duration:    nonNegative(row.DurationSeconds),
		FileSize:    nonNegativeInt(row.SizeBytes),
		MimeType:    mimeType,
		IsVideo:     isVideo,
		CreatedAt:   row.CreatedAt,
		ProductName: row.ProductName,
		SenderName:  row.ProductName,
	}
}

// normalizeLegacy maps a legacy-schema row into the shared descriptor. The
// stored file URL is used verbatim; the media type column doubles as a mime
// type when it holds one.
func normalizeLegacy(row LegacyRow) models.Recording {
	isVideo := row.MediaType == "video" ||
		strings.Contains(strings.ToLower(row.MediaType), "video")

	mimeType := row.MediaType
	if mimeType == "" {
		if isVideo {
			mimeType = "video/mp4"
		} else {
			mimeType = "audio/mp3"
		}
	}

	rec := models.Recording{
		ID:                   row.ID,
		RecordingID:          row.RecordingID,
		ShortID:              row.ShortURLSlug,
		Title:                legacyTitle(row.CustomerName, row.ProductName),
		FileURL:              row.FileURL,
		Duration:             nonNegative(row.DurationSeconds),
		FileSize:             nonNegativeInt(row.FileSize),
		MimeType:             mimeType,
		IsVideo:              isVideo,
		CreatedAt:            row.CreatedAt,
		CustomerName:         row.CustomerName,
		ProductName:          row.ProductName,
		SenderName:           row.SenderName,
		Occasion:             row.Occasion,
		CustomMessage:        row.CustomMessage,
		HasVirtualBackground: row.HasVirtualBackground,
		BackgroundName:       row.BackgroundName,
	}

	// Greeting overlays need a sender label; fall back to the product name
	// when the row predates the sender column.
	if rec.SenderName == "" {
		rec.SenderName = row.ProductName
	}

	return rec
}

func legacyTitle(customerName, productName string) string {
	switch {
	case customerName != "" && productName != "":
		return fmt.Sprintf("%s for %s", productName, customerName)
	case customerName != "":
		return fmt.Sprintf("%s for %s", models.DefaultTitle, customerName)
	case productName != "":
		return productName
	default:
		return models.DefaultTitle
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func nonNegativeInt(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
