package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/playslug/backend/internal/db"
	"github.com/playslug/backend/internal/recordings"
)

// PostgresCurrentRecordingRepository reads the current-schema `recordings`
// table, keyed by its play_slug column.
type PostgresCurrentRecordingRepository struct {
	pool db.Pool
}

// NewPostgresCurrentRecordingRepository constructs a current-schema repository.
func NewPostgresCurrentRecordingRepository(pool db.Pool) *PostgresCurrentRecordingRepository {
	return &PostgresCurrentRecordingRepository{pool: pool}
}

// FindByPlaySlug fetches at most one row for the slug. The schema does not
// enforce slug uniqueness, so the query probes for a second row and reports
// ambiguity instead of silently picking one.
func (r *PostgresCurrentRecordingRepository) FindByPlaySlug(ctx context.Context, slug string) (recordings.CurrentRow, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return recordings.CurrentRow{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, product_name, file_path, duration_seconds, size_bytes, mime_type, type, created_at, play_slug
        FROM recordings
        WHERE play_slug = $1
        LIMIT 2
    `, slug)
	if err != nil {
		return recordings.CurrentRow{}, fmt.Errorf("query recordings by slug: %w", err)
	}
	defer rows.Close()

	var (
		row   recordings.CurrentRow
		count int
	)
	for rows.Next() {
		count++
		if count > 1 {
			return recordings.CurrentRow{}, recordings.ErrAmbiguous
		}

		var (
			productName sql.NullString
			filePath    sql.NullString
			duration    sql.NullFloat64
			sizeBytes   sql.NullInt64
			mimeType    sql.NullString
			kind        sql.NullString
			createdAt   time.Time
		)
		if err := rows.Scan(&row.ID, &productName, &filePath, &duration, &sizeBytes, &mimeType, &kind, &createdAt, &row.PlaySlug); err != nil {
			return recordings.CurrentRow{}, fmt.Errorf("scan recording: %w", err)
		}

		row.ProductName = productName.String
		row.FilePath = filePath.String
		row.DurationSeconds = duration.Float64
		row.SizeBytes = sizeBytes.Int64
		row.MimeType = mimeType.String
		row.Type = kind.String
		row.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	}

	if err := rows.Err(); err != nil {
		return recordings.CurrentRow{}, fmt.Errorf("iterate recordings: %w", err)
	}

	if count == 0 {
		return recordings.CurrentRow{}, recordings.ErrNotFound
	}

	return row, nil
}

// PostgresLegacyRecordingRepository reads the legacy `voice_recordings`
// table, keyed by its short_url_slug column.
type PostgresLegacyRecordingRepository struct {
	pool db.Pool
}

// NewPostgresLegacyRecordingRepository constructs a legacy-schema repository.
func NewPostgresLegacyRecordingRepository(pool db.Pool) *PostgresLegacyRecordingRepository {
	return &PostgresLegacyRecordingRepository{pool: pool}
}

// FindByShortSlug fetches at most one legacy row for the slug, with the same
// ambiguity probe as the current schema.
func (r *PostgresLegacyRecordingRepository) FindByShortSlug(ctx context.Context, slug string) (recordings.LegacyRow, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return recordings.LegacyRow{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, recording_id, customer_name, product_name, file_url, duration_seconds, file_size,
               media_type, created_at, short_url_slug, sender_name, occasion, custom_message,
               has_virtual_background, background_name
        FROM voice_recordings
        WHERE short_url_slug = $1
        LIMIT 2
    `, slug)
	if err != nil {
		return recordings.LegacyRow{}, fmt.Errorf("query voice_recordings by slug: %w", err)
	}
	defer rows.Close()

	var (
		row   recordings.LegacyRow
		count int
	)
	for rows.Next() {
		count++
		if count > 1 {
			return recordings.LegacyRow{}, recordings.ErrAmbiguous
		}

		var (
			id             int64
			recordingID    sql.NullString
			customerName   sql.NullString
			productName    sql.NullString
			fileURL        sql.NullString
			duration       sql.NullFloat64
			fileSize       sql.NullInt64
			mediaType      sql.NullString
			createdAt      time.Time
			senderName     sql.NullString
			occasion       sql.NullString
			customMessage  sql.NullString
			virtualBG      sql.NullBool
			backgroundName sql.NullString
		)
		if err := rows.Scan(&id, &recordingID, &customerName, &productName, &fileURL, &duration, &fileSize,
			&mediaType, &createdAt, &row.ShortURLSlug, &senderName, &occasion, &customMessage,
			&virtualBG, &backgroundName); err != nil {
			return recordings.LegacyRow{}, fmt.Errorf("scan voice recording: %w", err)
		}

		row.ID = strconv.FormatInt(id, 10)
		row.RecordingID = recordingID.String
		row.CustomerName = customerName.String
		row.ProductName = productName.String
		row.FileURL = fileURL.String
		row.DurationSeconds = duration.Float64
		row.FileSize = fileSize.Int64
		row.MediaType = mediaType.String
		row.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		row.SenderName = senderName.String
		row.Occasion = occasion.String
		row.CustomMessage = customMessage.String
		row.HasVirtualBackground = virtualBG.Bool
		row.BackgroundName = backgroundName.String
	}

	if err := rows.Err(); err != nil {
		return recordings.LegacyRow{}, fmt.Errorf("iterate voice recordings: %w", err)
	}

	if count == 0 {
		return recordings.LegacyRow{}, recordings.ErrNotFound
	}

	return row, nil
}

var _ recordings.CurrentSource = (*PostgresCurrentRecordingRepository)(nil)
var _ recordings.LegacySource = (*PostgresLegacyRecordingRepository)(nil)
