package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// SavePreview upserts the encoded document for a session.
func (db *DB) SavePreview(ctx context.Context, sessionID string, document []byte, expiresAt time.Time) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO cv_previews (session_id, document, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id) DO UPDATE SET document = $2, expires_at = $3, updated_at = NOW()`,
		sessionID, document, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}

// GetPreview returns the encoded document for a session, or ErrNotFound when
// there is none or it expired before now.
func (db *DB) GetPreview(ctx context.Context, sessionID string, now time.Time) ([]byte, error) {
	var document []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document FROM cv_previews WHERE session_id = $1 AND expires_at > $2`,
		sessionID, now,
	).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preview: %w", err)
	}
	return document, nil
}

// DeletePreview removes a session's preview.
func (db *DB) DeletePreview(ctx context.Context, sessionID string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM cv_previews WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to delete preview: %w", err)
	}
	return nil
}

// PurgeExpiredPreviews deletes rows that expired before now and returns how many went.
func (db *DB) PurgeExpiredPreviews(ctx context.Context, now time.Time) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM cv_previews WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge previews: %w", err)
	}
	return tag.RowsAffected(), nil
}
