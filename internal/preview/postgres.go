package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/types"
)

// PostgresStore keeps documents in the cv_previews table. Expired rows are
// invisible to Get and removed by Purge.
type PostgresStore struct {
	db  *db.DB
	ttl time.Duration
	now func() time.Time
}

// NewPostgresStore connects to databaseURL and makes sure the table exists.
func NewPostgresStore(ctx context.Context, databaseURL string, ttl time.Duration) (*PostgresStore, error) {
	conn, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := conn.EnsureSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return &PostgresStore{db: conn, ttl: ttl, now: time.Now}, nil
}

// Put stores doc under sessionID and resets its expiry.
func (s *PostgresStore) Put(ctx context.Context, sessionID string, doc *types.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.db.SavePreview(ctx, sessionID, data, s.now().Add(s.ttl))
}

// Get returns the document for sessionID or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, sessionID string) (*types.Document, error) {
	data, err := s.db.GetPreview(ctx, sessionID, s.now())
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt preview for session %s: %w", sessionID, err)
	}
	doc.Normalize()
	return &doc, nil
}

// Delete removes the document for sessionID.
func (s *PostgresStore) Delete(ctx context.Context, sessionID string) error {
	return s.db.DeletePreview(ctx, sessionID)
}

// Purge deletes expired rows.
func (s *PostgresStore) Purge(ctx context.Context) (int64, error) {
	return s.db.PurgeExpiredPreviews(ctx, s.now())
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
