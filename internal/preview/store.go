// Package preview keeps submitted CV documents between POST /preview and the
// GET that displays them. Entries are keyed by a per-browser session id and
// expire after a TTL; nothing is persisted beyond that.
package preview

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/cv-builder/internal/types"
)

// DefaultTTL is how long a submitted document stays viewable.
const DefaultTTL = 24 * time.Hour

// ErrNotFound is returned when no document is stored for a session.
var ErrNotFound = errors.New("no preview stored for session")

// Store holds one document per session.
type Store interface {
	Put(ctx context.Context, sessionID string, doc *types.Document) error
	Get(ctx context.Context, sessionID string) (*types.Document, error)
	Delete(ctx context.Context, sessionID string) error
	Close() error
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether id looks like one NewSessionID produced.
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Purger is implemented by stores whose expired entries need explicit removal.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// Open picks a store from storeURL: redis:// or rediss:// for Redis,
// postgres:// or postgresql:// for PostgreSQL, and empty for in-memory.
func Open(ctx context.Context, storeURL string, ttl time.Duration, logger zerolog.Logger) (Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if storeURL == "" {
		logger.Info().Dur("ttl", ttl).Msg("using in-memory preview store")
		return NewMemoryStore(ttl), nil
	}

	u, err := url.Parse(storeURL)
	if err != nil {
		return nil, fmt.Errorf("invalid preview store URL: %w", err)
	}

	var store Store
	switch u.Scheme {
	case "redis", "rediss":
		store, err = NewRedisStoreFromURL(ctx, storeURL, ttl)
	case "postgres", "postgresql":
		store, err = NewPostgresStore(ctx, storeURL, ttl)
	default:
		return nil, fmt.Errorf("unsupported preview store scheme %q", u.Scheme)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open preview store: %w", err)
	}
	logger.Info().Str("backend", u.Scheme).Dur("ttl", ttl).Msg("using persistent preview store")
	return store, nil
}

// RunPurger calls p.Purge every interval until ctx is done.
func RunPurger(ctx context.Context, p Purger, interval time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.Purge(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("preview purge failed")
				continue
			}
			if n > 0 {
				logger.Debug().Int64("removed", n).Msg("purged expired previews")
			}
		}
	}
}
