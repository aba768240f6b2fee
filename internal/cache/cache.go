// Package cache implements the TTL cache that fronts network reads. Entries
// live in the persistent key-value store under a namespace prefix, wrapped
// with an absolute expiry; a read past the expiry is a miss and evicts the
// entry. Failures never reach the caller: writes degrade to no-ops and reads
// to misses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/storage"
	apperrors "github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/errors"
)

// entry is the stored representation of a cached value.
type entry struct {
	Data      json.RawMessage `json:"data"`
	ExpiresAt int64           `json:"expires_at"` // milliseconds since epoch
}

// Manager wraps a storage.Store with TTL and namespacing semantics.
type Manager struct {
	store      storage.Store
	prefix     string
	defaultTTL time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source, for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// New creates a cache manager. Every stored key is namespaced with prefix so
// Clear cannot sweep unrelated keys sharing the store.
func New(store storage.Store, prefix string, defaultTTL time.Duration, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		prefix:     prefix,
		defaultTTL: defaultTTL,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Set serializes v with an absolute expiry and stores it under the namespaced
// key, overwriting any existing entry. A ttl <= 0 uses the default TTL.
// Failures are logged and swallowed.
func (m *Manager) Set(ctx context.Context, key string, v any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	data, err := json.Marshal(v)
	if err != nil {
		WriteFailures.WithLabelValues(m.prefix).Inc()
		m.logger.ErrorContext(ctx, "cache set: marshal value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}

	e := entry{
		Data:      data,
		ExpiresAt: m.now().Add(ttl).UnixMilli(),
	}
	payload, err := json.Marshal(e)
	if err != nil {
		WriteFailures.WithLabelValues(m.prefix).Inc()
		m.logger.ErrorContext(ctx, "cache set: marshal entry",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := m.store.Set(ctx, m.prefix+key, payload); err != nil {
		WriteFailures.WithLabelValues(m.prefix).Inc()
		m.logger.WarnContext(ctx, "cache set: storage write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}

	m.logger.DebugContext(ctx, "cache set",
		slog.String("key", key),
		slog.Duration("ttl", ttl),
	)
}

// Get reads the namespaced key into dest and reports whether a live entry was
// found. Expired and corrupt entries are evicted and count as misses.
func (m *Manager) Get(ctx context.Context, key string, dest any) bool {
	payload, err := m.store.Get(ctx, m.prefix+key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			m.logger.WarnContext(ctx, "cache get: storage read failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		Misses.WithLabelValues(m.prefix).Inc()
		return false
	}

	var e entry
	if err := json.Unmarshal(payload, &e); err != nil {
		m.evict(ctx, key, "corrupt")
		Misses.WithLabelValues(m.prefix).Inc()
		return false
	}

	if m.now().UnixMilli() > e.ExpiresAt {
		m.evict(ctx, key, "expired")
		Misses.WithLabelValues(m.prefix).Inc()
		return false
	}

	if err := json.Unmarshal(e.Data, dest); err != nil {
		m.evict(ctx, key, "corrupt")
		Misses.WithLabelValues(m.prefix).Inc()
		return false
	}

	Hits.WithLabelValues(m.prefix).Inc()
	m.logger.DebugContext(ctx, "cache hit", slog.String("key", key))
	return true
}

// Remove deletes a single namespaced entry. Idempotent.
func (m *Manager) Remove(ctx context.Context, key string) {
	if err := m.store.Delete(ctx, m.prefix+key); err != nil {
		m.logger.WarnContext(ctx, "cache remove failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Clear deletes every entry under the cache namespace, leaving unrelated
// stored keys untouched.
func (m *Manager) Clear(ctx context.Context) {
	m.invalidate(ctx, "")
}

// InvalidateByPrefix deletes every cached entry whose logical key starts with
// the given prefix. Used after writes that bypass the cache (admin product
// edits) to force the next read to refetch.
func (m *Manager) InvalidateByPrefix(ctx context.Context, prefix string) {
	m.invalidate(ctx, prefix)
}

// InvalidateAll removes the whole cache namespace; intended for logout so no
// session-specific cached data survives into a new session.
func (m *Manager) InvalidateAll(ctx context.Context) {
	m.Clear(ctx)
}

func (m *Manager) invalidate(ctx context.Context, logicalPrefix string) {
	keys, err := m.store.Keys(ctx, m.prefix+logicalPrefix)
	if err != nil {
		m.logger.WarnContext(ctx, "cache invalidate: list keys failed",
			slog.String("prefix", logicalPrefix),
			slog.String("error", err.Error()),
		)
		return
	}

	removed := 0
	for _, k := range keys {
		if err := m.store.Delete(ctx, k); err != nil {
			m.logger.WarnContext(ctx, "cache invalidate: delete failed",
				slog.String("key", strings.TrimPrefix(k, m.prefix)),
				slog.String("error", err.Error()),
			)
			continue
		}
		removed++
	}

	if removed > 0 {
		Invalidations.WithLabelValues(m.prefix).Add(float64(removed))
		m.logger.InfoContext(ctx, "cache invalidated",
			slog.String("prefix", logicalPrefix),
			slog.Int("entries", removed),
		)
	}
}

func (m *Manager) evict(ctx context.Context, key, reason string) {
	if err := m.store.Delete(ctx, m.prefix+key); err != nil {
		m.logger.WarnContext(ctx, "cache evict failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}
	Evictions.WithLabelValues(m.prefix).Inc()
	m.logger.DebugContext(ctx, "cache evicted",
		slog.String("key", key),
		slog.String("reason", reason),
	)
}
