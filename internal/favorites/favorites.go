// Package favorites implements the liked-products store. Entries are full
// product snapshots so the list renders offline; persistence mirrors the
// cart store's write-through behavior.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/config"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/domain"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/storage"
	apperrors "github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/errors"
)

// ToggleResult reports the outcome of a Toggle call.
type ToggleResult struct {
	Success bool `json:"success"`
	Added   bool `json:"added"`
}

// Store holds the favorites for one client session.
type Store struct {
	mu             sync.Mutex
	favorites      domain.Favorites
	st             storage.Store
	key            string
	logger         *slog.Logger
	now            func() time.Time
	onPersistError func(error)
	lastPersistErr error
}

// Option configures a Store.
type Option func(*Store)

// WithPersistErrorHandler registers a callback invoked whenever a
// write-through fails.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(s *Store) { s.onPersistError = fn }
}

// WithClock overrides the time source used for AddedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a favorites store backed by st.
func New(st storage.Store, cfg *config.Config, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		st:     st,
		key:    cfg.FavoritesStorageKey,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Toggle adds the product snapshot when absent and removes it when present.
// The map is updated synchronously before the write-through is issued, so
// rapid repeated calls converge to a single correct toggle.
func (s *Store) Toggle(ctx context.Context, p domain.Product) ToggleResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.favorites.Find(p.ID); i >= 0 {
		s.favorites.Entries = append(s.favorites.Entries[:i], s.favorites.Entries[i+1:]...)
		s.persist(ctx)

		s.logger.InfoContext(ctx, "product unfavorited", slog.Int64("product_id", p.ID))
		return ToggleResult{Success: true, Added: false}
	}

	s.favorites.Entries = append(s.favorites.Entries, domain.FavoriteEntry{
		Product: p,
		AddedAt: s.now().UTC(),
	})
	s.persist(ctx)

	s.logger.InfoContext(ctx, "product favorited", slog.Int64("product_id", p.ID))
	return ToggleResult{Success: true, Added: true}
}

// Remove deletes the entry for the given product if present. Idempotent.
func (s *Store) Remove(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.favorites.Find(productID)
	if i < 0 {
		return
	}

	s.favorites.Entries = append(s.favorites.Entries[:i], s.favorites.Entries[i+1:]...)
	s.persist(ctx)

	s.logger.InfoContext(ctx, "product removed from favorites", slog.Int64("product_id", productID))
}

// Clear empties the favorites and removes the persisted copy.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites.Entries = nil
	if err := s.st.Delete(ctx, s.key); err != nil {
		s.reportPersistError(ctx, err)
		return
	}
	s.lastPersistErr = nil

	s.logger.InfoContext(ctx, "favorites cleared")
}

// IsFavorite reports whether the product is currently favorited.
func (s *Store) IsFavorite(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Contains(productID)
}

// Count returns the number of favorited products.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.favorites.Entries)
}

// Entries returns a copy of the favorite entries in insertion order.
func (s *Store) Entries() []domain.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.FavoriteEntry, len(s.favorites.Entries))
	copy(out, s.favorites.Entries)
	return out
}

// Load reads the persisted favorites into memory at session start. Missing or
// corrupt data resets to an empty list rather than failing.
func (s *Store) Load(ctx context.Context) {
	payload, err := s.st.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "load favorites: storage read failed", slog.String("error", err.Error()))
		}
		s.setEntries(nil)
		return
	}

	var favorites domain.Favorites
	if err := json.Unmarshal(payload, &favorites); err != nil {
		s.logger.WarnContext(ctx, "load favorites: corrupt payload, resetting",
			slog.String("error", apperrors.Corrupt(s.key, err).Error()),
		)
		s.setEntries(nil)
		return
	}

	// Deduplicate by product ID in case a legacy payload carries duplicates.
	seen := make(map[int64]bool, len(favorites.Entries))
	entries := favorites.Entries[:0]
	for _, e := range favorites.Entries {
		if seen[e.Product.ID] {
			continue
		}
		seen[e.Product.ID] = true
		entries = append(entries, e)
	}
	s.setEntries(entries)

	s.logger.InfoContext(ctx, "favorites loaded", slog.Int("entries", len(entries)))
}

// LastPersistErr returns the error from the most recent write-through, or nil.
func (s *Store) LastPersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPersistErr
}

func (s *Store) setEntries(entries []domain.FavoriteEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites.Entries = entries
}

// persist writes the favorites through to storage. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context) {
	payload, err := json.Marshal(s.favorites)
	if err != nil {
		s.reportPersistError(ctx, err)
		return
	}
	if err := s.st.Set(ctx, s.key, payload); err != nil {
		s.reportPersistError(ctx, err)
		return
	}
	s.lastPersistErr = nil
}

func (s *Store) reportPersistError(ctx context.Context, err error) {
	s.lastPersistErr = err
	s.logger.WarnContext(ctx, "favorites write-through failed", slog.String("error", err.Error()))
	if s.onPersistError != nil {
		s.onPersistError(err)
	}
}
