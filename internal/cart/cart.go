// Package cart implements the shopping cart store. The in-memory collection
// is the source of truth for the session; every mutation writes through to
// the persistent key-value store, and persistence failures degrade to no-ops
// that are logged and reported through an optional handler instead of
// reaching UI code.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/config"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/domain"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/storage"
	apperrors "github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/errors"
)

// AddResult reports the outcome of an Add call.
type AddResult struct {
	Success       bool `json:"success"`
	AlreadyInCart bool `json:"already_in_cart"`
}

// Store holds the cart lines for one client session.
type Store struct {
	mu             sync.Mutex
	cart           domain.Cart
	loading        bool
	st             storage.Store
	key            string
	shippingFee    int64
	freeThreshold  int64
	logger         *slog.Logger
	onPersistError func(error)
	lastPersistErr error
}

// Option configures a Store.
type Option func(*Store)

// WithPersistErrorHandler registers a callback invoked whenever a
// write-through fails, so calling code can surface a "changes may not be
// saved" warning.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(s *Store) { s.onPersistError = fn }
}

// New creates a cart store backed by st. Pricing and the storage key come
// from cfg.
func New(st storage.Store, cfg *config.Config, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		st:            st,
		key:           cfg.CartStorageKey,
		shippingFee:   cfg.ShippingFeeCents,
		freeThreshold: cfg.FreeShippingThresholdCents,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add puts a product in the cart with quantity 1. Each listing is a unique
// physical piece, so adding an already-present product performs no mutation
// and reports AlreadyInCart instead of incrementing.
func (s *Store) Add(ctx context.Context, p domain.Product) AddResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.FindLine(p.ID) >= 0 {
		s.logger.DebugContext(ctx, "product already in cart", slog.Int64("product_id", p.ID))
		return AddResult{Success: false, AlreadyInCart: true}
	}

	s.cart.Lines = append(s.cart.Lines, domain.NewCartLine(p))
	s.persist(ctx)

	s.logger.InfoContext(ctx, "product added to cart",
		slog.Int64("product_id", p.ID),
		slog.Int("lines", len(s.cart.Lines)),
	)
	return AddResult{Success: true}
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes the line entirely; no line may linger at quantity <= 0.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cart.FindLine(productID)
	if i < 0 {
		return
	}

	s.cart.Lines[i].Quantity = quantity
	s.persist(ctx)

	s.logger.InfoContext(ctx, "cart quantity updated",
		slog.Int64("product_id", productID),
		slog.Int("quantity", quantity),
	)
}

// Remove deletes the line for the given product if present. Idempotent.
func (s *Store) Remove(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cart.FindLine(productID)
	if i < 0 {
		return
	}

	s.cart.Lines = append(s.cart.Lines[:i], s.cart.Lines[i+1:]...)
	s.persist(ctx)

	s.logger.InfoContext(ctx, "product removed from cart", slog.Int64("product_id", productID))
}

// Clear empties the cart and removes the persisted copy.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Lines = nil
	if err := s.st.Delete(ctx, s.key); err != nil {
		s.reportPersistError(ctx, err)
		return
	}
	s.lastPersistErr = nil

	s.logger.InfoContext(ctx, "cart cleared")
}

// Load reads the persisted cart into memory at session start. Missing or
// corrupt data resets to an empty cart rather than failing.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	payload, err := s.st.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "load cart: storage read failed", slog.String("error", err.Error()))
		}
		s.setLines(nil)
		return
	}

	var cart domain.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		s.logger.WarnContext(ctx, "load cart: corrupt payload, resetting",
			slog.String("error", apperrors.Corrupt(s.key, err).Error()),
		)
		s.setLines(nil)
		return
	}

	// Drop any legacy lines persisted with a non-positive quantity.
	lines := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.Quantity > 0 {
			lines = append(lines, line)
		}
	}
	s.setLines(lines)

	s.logger.InfoContext(ctx, "cart loaded", slog.Int("lines", len(lines)))
}

// Lines returns a copy of the current cart lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.cart.Lines))
	copy(out, s.cart.Lines)
	return out
}

// Contains reports whether the cart holds a line for the given product.
func (s *Store) Contains(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.FindLine(productID) >= 0
}

// Quantity returns the quantity for the given product, or 0 when absent.
func (s *Store) Quantity(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.cart.FindLine(productID); i >= 0 {
		return s.cart.Lines[i].Quantity
	}
	return 0
}

// TotalItems returns the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

// Subtotal returns the sum of unit price times quantity, in cents.
func (s *Store) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Subtotal()
}

// ShippingCost returns the flat shipping fee, or zero once the subtotal
// reaches the free-shipping threshold. An empty cart has nothing to ship
// and costs zero.
func (s *Store) ShippingCost() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shippingCostLocked()
}

// Total returns subtotal plus shipping, in cents.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Subtotal() + s.shippingCostLocked()
}

// Loading reports whether a Load is in progress.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastPersistErr returns the error from the most recent write-through, or nil
// when it succeeded. Lets callers surface a persistent-storage warning.
func (s *Store) LastPersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPersistErr
}

func (s *Store) shippingCostLocked() int64 {
	if len(s.cart.Lines) == 0 {
		return 0
	}
	if s.cart.Subtotal() >= s.freeThreshold {
		return 0
	}
	return s.shippingFee
}

func (s *Store) setLines(lines []domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Lines = lines
}

// persist writes the cart through to storage. Callers must hold s.mu. The
// in-memory state stays authoritative regardless of the outcome.
func (s *Store) persist(ctx context.Context) {
	payload, err := json.Marshal(s.cart)
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
	s.logger.WarnContext(ctx, "cart write-through failed", slog.String("error", err.Error()))
	if s.onPersistError != nil {
		s.onPersistError(err)
	}
}
