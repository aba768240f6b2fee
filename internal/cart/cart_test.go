package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/config"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/domain"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/storage/memory"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCartConfig() *config.Config {
	return &config.Config{
		CartStorageKey:             "luxus-cart",
		ShippingFeeCents:           1500,
		FreeShippingThresholdCents: 15000,
	}
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *memory.Store) {
	t.Helper()
	st := memory.New()
	return New(st, testCartConfig(), newTestLogger(), opts...), st
}

func sampleProduct(id int64, priceCents int64) domain.Product {
	return domain.Product{
		ID:         id,
		Title:      "Camisa de seda vintage",
		PriceCents: priceCents,
		Category:   "Roupas",
		ImageURL:   "https://img.example.com/c.jpg",
		Available:  true,
	}
}

// ---------------------------------------------------------------------------
// Add
// ---------------------------------------------------------------------------

func TestAdd_NewProduct(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	res := s.Add(ctx, sampleProduct(7, 5000))

	assert.True(t, res.Success)
	assert.False(t, res.AlreadyInCart)
	assert.True(t, s.Contains(7))
	assert.Equal(t, 1, s.Quantity(7))
}

func TestAdd_TwiceYieldsOneLine(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := s.Add(ctx, sampleProduct(7, 5000))
	second := s.Add(ctx, sampleProduct(7, 5000))

	assert.True(t, first.Success)
	assert.True(t, second.AlreadyInCart)
	assert.False(t, second.Success)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity, "re-add must not increment quantity")
}

func TestAdd_WritesThrough(t *testing.T) {
	s, st := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, sampleProduct(7, 5000))

	payload, err := st.Get(ctx, "luxus-cart")
	require.NoError(t, err)

	var persisted domain.Cart
	require.NoError(t, json.Unmarshal(payload, &persisted))
	require.Len(t, persisted.Lines, 1)
	assert.Equal(t, int64(7), persisted.Lines[0].ProductID)
}

// ---------------------------------------------------------------------------
// UpdateQuantity / Remove
// ---------------------------------------------------------------------------

func TestUpdateQuantity_SetsQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, sampleProduct(7, 5000))
	s.UpdateQuantity(ctx, 7, 3)

	assert.Equal(t, 3, s.Quantity(7))
	assert.Equal(t, 3, s.TotalItems())
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, sampleProduct(7, 5000))
	s.UpdateQuantity(ctx, 7, 0)

	assert.False(t, s.Contains(7))
	assert.Empty(t, s.Lines())
}

func TestUpdateQuantity_NegativeRemovesLine(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, sampleProduct(7, 5000))
	s.UpdateQuantity(ctx, 7, -2)

	assert.False(t, s.Contains(7))
}

func TestUpdateQuantity_UnknownProductIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	s.UpdateQuantity(context.Background(), 99, 5)
	assert.Empty(t, s.Lines())
}

func TestRemove_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, sampleProduct(7, 5000))
	s.Remove(ctx, 7)
	s.Remove(ctx, 7)

	assert.Empty(t, s.Lines())
}

// ---------------------------------------------------------------------------
// Totals
// ---------------------------------------------------------------------------

func TestTotals_FreeShippingAtThreshold(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// 150.00 exactly: shipping is free.
	s.Add(ctx, sampleProduct(1, 15000))

	assert.Equal(t, int64(15000), s.Subtotal())
	assert.Equal(t, int64(0), s.ShippingCost())
	assert.Equal(t, int64(15000), s.Total())
}

func TestTotals_FeeJustBelowThreshold(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// 149.99: flat fee applies.
	s.Add(ctx, sampleProduct(1, 14999))

	assert.Equal(t, int64(14999), s.Subtotal())
	assert.Equal(t, int64(1500), s.ShippingCost())
	assert.Equal(t, int64(16499), s.Total())
}

func TestTotals_TwoProductScenario(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// 50.00 + 120.00 = 170.00 subtotal, free shipping.
	s.Add(ctx, sampleProduct(7, 5000))
	s.Add(ctx, sampleProduct(8, 12000))

	assert.Equal(t, int64(17000), s.Subtotal())
	assert.Equal(t, int64(0), s.ShippingCost())
	assert.Equal(t, int64(17000), s.Total())

	// Removing the expensive piece drops below the threshold.
	s.Remove(ctx, 8)

	assert.Equal(t, int64(5000), s.Subtotal())
	assert.Equal(t, int64(1500), s.ShippingCost())
	assert.Equal(t, int64(6500), s.Total())
}

func TestTotals_EmptyCart(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, 0, s.TotalItems())
	assert.Equal(t, int64(0), s.Subtotal())
	assert.Equal(t, int64(1500), s.ShippingCost())
}

// ---------------------------------------------------------------------------
// Clear / Load
// ---------------------------------------------------------------------------

func TestClear_EmptiesAndRemovesPersistedCopy(t *testing.T) {
	s, st := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, sampleProduct(7, 5000))
	s.Clear(ctx)

	assert.Empty(t, s.Lines())
	_, err := st.Get(ctx, "luxus-cart")
	assert.Error(t, err)
}

func TestLoad_RoundTrip(t *testing.T) {
	st := memory.New()
	cfg := testCartConfig()
	ctx := context.Background()

	first := New(st, cfg, newTestLogger())
	first.Add(ctx, sampleProduct(7, 5000))
	first.UpdateQuantity(ctx, 7, 2)

	second := New(st, cfg, newTestLogger())
	second.Load(ctx)

	require.Len(t, second.Lines(), 1)
	assert.Equal(t, 2, second.Quantity(7))
	assert.Equal(t, int64(10000), second.Subtotal())
}

func TestLoad_MissingDataYieldsEmptyCart(t *testing.T) {
	s, _ := newTestStore(t)

	s.Load(context.Background())

	assert.Empty(t, s.Lines())
	assert.Equal(t, int64(0), s.Subtotal())
}

func TestLoad_CorruptDataYieldsEmptyCart(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "luxus-cart", []byte("{{{corrupt")))

	s := New(st, testCartConfig(), newTestLogger())
	s.Load(ctx)

	assert.Empty(t, s.Lines())
	assert.Equal(t, int64(0), s.Total()-s.ShippingCost())
}

func TestLoad_DropsNonPositiveQuantities(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	persisted := domain.Cart{Lines: []domain.CartLine{
		{ProductID: 7, PriceCents: 5000, Quantity: 2},
		{ProductID: 8, PriceCents: 1000, Quantity: 0},
	}}
	payload, err := json.Marshal(persisted)
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, "luxus-cart", payload))

	s := New(st, testCartConfig(), newTestLogger())
	s.Load(ctx)

	require.Len(t, s.Lines(), 1)
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(8))
}

func TestClearThenLoad_EmptyCartZeroTotal(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	s := New(st, testCartConfig(), newTestLogger())
	s.Add(ctx, sampleProduct(7, 5000))
	s.Clear(ctx)

	reloaded := New(st, testCartConfig(), newTestLogger())
	reloaded.Load(ctx)

	assert.Empty(t, reloaded.Lines())
	assert.Equal(t, int64(0), reloaded.ShippingCost(), "nothing to ship in an empty cart")
	assert.Equal(t, int64(0), reloaded.Total())
}

func TestEmptyCart_ZeroTotal(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, int64(0), s.Subtotal())
	assert.Equal(t, int64(0), s.ShippingCost())
	assert.Equal(t, int64(0), s.Total())
}

// ---------------------------------------------------------------------------
// Persistence failure handling
// ---------------------------------------------------------------------------

type failingStore struct {
	*memory.Store
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	return assert.AnError
}

func TestAdd_PersistFailureStillMutatesMemory(t *testing.T) {
	var handled []error
	st := &failingStore{Store: memory.New()}
	s := New(st, testCartConfig(), newTestLogger(), WithPersistErrorHandler(func(err error) {
		handled = append(handled, err)
	}))
	ctx := context.Background()

	res := s.Add(ctx, sampleProduct(7, 5000))

	// In-memory state is authoritative even when the write-through fails.
	assert.True(t, res.Success)
	assert.True(t, s.Contains(7))

	require.Len(t, handled, 1)
	assert.ErrorIs(t, s.LastPersistErr(), assert.AnError)
}

func TestLastPersistErr_ClearedOnSuccess(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, sampleProduct(7, 5000))
	assert.NoError(t, s.LastPersistErr())
}
