package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, 5, cfg.CacheTTLMinutes)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, "luxus_cache_", cfg.CachePrefix)
	assert.Equal(t, "luxus-cart", cfg.CartStorageKey)
	assert.Equal(t, "luxus-favorites", cfg.FavoritesStorageKey)
	assert.Equal(t, int64(1500), cfg.ShippingFeeCents)
	assert.Equal(t, int64(15000), cfg.FreeShippingThresholdCents)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LUXUS_STORAGE_BACKEND", "redis")
	t.Setenv("LUXUS_CACHE_TTL_MINUTES", "10")
	t.Setenv("LUXUS_SHIPPING_FEE_CENTS", "990")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.StorageBackend)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL())
	assert.Equal(t, int64(990), cfg.ShippingFeeCents)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("LUXUS_STORAGE_BACKEND", "mongodb")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage backend")
}

func TestLoad_NonPositiveTTL(t *testing.T) {
	t.Setenv("LUXUS_CACHE_TTL_MINUTES", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache TTL")
}

func TestLoad_SameStorageKeys(t *testing.T) {
	t.Setenv("LUXUS_CART_STORAGE_KEY", "luxus-data")
	t.Setenv("LUXUS_FAVORITES_STORAGE_KEY", "luxus-data")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

func TestLoad_NegativeFee(t *testing.T) {
	t.Setenv("LUXUS_SHIPPING_FEE_CENTS", "-1")

	_, err := Load()
	require.Error(t, err)
}
