package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/config"
)

// Storage backend names accepted by StorageBackend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config holds all configuration for the client commerce core.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// REST backend
	APIBaseURL string `env:"LUXUS_API_BASE_URL" envDefault:"http://localhost:5000/api"`

	// Key-value storage backend: memory, redis or sqlite.
	StorageBackend string `env:"LUXUS_STORAGE_BACKEND" envDefault:"memory"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass      string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	SQLitePath     string `env:"LUXUS_SQLITE_PATH" envDefault:"luxus.db"`

	// Cache
	CacheTTLMinutes int    `env:"LUXUS_CACHE_TTL_MINUTES" envDefault:"5"`
	CachePrefix     string `env:"LUXUS_CACHE_PREFIX" envDefault:"luxus_cache_"`

	// Store persistence keys
	CartStorageKey      string `env:"LUXUS_CART_STORAGE_KEY" envDefault:"luxus-cart"`
	FavoritesStorageKey string `env:"LUXUS_FAVORITES_STORAGE_KEY" envDefault:"luxus-favorites"`

	// Cart pricing, in cents
	ShippingFeeCents           int64 `env:"LUXUS_SHIPPING_FEE_CENTS" envDefault:"1500"`
	FreeShippingThresholdCents int64 `env:"LUXUS_FREE_SHIPPING_THRESHOLD_CENTS" envDefault:"15000"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load client core config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CacheTTL returns the default cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("invalid storage backend: %q", c.StorageBackend)
	}
	if c.CacheTTLMinutes <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %d", c.CacheTTLMinutes)
	}
	if c.CachePrefix == "" {
		return fmt.Errorf("cache prefix must not be empty")
	}
	if c.CartStorageKey == "" || c.FavoritesStorageKey == "" {
		return fmt.Errorf("storage keys must not be empty")
	}
	if c.CartStorageKey == c.FavoritesStorageKey {
		return fmt.Errorf("cart and favorites storage keys must differ")
	}
	if c.ShippingFeeCents < 0 {
		return fmt.Errorf("shipping fee must not be negative, got %d", c.ShippingFeeCents)
	}
	if c.FreeShippingThresholdCents < 0 {
		return fmt.Errorf("free shipping threshold must not be negative, got %d", c.FreeShippingThresholdCents)
	}
	return nil
}
