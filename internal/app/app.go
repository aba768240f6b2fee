// Package app wires the client commerce core together: one Session owns the
// storage backend, the TTL cache and the cart and favorites stores, plus the
// catalog and orders clients that share them. Everything is constructed
// explicitly and injected, so tests can swap any layer.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/cache"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/cart"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/catalog"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/config"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/favorites"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/orders"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/storage"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/storage/memory"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/storage/redis"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/storage/sqlite"
	apperrors "github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/errors"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/health"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/httpclient"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/logger"
)

// Session is one user session's view of the commerce core.
type Session struct {
	ID        string
	Config    *config.Config
	Logger    *slog.Logger
	Store     storage.Store
	Cache     *cache.Manager
	Cart      *cart.Store
	Favorites *favorites.Store
	Catalog   *catalog.Client
	Orders    *orders.Client
	Prober    *health.Prober
}

// NewSession builds a session from configuration, opening the configured
// storage backend.
func NewSession(ctx context.Context, cfg *config.Config) (*Session, error) {
	log := logger.New("luxus-client", cfg.LogLevel)

	st, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewSessionWithStore(cfg, st, log), nil
}

// NewSessionWithStore builds a session on an already-open storage backend.
// Used by tests and by callers that manage the backend lifecycle themselves.
func NewSessionWithStore(cfg *config.Config, st storage.Store, log *slog.Logger) *Session {
	sessionID := uuid.NewString()
	log = log.With(slog.String("session_id", sessionID))

	// Catalog and orders share one breaker-protected client; the health
	// prober keeps a direct line so it reports the backend's real state.
	httpc := httpclient.New(httpclient.DefaultConfig())
	backend := httpclient.NewCircuitBreakerClient(httpc,
		httpclient.DefaultCircuitBreakerConfig("luxus-backend"), log)
	cm := cache.New(st, cfg.CachePrefix, cfg.CacheTTL(), log)

	s := &Session{
		ID:        sessionID,
		Config:    cfg,
		Logger:    log,
		Store:     st,
		Cache:     cm,
		Cart:      cart.New(st, cfg, log),
		Favorites: favorites.New(st, cfg, log),
		Catalog:   catalog.New(cfg.APIBaseURL, backend, cm, log),
		Orders:    orders.New(cfg.APIBaseURL, backend, log),
		Prober:    health.NewProber(5 * time.Second),
	}
	s.Prober.Register("backend", backendChecker(httpc, cfg.APIBaseURL))
	s.Prober.Register("storage", storageChecker(st))
	return s
}

// Health probes the REST backend and the storage backend.
func (s *Session) Health(ctx context.Context) health.Report {
	return s.Prober.Check(ctx)
}

func backendChecker(httpc *httpclient.Client, baseURL string) health.Checker {
	return func(ctx context.Context) error {
		resp, err := httpc.Get(ctx, baseURL+"/health")
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("backend health returned status %d", resp.StatusCode)
		}
		return nil
	}
}

func storageChecker(st storage.Store) health.Checker {
	return func(ctx context.Context) error {
		// A miss on the probe key still proves the backend answers.
		_, err := st.Get(ctx, "health-probe")
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return nil
	}
}

func openBackend(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		st, err := redis.Connect(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("connect redis backend: %w", err)
		}
		return st, nil
	case config.BackendSQLite:
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return st, nil
	default:
		return memory.New(), nil
	}
}

// Load hydrates the cart and favorites from storage. Missing or corrupt
// payloads fall back to empty state, so Load never fails.
func (s *Session) Load(ctx context.Context) {
	s.Cart.Load(ctx)
	s.Favorites.Load(ctx)
}

// Checkout submits the current cart as an order and clears the cart on
// success.
func (s *Session) Checkout(ctx context.Context, userID int64, address orders.Address) (*orders.Order, error) {
	order, err := s.Orders.Submit(ctx, userID, s.Cart.Lines(), address)
	if err != nil {
		return nil, err
	}
	s.Cart.Clear(ctx)
	return order, nil
}

// Logout drops every cached entry in the session's namespace. Cart and
// favorites persistence is left untouched.
func (s *Session) Logout(ctx context.Context) {
	s.Cache.InvalidateAll(ctx)
}

// Close releases the storage backend.
func (s *Session) Close() error {
	return s.Store.Close()
}
