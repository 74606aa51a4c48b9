// Package catalog implements the catalog bootstrap flow: validate store
// credentials, construct the platform client, fetch the full catalog and
// partition it for display.
package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/emberwick/emberwick-storefront/internal/domain"
)

// State is the bootstrap state machine. Loading transitions exactly once,
// to either Ready or ConfigError; both are terminal for the process
// lifetime and the only recovery from ConfigError is a restart.
type State string

const (
	StateLoading     State = "loading"
	StateReady       State = "ready"
	StateConfigError State = "config_error"
)

// featuredCount is how many leading products form the featured subset.
// This is positional selection over platform ordering, not a ranking.
const featuredCount = 3

// ConfigProvider supplies the store credentials the bootstrapper validates.
type ConfigProvider interface {
	StoreConfig() domain.StoreConfig
}

// Snapshot is a point-in-time view of the bootstrap result, safe to hand
// to HTTP handlers.
type Snapshot struct {
	State    State
	Code     string
	Catalog  []domain.Product
	Featured []domain.Product
}

// Bootstrapper owns the platform client handle and the fetched catalog.
// The handle is written once, on successful bootstrap, and read by every
// subsequent checkout; handlers run on concurrent goroutines so access is
// guarded by a read-write mutex.
type Bootstrapper struct {
	provider ConfigProvider
	connect  domain.GatewayConnector
	logger   *zap.Logger

	mu       sync.RWMutex
	state    State
	code     string
	gateway  domain.StorefrontGateway
	catalog  []domain.Product
	featured []domain.Product
}

// NewBootstrapper creates a bootstrapper in the Loading state.
func NewBootstrapper(provider ConfigProvider, connect domain.GatewayConnector, logger *zap.Logger) *Bootstrapper {
	return &Bootstrapper{
		provider: provider,
		connect:  connect,
		logger:   logger,
		state:    StateLoading,
	}
}

// Run executes the bootstrap flow once. It is invoked a single time at
// startup and is not re-entrant. Missing credentials and fetch failures
// both land in the same terminal ConfigError state; the distinct cause is
// kept in the diagnostic code and the logs.
func (b *Bootstrapper) Run(ctx context.Context) {
	cfg := b.provider.StoreConfig()
	if !cfg.Complete() {
		b.logger.Warn("store credentials missing, catalog bootstrap aborted",
			zap.Error(domain.ErrConfigurationMissing))
		b.fail("CONFIG_MISSING")
		return
	}

	gateway := b.connect(cfg)

	products, err := gateway.FetchProducts(ctx)
	if err != nil {
		b.logger.Error("catalog fetch failed", zap.Error(err))
		b.fail(diagnosticCode(err, "CATALOG_FETCH_ERROR"))
		return
	}

	catalog := make([]domain.Product, 0, len(products))
	for _, p := range products {
		// A product without variants has no price and nothing to add to a
		// checkout, so it is dropped rather than rendered unbuyable.
		if len(p.Variants) == 0 {
			b.logger.Warn("skipping product with no variants",
				zap.String("product_id", p.ID),
				zap.String("handle", p.Handle))
			continue
		}
		catalog = append(catalog, p)
	}

	featured := catalog
	if len(featured) > featuredCount {
		featured = featured[:featuredCount]
	}

	b.mu.Lock()
	b.state = StateReady
	b.gateway = gateway
	b.catalog = catalog
	b.featured = featured
	b.mu.Unlock()

	b.logger.Info("catalog bootstrap complete",
		zap.Int("products", len(catalog)),
		zap.Int("featured", len(featured)))
}

// State returns the current bootstrap state.
func (b *Bootstrapper) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Snapshot returns the current state together with the catalog and
// featured lists, in platform order.
func (b *Bootstrapper) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{
		State:    b.state,
		Code:     b.code,
		Catalog:  b.catalog,
		Featured: b.featured,
	}
}

// Gateway returns the platform client handle once bootstrap has reached
// Ready. The second return value reports whether the handle exists;
// callers must check it before attempting any platform operation.
func (b *Bootstrapper) Gateway() (domain.StorefrontGateway, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gateway, b.gateway != nil
}

func (b *Bootstrapper) fail(code string) {
	b.mu.Lock()
	b.state = StateConfigError
	b.code = code
	b.mu.Unlock()
}

// diagnosticCode pulls the operator code off a StorefrontError, falling
// back when the error is something rawer.
func diagnosticCode(err error, fallback string) string {
	var sfErr *domain.StorefrontError
	if errors.As(err, &sfErr) && sfErr.Code != "" {
		return sfErr.Code
	}
	return fallback
}
