package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberwick/emberwick-storefront/config"
	"github.com/emberwick/emberwick-storefront/internal/catalog"
	"github.com/emberwick/emberwick-storefront/internal/checkout"
	"github.com/emberwick/emberwick-storefront/internal/domain"
)

type stubConfig struct {
	cfg domain.StoreConfig
}

func (s stubConfig) StoreConfig() domain.StoreConfig { return s.cfg }

type stubCatalog struct {
	snap catalog.Snapshot
}

func (s stubCatalog) Snapshot() catalog.Snapshot { return s.snap }

// fakeGateway is a hand-rolled StorefrontGateway that records calls.
type fakeGateway struct {
	fetchCalls  int
	createCalls int
	addCalls    int

	createErr error
	addErr    error
	lastItems []domain.LineItem
	webURL    string
}

func (f *fakeGateway) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	f.fetchCalls++
	return nil, nil
}

func (f *fakeGateway) CreateCheckout(ctx context.Context) (*domain.CheckoutSession, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.CheckoutSession{ID: "chk-1"}, nil
}

func (f *fakeGateway) AddLineItems(ctx context.Context, checkoutID string, items []domain.LineItem) (*domain.CheckoutSession, error) {
	f.addCalls++
	f.lastItems = items
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &domain.CheckoutSession{ID: checkoutID, WebURL: f.webURL}, nil
}

type fixedHandles struct {
	gateway domain.StorefrontGateway
}

func (f fixedHandles) Gateway() (domain.StorefrontGateway, bool) {
	return f.gateway, f.gateway != nil
}

type noHandles struct{}

func (noHandles) Gateway() (domain.StorefrontGateway, bool) { return nil, false }

func newTestRouter(configs ConfigSource, catalogs CatalogSource, handles checkout.HandleSource) *gin.Engine {
	logger := zap.NewNop()
	handler := NewHandler(configs, catalogs, checkout.NewService(handles, logger), logger)
	return SetupRouter(handler, gin.TestMode, logger)
}

func TestGetStoreConfig(t *testing.T) {
	t.Run("serves empty credentials verbatim with 200", func(t *testing.T) {
		router := newTestRouter(stubConfig{}, stubCatalog{}, noHandles{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/config/shopify", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"domain":"","storefrontAccessToken":""}`, w.Body.String())
	})

	t.Run("serves populated credentials", func(t *testing.T) {
		router := newTestRouter(stubConfig{domain.StoreConfig{
			Domain:                "shop.myshopify.com",
			StorefrontAccessToken: "shpat-token",
		}}, stubCatalog{}, noHandles{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/config/shopify", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"domain":"shop.myshopify.com","storefrontAccessToken":"shpat-token"}`, w.Body.String())
	})
}

func TestGetCatalog(t *testing.T) {
	products := []domain.Product{
		{
			ID:     "gid://shopify/Product/1",
			Title:  "Beeswax Pillar",
			Handle: "beeswax-pillar",
			Images: []string{"https://cdn.example.com/1.jpg"},
			Variants: []domain.Variant{
				{ID: "gid://shopify/ProductVariant/1", Title: "Default", Price: domain.Price{Amount: "19.5"}},
			},
		},
	}

	t.Run("ready state serves catalog with display prices", func(t *testing.T) {
		router := newTestRouter(stubConfig{}, stubCatalog{catalog.Snapshot{
			State:    catalog.StateReady,
			Catalog:  products,
			Featured: products,
		}}, noHandles{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp CatalogResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ready", resp.State)
		assert.Empty(t, resp.Message)
		require.Len(t, resp.Products, 1)
		require.Len(t, resp.Products[0].Variants, 1)
		assert.Equal(t, "19.5", resp.Products[0].Variants[0].Price)
		assert.Equal(t, "$19.50", resp.Products[0].Variants[0].DisplayPrice)
		require.Len(t, resp.Featured, 1)
	})

	t.Run("empty catalog carries the no-products message", func(t *testing.T) {
		router := newTestRouter(stubConfig{}, stubCatalog{catalog.Snapshot{
			State: catalog.StateReady,
		}}, noHandles{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp CatalogResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, noProductsMessage, resp.Message)
		assert.Empty(t, resp.Products)
	})

	t.Run("loading state answers 503", func(t *testing.T) {
		router := newTestRouter(stubConfig{}, stubCatalog{catalog.Snapshot{
			State: catalog.StateLoading,
		}}, noHandles{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "CATALOG_LOADING")
	})

	t.Run("config error state answers 503 with diagnostic code", func(t *testing.T) {
		router := newTestRouter(stubConfig{}, stubCatalog{catalog.Snapshot{
			State: catalog.StateConfigError,
			Code:  "CONFIG_MISSING",
		}}, noHandles{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "CONFIG_MISSING")
	})
}

func TestCreateCheckout(t *testing.T) {
	t.Run("redirects to the hosted payment page", func(t *testing.T) {
		gateway := &fakeGateway{webURL: "https://shop.myshopify.com/checkouts/chk-1"}
		router := newTestRouter(stubConfig{}, stubCatalog{}, fixedHandles{gateway})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/checkout",
			strings.NewReader(`{"variantId": "gid://shopify/ProductVariant/1", "quantity": 1}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "https://shop.myshopify.com/checkouts/chk-1", w.Header().Get("Location"))

		assert.Equal(t, 1, gateway.createCalls)
		assert.Equal(t, 1, gateway.addCalls)
		require.Len(t, gateway.lastItems, 1)
		assert.Equal(t, 1, gateway.lastItems[0].Quantity)
	})

	t.Run("quantity defaults to one when omitted", func(t *testing.T) {
		gateway := &fakeGateway{webURL: "https://shop.myshopify.com/checkouts/chk-1"}
		router := newTestRouter(stubConfig{}, stubCatalog{}, fixedHandles{gateway})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/checkout",
			strings.NewReader(`{"variantId": "gid://shopify/ProductVariant/1"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		require.Len(t, gateway.lastItems, 1)
		assert.Equal(t, 1, gateway.lastItems[0].Quantity)
	})

	t.Run("explicit zero quantity is rejected, not promoted to one", func(t *testing.T) {
		gateway := &fakeGateway{}
		router := newTestRouter(stubConfig{}, stubCatalog{}, fixedHandles{gateway})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/checkout",
			strings.NewReader(`{"variantId": "gid://shopify/ProductVariant/1", "quantity": 0}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, gateway.createCalls)
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		gateway := &fakeGateway{}
		router := newTestRouter(stubConfig{}, stubCatalog{}, fixedHandles{gateway})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/checkout",
			strings.NewReader(`{"variantId": "gid://shopify/ProductVariant/1", "quantity": -1}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, gateway.createCalls)
	})

	t.Run("client not ready fails without any platform call", func(t *testing.T) {
		router := newTestRouter(stubConfig{}, stubCatalog{}, noHandles{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/checkout",
			strings.NewReader(`{"variantId": "gid://shopify/ProductVariant/1"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Empty(t, w.Header().Get("Location"))
		assert.Contains(t, w.Body.String(), "CLIENT_NOT_READY")
	})

	t.Run("rejected session create surfaces an error and does not redirect", func(t *testing.T) {
		gateway := &fakeGateway{
			createErr: domain.NewStorefrontError(domain.ErrCheckoutFailed,
				"checkoutCreate rejected", "CHECKOUT_CREATE_REJECTED"),
		}
		router := newTestRouter(stubConfig{}, stubCatalog{}, fixedHandles{gateway})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/checkout",
			strings.NewReader(`{"variantId": "gid://shopify/ProductVariant/1"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Empty(t, w.Header().Get("Location"))
		assert.Equal(t, 0, gateway.addCalls)
	})

	t.Run("missing variant id is a validation error", func(t *testing.T) {
		gateway := &fakeGateway{}
		router := newTestRouter(stubConfig{}, stubCatalog{}, fixedHandles{gateway})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/checkout",
			strings.NewReader(`{"quantity": 1}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, gateway.createCalls)
	})
}

// TestUnconfiguredStoreEndToEnd walks the full path of a server started
// with no store credentials: the config provider still answers 200 with
// empty fields, the bootstrapper terminates in config error without ever
// constructing a platform client, and checkout refuses synchronously.
func TestUnconfiguredStoreEndToEnd(t *testing.T) {
	cfg := &config.Config{}

	connectorCalled := false
	connect := domain.GatewayConnector(func(domain.StoreConfig) domain.StorefrontGateway {
		connectorCalled = true
		return &fakeGateway{}
	})

	logger := zap.NewNop()
	bootstrapper := catalog.NewBootstrapper(cfg, connect, logger)
	handler := NewHandler(cfg, bootstrapper, checkout.NewService(bootstrapper, logger), logger)
	router := SetupRouter(handler, gin.TestMode, logger)

	bootstrapper.Run(context.Background())

	require.Equal(t, catalog.StateConfigError, bootstrapper.State())
	assert.False(t, connectorCalled, "no client may be constructed without credentials")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/config/shopify", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"domain":"","storefrontAccessToken":""}`, w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "CONFIG_MISSING")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/checkout",
		strings.NewReader(`{"variantId": "gid://shopify/ProductVariant/1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
