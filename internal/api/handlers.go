// Package api contains the HTTP handlers and routing for the storefront service.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emberwick/emberwick-storefront/internal/catalog"
	"github.com/emberwick/emberwick-storefront/internal/checkout"
	"github.com/emberwick/emberwick-storefront/internal/domain"
	"github.com/emberwick/emberwick-storefront/internal/pricing"
)

// ConfigSource supplies the store credentials served by the config provider
// endpoint.
type ConfigSource interface {
	StoreConfig() domain.StoreConfig
}

// CatalogSource supplies the bootstrap state and the fetched catalog.
type CatalogSource interface {
	Snapshot() catalog.Snapshot
}

// Handler contains the HTTP handlers for the storefront API.
type Handler struct {
	configs         ConfigSource
	catalogs        CatalogSource
	checkoutService *checkout.Service
	logger          *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(configs ConfigSource, catalogs CatalogSource, checkoutService *checkout.Service, logger *zap.Logger) *Handler {
	return &Handler{
		configs:         configs,
		catalogs:        catalogs,
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// GetStoreConfig handles GET /api/config/shopify
// It always answers 200 with the credential pair, empty fields included;
// detecting an incomplete configuration is the consumer's job, not the
// provider's.
func (h *Handler) GetStoreConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.configs.StoreConfig())
}

// VariantView is a display-ready variant: the raw decimal amount plus the
// formatted price rendered at response time.
type VariantView struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Price        string `json:"price"`
	DisplayPrice string `json:"displayPrice"`
}

// ProductView is a display-ready product record.
type ProductView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Handle      string        `json:"handle"`
	Images      []string      `json:"images"`
	Variants    []VariantView `json:"variants"`
}

// CatalogResponse represents the response from the catalog endpoint.
type CatalogResponse struct {
	State    string        `json:"state"`
	Featured []ProductView `json:"featured"`
	Products []ProductView `json:"products"`
	Message  string        `json:"message,omitempty"`
}

// noProductsMessage is served instead of a bare empty grid when the store
// has zero products; an empty catalog is a valid Ready state, not an error.
const noProductsMessage = "No products are available right now."

// GetCatalog handles GET /api/catalog
// Serves the bootstrapped catalog and featured lists when Ready; otherwise
// reports the loading or terminal configuration-error state.
func (h *Handler) GetCatalog(c *gin.Context) {
	snap := h.catalogs.Snapshot()

	switch snap.State {
	case catalog.StateReady:
		resp := CatalogResponse{
			State:    string(snap.State),
			Featured: toProductViews(snap.Featured),
			Products: toProductViews(snap.Catalog),
		}
		if len(snap.Catalog) == 0 {
			resp.Message = noProductsMessage
		}
		c.JSON(http.StatusOK, resp)

	case catalog.StateLoading:
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Success: false,
			Error:   "catalog is still loading",
			Code:    "CATALOG_LOADING",
		})

	default: // catalog.StateConfigError
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Success: false,
			Error:   "store is not configured or the catalog could not be fetched",
			Code:    snap.Code,
		})
	}
}

// CheckoutRequest represents the JSON body for the checkout endpoint.
// Quantity is a pointer so an omitted field (defaults to one unit) can be
// told apart from an explicit zero (a validation error).
type CheckoutRequest struct {
	VariantID string `json:"variantId" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"omitempty,gte=1"`
}

// CreateCheckout handles POST /api/checkout
// Creates a checkout session with the single requested line item and
// redirects to the platform's hosted payment page. The redirect is
// terminal: nothing about the session is tracked afterwards.
func (h *Handler) CreateCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
			Code:    "VALIDATION_ERROR",
		})
		return
	}

	// Quantity omitted means one unit.
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	session, err := h.checkoutService.Initiate(c.Request.Context(), req.VariantID, quantity)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, session.WebURL)
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "emberwick-storefront",
	})
}

// toProductViews formats products for display, preserving platform order.
func toProductViews(products []domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		variants := make([]VariantView, 0, len(p.Variants))
		for _, v := range p.Variants {
			variants = append(variants, VariantView{
				ID:           v.ID,
				Title:        v.Title,
				Price:        v.Price.Amount,
				DisplayPrice: pricing.FormatAmount(v.Price.Amount),
			})
		}
		views = append(views, ProductView{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Handle:      p.Handle,
			Images:      p.Images,
			Variants:    variants,
		})
	}
	return views
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(c *gin.Context, err error) {
	var sfErr *domain.StorefrontError
	if errors.As(err, &sfErr) {
		statusCode := http.StatusInternalServerError

		switch {
		case errors.Is(sfErr.Err, domain.ErrInvalidCheckoutRequest):
			statusCode = http.StatusBadRequest
		case errors.Is(sfErr.Err, domain.ErrClientNotReady):
			statusCode = http.StatusServiceUnavailable
		case errors.Is(sfErr.Err, domain.ErrCheckoutFailed):
			statusCode = http.StatusBadGateway
		case errors.Is(sfErr.Err, domain.ErrCatalogFetchFailed):
			statusCode = http.StatusBadGateway
		}

		c.JSON(statusCode, ErrorResponse{
			Success: false,
			Error:   sfErr.Message,
			Code:    sfErr.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   "Internal server error",
		Code:    "INTERNAL_ERROR",
	})
}
