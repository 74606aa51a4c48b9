// Package checkout implements the checkout-initiation flow.
// This is the service/use-case layer: it validates the request, checks the
// platform client handle exists, and drives session creation.
package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/emberwick/emberwick-storefront/internal/domain"
)

// HandleSource exposes the platform client handle owned by the catalog
// bootstrapper. The boolean reports whether bootstrap has reached Ready.
type HandleSource interface {
	Gateway() (domain.StorefrontGateway, bool)
}

// Service implements the checkout business logic.
type Service struct {
	handles HandleSource
	logger  *zap.Logger
}

// NewService creates a checkout service reading the client handle from the
// given source.
func NewService(handles HandleSource, logger *zap.Logger) *Service {
	return &Service{
		handles: handles,
		logger:  logger,
	}
}

// Initiate handles the checkout flow:
// 1. Validates the variant id and quantity
// 2. Requires the platform client handle to exist (no network call without it)
// 3. Creates a fresh checkout session on the platform
// 4. Adds the single requested line item
// 5. Returns the session carrying the hosted payment URL for redirect
//
// Every invocation creates its own session; concurrent checkouts are
// independent user intents and are never coalesced. A session orphaned by
// a failed line-item add is abandoned - the platform garbage-collects it.
func (s *Service) Initiate(ctx context.Context, variantID string, quantity int) (*domain.CheckoutSession, error) {
	if variantID == "" {
		return nil, domain.NewStorefrontError(domain.ErrInvalidCheckoutRequest,
			"variantId is required", "VALIDATION_ERROR")
	}
	if quantity < 1 {
		return nil, domain.NewStorefrontError(domain.ErrInvalidCheckoutRequest,
			"quantity must be at least 1", "VALIDATION_ERROR")
	}

	gateway, ok := s.handles.Gateway()
	if !ok {
		return nil, domain.NewStorefrontError(domain.ErrClientNotReady,
			"storefront client has not finished bootstrapping", "CLIENT_NOT_READY")
	}

	session, err := gateway.CreateCheckout(ctx)
	if err != nil {
		s.logger.Error("checkout session creation failed",
			zap.String("variant_id", variantID),
			zap.Error(err))
		return nil, domain.NewStorefrontError(domain.ErrCheckoutFailed,
			"failed to create checkout session", "CHECKOUT_CREATE_ERROR")
	}

	session, err = gateway.AddLineItems(ctx, session.ID, []domain.LineItem{
		{VariantID: variantID, Quantity: quantity},
	})
	if err != nil {
		s.logger.Error("adding line item to checkout failed",
			zap.String("variant_id", variantID),
			zap.Int("quantity", quantity),
			zap.Error(err))
		return nil, domain.NewStorefrontError(domain.ErrCheckoutFailed,
			"failed to add line item to checkout", "LINE_ITEMS_ADD_ERROR")
	}

	s.logger.Info("checkout session created",
		zap.String("checkout_id", session.ID),
		zap.String("variant_id", variantID),
		zap.Int("quantity", quantity))

	return session, nil
}
