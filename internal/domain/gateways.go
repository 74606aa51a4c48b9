// Package domain contains the core business entities and interfaces for the storefront service.
package domain

import "context"

// StorefrontGateway defines the interface for interacting with the
// storefront platform. This is a "port" in hexagonal architecture - the
// domain defines what it needs, and the platform adapter provides the
// implementation.
type StorefrontGateway interface {
	// FetchProducts retrieves the full product catalog in a single bulk
	// operation. The gateway is responsible for exhausting the platform's
	// pagination internally; callers see one ordered list.
	FetchProducts(ctx context.Context) ([]Product, error)

	// CreateCheckout creates a new, empty checkout session. One session is
	// created per invocation; sessions are never reused across calls.
	CreateCheckout(ctx context.Context) (*CheckoutSession, error)

	// AddLineItems adds line items to an existing checkout session and
	// returns the session with its hosted payment URL populated.
	AddLineItems(ctx context.Context, checkoutID string, items []LineItem) (*CheckoutSession, error)
}

// GatewayConnector constructs a StorefrontGateway from store credentials.
// The bootstrapper invokes it exactly once, after validating the config.
type GatewayConnector func(cfg StoreConfig) StorefrontGateway
