// Package domain contains the core business entities and interfaces for the storefront service.
package domain

// StoreConfig holds the credentials for the storefront platform.
// Both fields come from the environment at server start and are immutable
// for the lifetime of the process. Empty fields are a valid state: the
// config provider serves them as-is and validation happens in the
// bootstrapper, not here.
type StoreConfig struct {
	Domain                string `json:"domain"`
	StorefrontAccessToken string `json:"storefrontAccessToken"`
}

// Complete reports whether both credentials are present. A partially
// populated config is treated the same as a fully absent one.
func (c StoreConfig) Complete() bool {
	return c.Domain != "" && c.StorefrontAccessToken != ""
}

// Price carries a variant price as a decimal string. Keeping the amount as
// a string avoids floating-point rounding in transit; conversion to a
// display value happens only at render time.
type Price struct {
	Amount string `json:"amount"`
}

// Variant is a purchasable SKU-level option of a product.
type Variant struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price Price  `json:"price"`
}

// Product is a read-only projection of a platform product record.
// Image and variant ordering is whatever the platform returned.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Handle      string    `json:"handle"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants"`
}

// LineItem is a single entry added to a checkout session.
type LineItem struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutSession is a platform-side cart identified by an opaque id,
// culminating in a hosted payment URL. Sessions are created per checkout
// click and never reused; abandoned ones are garbage-collected by the
// platform.
type CheckoutSession struct {
	ID     string `json:"id"`
	WebURL string `json:"webUrl"`
}
