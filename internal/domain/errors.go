// Package domain contains the core business entities and interfaces for the storefront service.
package domain

import "errors"

// Domain errors represent the failure taxonomy of the storefront core.
var (
	// ErrConfigurationMissing is returned when a required store credential
	// is absent. The bootstrapper treats this as terminal.
	ErrConfigurationMissing = errors.New("store configuration is missing or incomplete")

	// ErrCatalogFetchFailed is returned when the product catalog cannot be
	// retrieved from the storefront platform.
	ErrCatalogFetchFailed = errors.New("failed to fetch product catalog")

	// ErrCheckoutFailed is returned when checkout session creation or
	// line-item addition fails on the platform side.
	ErrCheckoutFailed = errors.New("failed to create checkout session")

	// ErrClientNotReady is returned when a checkout is attempted before the
	// catalog bootstrap has completed successfully.
	ErrClientNotReady = errors.New("storefront client is not ready")

	// ErrInvalidCheckoutRequest is returned when the checkout request data
	// is invalid.
	ErrInvalidCheckoutRequest = errors.New("invalid checkout request")
)

// StorefrontError wraps a domain error with additional context.
type StorefrontError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface.
func (e *StorefrontError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap allows errors.Is and errors.As to work with StorefrontError.
func (e *StorefrontError) Unwrap() error {
	return e.Err
}

// NewStorefrontError creates a new StorefrontError with the given error and message.
func NewStorefrontError(err error, message, code string) *StorefrontError {
	return &StorefrontError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}
