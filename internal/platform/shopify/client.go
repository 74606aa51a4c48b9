// Package shopify implements the StorefrontGateway interface against the
// Shopify Storefront GraphQL API.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emberwick/emberwick-storefront/internal/domain"
)

// DefaultAPIVersion is the Storefront API version used when none is configured.
const DefaultAPIVersion = "2023-07"

// pageSize is how many products each catalog page requests. FetchProducts
// exhausts pagination internally, so the value only affects round trips.
const pageSize = 50

// Client talks to the Shopify Storefront GraphQL endpoint for a single
// store. It implements domain.StorefrontGateway.
type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a Storefront client for the given store.
// Any http:// or https:// prefix on the domain is stripped before the
// endpoint is built, so both "my-store.myshopify.com" and
// "https://my-store.myshopify.com" work.
func NewClient(storeDomain, accessToken, apiVersion string) *Client {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	host := strings.TrimPrefix(storeDomain, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")

	return &Client{
		endpoint:    fmt.Sprintf("https://%s/api/%s/graphql.json", host, apiVersion),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

const productsQuery = `
query Products($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    pageInfo { hasNextPage endCursor }
    edges {
      node {
        id
        title
        description
        handle
        images(first: 20) { edges { node { url } } }
        variants(first: 100) {
          edges { node { id title price { amount } } }
        }
      }
    }
  }
}`

// FetchProducts retrieves the full catalog, following the products
// connection cursor until the platform reports no further pages. Platform
// ordering is preserved.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	var cursor string

	for {
		vars := map[string]any{"first": pageSize}
		if cursor != "" {
			vars["after"] = cursor
		}

		var data productsData
		if err := c.execute(ctx, productsQuery, vars, &data); err != nil {
			return nil, domain.NewStorefrontError(domain.ErrCatalogFetchFailed,
				"products query failed: "+err.Error(), "CATALOG_FETCH_ERROR")
		}

		for _, edge := range data.Products.Edges {
			products = append(products, mapProduct(edge.Node))
		}

		if !data.Products.PageInfo.HasNextPage {
			return products, nil
		}
		cursor = data.Products.PageInfo.EndCursor
	}
}

const checkoutCreateMutation = `
mutation CheckoutCreate {
  checkoutCreate(input: {}) {
    checkout { id webUrl }
    checkoutUserErrors { field message }
  }
}`

// CreateCheckout creates a new, empty checkout session.
func (c *Client) CreateCheckout(ctx context.Context) (*domain.CheckoutSession, error) {
	var data checkoutCreateData
	if err := c.execute(ctx, checkoutCreateMutation, nil, &data); err != nil {
		return nil, domain.NewStorefrontError(domain.ErrCheckoutFailed,
			"checkoutCreate mutation failed: "+err.Error(), "CHECKOUT_CREATE_ERROR")
	}

	result := data.CheckoutCreate
	if len(result.CheckoutUserErrors) > 0 || result.Checkout == nil {
		return nil, domain.NewStorefrontError(domain.ErrCheckoutFailed,
			"checkoutCreate rejected: "+joinUserErrors(result.CheckoutUserErrors),
			"CHECKOUT_CREATE_REJECTED")
	}

	return &domain.CheckoutSession{
		ID:     result.Checkout.ID,
		WebURL: result.Checkout.WebURL,
	}, nil
}

const checkoutLineItemsAddMutation = `
mutation CheckoutLineItemsAdd($checkoutId: ID!, $lineItems: [CheckoutLineItemInput!]!) {
  checkoutLineItemsAdd(checkoutId: $checkoutId, lineItems: $lineItems) {
    checkout { id webUrl }
    checkoutUserErrors { field message }
  }
}`

// AddLineItems adds line items to an existing checkout session and returns
// the session with its hosted payment URL.
func (c *Client) AddLineItems(ctx context.Context, checkoutID string, items []domain.LineItem) (*domain.CheckoutSession, error) {
	lineItems := make([]map[string]any, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, map[string]any{
			"variantId": item.VariantID,
			"quantity":  item.Quantity,
		})
	}

	vars := map[string]any{
		"checkoutId": checkoutID,
		"lineItems":  lineItems,
	}

	var data checkoutLineItemsAddData
	if err := c.execute(ctx, checkoutLineItemsAddMutation, vars, &data); err != nil {
		return nil, domain.NewStorefrontError(domain.ErrCheckoutFailed,
			"checkoutLineItemsAdd mutation failed: "+err.Error(), "LINE_ITEMS_ADD_ERROR")
	}

	result := data.CheckoutLineItemsAdd
	if len(result.CheckoutUserErrors) > 0 || result.Checkout == nil {
		return nil, domain.NewStorefrontError(domain.ErrCheckoutFailed,
			"checkoutLineItemsAdd rejected: "+joinUserErrors(result.CheckoutUserErrors),
			"LINE_ITEMS_ADD_REJECTED")
	}

	return &domain.CheckoutSession{
		ID:     result.Checkout.ID,
		WebURL: result.Checkout.WebURL,
	}, nil
}

// execute posts a GraphQL request and decodes the data payload into out.
func (c *Client) execute(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return fmt.Errorf("graphql errors: %s", strings.Join(messages, "; "))
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode data payload: %w", err)
	}

	return nil
}

// mapProduct flattens a raw product node into the domain shape, unwrapping
// the edge/node connections and keeping platform ordering.
func mapProduct(node productNode) domain.Product {
	images := make([]string, 0, len(node.Images.Edges))
	for _, edge := range node.Images.Edges {
		images = append(images, edge.Node.URL)
	}

	variants := make([]domain.Variant, 0, len(node.Variants.Edges))
	for _, edge := range node.Variants.Edges {
		variants = append(variants, domain.Variant{
			ID:    edge.Node.ID,
			Title: edge.Node.Title,
			Price: domain.Price{Amount: edge.Node.Price.Amount},
		})
	}

	return domain.Product{
		ID:          node.ID,
		Title:       node.Title,
		Description: node.Description,
		Handle:      node.Handle,
		Images:      images,
		Variants:    variants,
	}
}

func joinUserErrors(errs []userError) string {
	if len(errs) == 0 {
		return "no checkout returned"
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "; ")
}
