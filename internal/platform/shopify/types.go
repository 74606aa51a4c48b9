// Package shopify implements the StorefrontGateway interface against the
// Shopify Storefront GraphQL API.
package shopify

import "encoding/json"

// graphQLRequest is the JSON body sent to the Storefront endpoint.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLResponse is the envelope every Storefront call comes back in.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type userError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

// Raw catalog shapes. The Storefront API wraps every list in a
// connection of edges; these mirror that wire format before mapping
// into domain entities.

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type productsData struct {
	Products productConnection `json:"products"`
}

type productConnection struct {
	PageInfo pageInfo      `json:"pageInfo"`
	Edges    []productEdge `json:"edges"`
}

type productEdge struct {
	Node productNode `json:"node"`
}

type productNode struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Handle      string            `json:"handle"`
	Images      imageConnection   `json:"images"`
	Variants    variantConnection `json:"variants"`
}

type imageConnection struct {
	Edges []imageEdge `json:"edges"`
}

type imageEdge struct {
	Node imageNode `json:"node"`
}

type imageNode struct {
	URL string `json:"url"`
}

type variantConnection struct {
	Edges []variantEdge `json:"edges"`
}

type variantEdge struct {
	Node variantNode `json:"node"`
}

type variantNode struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Price moneyNode `json:"price"`
}

type moneyNode struct {
	Amount string `json:"amount"`
}

// Checkout mutation shapes.

type checkoutNode struct {
	ID     string `json:"id"`
	WebURL string `json:"webUrl"`
}

type checkoutCreateData struct {
	CheckoutCreate struct {
		Checkout           *checkoutNode `json:"checkout"`
		CheckoutUserErrors []userError   `json:"checkoutUserErrors"`
	} `json:"checkoutCreate"`
}

type checkoutLineItemsAddData struct {
	CheckoutLineItemsAdd struct {
		Checkout           *checkoutNode `json:"checkout"`
		CheckoutUserErrors []userError   `json:"checkoutUserErrors"`
	} `json:"checkoutLineItemsAdd"`
}
