package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Backend defines every storefront endpoint the client consumes. It is
// implemented by *Client and by fakes in store tests.
type Backend interface {
	FetchCart(ctx context.Context, userID string) (*Cart, error)
	AddToCart(ctx context.Context, userID, productID string, quantity int, variantID int64) (*Cart, error)
	UpdateCartItem(ctx context.Context, userID, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, userID, productID string) (*Cart, error)
	ClearCart(ctx context.Context, userID string) error
	MergeGuestCart(ctx context.Context, userID string) (*Cart, error)
	ValidateVoucher(ctx context.Context, req VoucherRequest) (*VoucherResult, error)
	FetchFavorites(ctx context.Context, userID string) ([]Product, error)
	AddFavorite(ctx context.Context, userID, productID string) error
	RemoveFavorite(ctx context.Context, userID, productID string) error
	FetchProducts(ctx context.Context, query ProductQuery) (ProductPage, error)
	Autocomplete(ctx context.Context, query string, limit int) ([]Suggestion, error)
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// Client talks to the storefront gateway over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBase   = "127.0.0.1:8080"
	defaultUserAgent = "basket/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client from the configured API base. Bare host:port
// values get an http scheme.
func NewClient(apiBase string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchCart retrieves the user's current cart.
func (c *Client) FetchCart(ctx context.Context, userID string) (*Cart, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("userId", userID)
	rel := &url.URL{Path: "/api/cart", RawQuery: values.Encode()}
	var payload Cart
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AddToCart adds a product line and returns the full replacement cart.
// variantID zero means no variant.
func (c *Client) AddToCart(ctx context.Context, userID, productID string, quantity int, variantID int64) (*Cart, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("userId", userID)
	body := map[string]any{
		"productId": productID,
		"quantity":  quantity,
	}
	if variantID > 0 {
		body["variantId"] = variantID
	}
	rel := &url.URL{Path: "/api/cart/add", RawQuery: values.Encode()}
	var payload Cart
	if err := c.do(ctx, http.MethodPost, rel, body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateCartItem changes a line's quantity. The response payload is ignored
// on purpose: callers re-fetch the cart for authoritative totals.
func (c *Client) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/cart/" + url.PathEscape(userID) + "/update"}
	body := map[string]any{
		"productId": productID,
		"quantity":  quantity,
	}
	return c.do(ctx, http.MethodPut, rel, body, nil)
}

// RemoveFromCart deletes a line and returns the full replacement cart.
func (c *Client) RemoveFromCart(ctx context.Context, userID, productID string) (*Cart, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/cart/" + url.PathEscape(userID) + "/remove/" + url.PathEscape(productID)}
	var payload Cart
	if err := c.do(ctx, http.MethodDelete, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ClearCart removes every line from the user's cart.
func (c *Client) ClearCart(ctx context.Context, userID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/cart/" + url.PathEscape(userID) + "/clear"}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

// MergeGuestCart folds the guest-session cart into the user's cart and
// returns the merged result.
func (c *Client) MergeGuestCart(ctx context.Context, userID string) (*Cart, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("userId", userID)
	rel := &url.URL{Path: "/api/cart/merge", RawQuery: values.Encode()}
	var payload Cart
	if err := c.do(ctx, http.MethodPost, rel, map[string]any{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ValidateVoucher asks the voucher service whether a code applies to the
// given order.
func (c *Client) ValidateVoucher(ctx context.Context, req VoucherRequest) (*VoucherResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/vouchers/validate"}
	var payload VoucherResult
	if err := c.do(ctx, http.MethodPost, rel, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchFavorites lists the user's favorited products with full denormalized
// display data.
func (c *Client) FetchFavorites(ctx context.Context, userID string) ([]Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/favorites/user/" + url.PathEscape(userID)}
	var payload []Product
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// AddFavorite marks a product as favorited.
func (c *Client) AddFavorite(ctx context.Context, userID, productID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/favorites/user/" + url.PathEscape(userID) + "/add"}
	body := map[string]any{"productId": productID}
	return c.do(ctx, http.MethodPost, rel, body, nil)
}

// RemoveFavorite clears a product's favorited mark.
func (c *Client) RemoveFavorite(ctx context.Context, userID, productID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/favorites/user/" + url.PathEscape(userID) + "/remove/" + url.PathEscape(productID)}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

// FetchProducts retrieves one catalog page.
func (c *Client) FetchProducts(ctx context.Context, query ProductQuery) (ProductPage, error) {
	if c == nil {
		return ProductPage{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if search := strings.TrimSpace(query.Search); search != "" {
		values.Set("search", search)
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.Size > 0 {
		values.Set("size", strconv.Itoa(query.Size))
	}
	rel := &url.URL{Path: "/api/products", RawQuery: values.Encode()}
	var payload ProductPage
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return ProductPage{}, err
	}
	return payload, nil
}

// Autocomplete fetches search-as-you-type suggestions.
func (c *Client) Autocomplete(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("q", strings.TrimSpace(query))
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	rel := &url.URL{Path: "/api/products/autocomplete", RawQuery: values.Encode()}
	var payload []Suggestion
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Path: rel.Path}
		// Best effort: failed decodes leave an empty body.
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Body)
		return apiErr
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// AsAPIError unwraps err to an *APIError when one is present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
