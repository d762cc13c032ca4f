// Package shopapi provides the HTTP client for the storefront REST API.
//
// # Overview
//
// This package defines the API client for the backend services basket
// consumes: cart, favorites, vouchers, and the product catalog. It handles
// HTTP communication, JSON serialization, and type-safe representation of
// the wire payloads. No business logic lives here; pricing, stock checks,
// and voucher validation are entirely server-side.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client, Backend interface, request/response handling
//   - types.go: data structures mirroring the storefront API schema
//   - errors.go: typed APIError carrying the structured error body
//
// # Backend Interface
//
// Every endpoint is listed on the Backend interface so the state stores can
// be tested against in-memory fakes:
//
//	var _ shopapi.Backend = (*shopapi.Client)(nil)
//
// The mockshop package implements the same wire contract server-side, which
// lets the client tests run against a real HTTP round trip via httptest.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: basket/0.1 headers
//   - Encode JSON bodies for mutations
//   - Have a 10-second timeout
//   - Return wrapped errors with context about what failed
//
// # Error Handling
//
// Responses with status >= 400 produce an *APIError that preserves the
// HTTP status and whatever structured body the service sent:
//
//	{hasError, errorMessage, error, message}
//
// Services are inconsistent about which field they populate, so APIError
// keeps all of them and exposes ServerMessage (best-effort text) and
// Structured (the dedicated errorMessage, which wins when hasError is set).
// The cart store's classifier builds on these.
//
// Other failure modes are wrapped with fmt.Errorf:
//
//   - "execute request: dial tcp: connection refused"
//   - "decode response: unexpected end of JSON input"
//
// # URL Construction
//
// The client accepts several API base formats:
//
//   - "127.0.0.1:8080"          → http://127.0.0.1:8080
//   - "https://shop.example"    → used as-is
//
// # Thread Safety
//
// Client is safe for concurrent use; the underlying http.Client pools
// connections internally.
//
// # Design Rationale
//
// The client is intentionally minimal: no caching, no retries, and no
// request sequencing. The stores decide consistency policy per operation
// (replace-from-response, force-reload, optimistic) and guard against stale
// responses themselves.
package shopapi
