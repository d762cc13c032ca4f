// Package mockshop is an in-memory stand-in for the storefront gateway,
// used for local development and for exercising the API client in tests.
//
// It serves the same routes, payload shapes, and error bodies as the real
// gateway: carts with server-owned totals, stock and activity checks on
// add, voucher validation, per-user favorites, and a paged product catalog
// with autocomplete. Business-rule rejections come back as the structured
// error body the client classifies on, with the same message phrasing
// ("out of stock", "exceeds available stock", "not active", "product not
// found") the production services use.
//
// State lives behind one mutex and is seeded fresh on every start. It is
// deliberately not persistent and not tuned for concurrency.
package mockshop
