// Package cart implements the client-side shopping cart store.
//
// # Overview
//
// The Store is the single source of truth for the signed-in user's cart on
// this client. All mutations go through the storefront backend; the
// in-memory snapshot is reconciled from the server after every successful
// mutation. The client never computes totals itself, with one deliberate
// exception (voucher removal, see below).
//
// # Consistency Policy
//
// Each operation carries an explicit Consistency tag rather than leaving
// the reconciliation strategy implicit in its body:
//
//	Add            ReplaceFromResponse
//	Remove         ReplaceFromResponse
//	MergeGuest     ReplaceFromResponse
//	UpdateQuantity ForceReload
//	Clear          ExplicitEmpty
//	ApplyVoucher   ReplaceFromResponse (patched validation result)
//	RemoveVoucher  LocalOnly (total = subtotal + tax + shipping, discount 0)
//
// UpdateQuantity re-fetches instead of trusting the mutation response
// because a quantity change can invalidate an applied voucher server-side.
// Clear rebuilds a zero cart locally so the UI shows consistent zeros even
// if the clear response shape varies between services.
//
// # State Machine
//
// The snapshot moves between four phases:
//
//	Unloaded ──login──▶ Loading ──success──▶ Loaded
//	    ▲                  │
//	    │                  └──failure──▶ Empty (defensive fallback cart)
//	 logout
//
// Unloaded ("no cart") and Empty ("cart with zero items") are distinct:
// the first drives a login prompt, the second renders 0 items. Both report
// a count of zero.
//
// # Concurrent Mutations
//
// Store operations are fire-and-await from the UI loop, so two mutations
// can be in flight at once. Every operation takes a sequence number when it
// starts; a response is applied only while its sequence is still current.
// A response that arrives after a later operation has begun is discarded,
// so the snapshot always reflects the most recently issued operation.
//
// # Failure Semantics
//
// No operation propagates an error to the caller. Every mutation returns a
// boolean, logs the underlying error, and (where the user should know)
// publishes a toast through the notify bus. Business-rule rejections from
// the server are classified by message into distinct user-facing strings;
// see classify.go. Unauthenticated calls short-circuit to false before any
// network traffic.
package cart
