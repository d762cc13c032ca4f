// Package session holds the authentication-state signal shared by the
// client-side stores.
//
// # Overview
//
// Cart and favorites are per-user, server-persisted resources; which user
// (if any) is signed in determines whether the stores may issue mutations
// at all. Session is the single holder of that fact. Stores register
// watchers and react to transitions on their own:
//
//   - login:  cart loads from the server, favorites reload
//   - logout: cart resets to the unloaded state, favorites empty
//
// Cross-store effects are driven exclusively by each store observing this
// one signal. Stores never invoke each other.
//
// # Guest Identity
//
// An unauthenticated session carries a random guest id (minted with
// github.com/google/uuid) which the backend uses to key the guest cart
// that gets merged on login.
//
// # Concurrency
//
// Session is safe for concurrent use. Watchers run synchronously on the
// goroutine performing the transition, outside the internal mutex, so a
// watcher may query the session but must not call Login or Logout.
package session
