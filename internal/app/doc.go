// Package app provides the orchestration layer for the application.
//
// # Overview
//
// This package wires together configuration, the API client, the domain
// stores, and the UI to create the complete terminal storefront. It serves
// as the composition root where all dependencies are initialized and
// connected.
//
// # Architecture
//
// The Run function follows a simple initialization pattern:
//
//  1. Load client configuration from ~/.config/basket/config.toml
//  2. Load user preferences (theme, start view, page size)
//  3. Initialize the HTTP client for the storefront gateway
//  4. Create the notification bus and the session signal
//  5. Create the cart, favorites, and compare stores
//  6. Subscribe the cart and favorites stores to session changes
//  7. Sign in the configured account, or start a guest session
//  8. Start the TUI and block until the user exits or context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()       Read client config
//	       ├─────> prefs.Load()        Read user preferences
//	       ├─────> shopapi.NewClient() Create HTTP client
//	       ├─────> notify.NewBus()     Toast fan-out
//	       ├─────> session.New()       Guest session
//	       ├─────> cart/favorites/compare stores
//	       ├─────> WatchSession()      Stores follow sign-in state
//	       └─────> ui.Run()            Start TUI (blocks)
//
// There is no background polling loop: the cart and favorites are loaded
// on session changes and after each mutation, and the UI re-renders on a
// short tick to pick up state that settled in the background.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file present but invalid
//   - API client initialization failure (malformed api_base)
//
// Everything else degrades: a missing config uses defaults, unreadable
// preferences fall back to defaults, and an unreachable gateway surfaces
// through the stores' own notification and logging paths once the UI is
// up.
package app
