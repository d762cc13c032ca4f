// Package config handles loading and parsing the client configuration file.
//
// # Overview
//
// This package reads the TOML config that points the client at the
// storefront gateway and places its local state. The file is small on
// purpose: everything else the client needs comes from the gateway at
// runtime.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/basket/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Apply BASKET_* environment overrides last
//
// # Default Values
//
//   - Config file: ~/.config/basket/config.toml
//   - API base: 127.0.0.1:8080
//   - State directory: ~/.local/share/basket
//
// # Configuration Fields
//
//   - APIBase: storefront gateway endpoint (host:port or full URL)
//   - UserID: account to sign in as on startup; empty starts a guest session
//   - StateDir: directory for locally persisted state such as the
//     comparison set
//
// # TOML Format
//
// Example config.toml:
//
//	api_base = "127.0.0.1:8080"
//	user_id = "alex"
//	state_dir = "~/.local/share/basket"
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Environment Overrides
//
// BASKET_API_BASE, BASKET_USER_ID, and BASKET_STATE_DIR override the file
// when set. They exist so a shell session can point at the development
// gateway without touching the config on disk.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
// The client should work out-of-the-box against a local gateway.
//
// # Design Philosophy
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
package config
