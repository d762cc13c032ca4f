// Package ui implements the Bubble Tea terminal interface.
//
// # Overview
//
// The UI is a single root Model with four views: browse, cart, favorites,
// and compare. It owns no domain state of its own; every render reads
// fresh snapshots from the thread-safe stores, so the interface always
// reflects what the stores currently believe.
//
// # Update Flow
//
// Store mutations run inside tea.Cmd functions, which the runtime executes
// off the UI goroutine, so a slow gateway call never freezes input
// handling. Because mutations complete asynchronously and stores notify
// through the bus rather than through messages, a coarse refresh tick
// re-renders on a cadence to pick up settled state.
//
// # Search
//
// The search box debounces keystrokes through a generation counter (see
// the search package) and also accepts Enter for an immediate query.
// Suggestions render inline under the input and disappear when the box
// loses focus or drops below the minimum query length.
//
// # Notifications
//
// Store toasts arrive over a buffered channel bridged from the bus; the
// model shows one toast at a time and expires it after a few seconds. A
// full channel drops toasts instead of blocking the store goroutine that
// published them.
//
// # Theming
//
// Themes mirror well-known terminal palettes and cycle with T. The chosen
// theme persists to prefs so it survives restarts.
package ui
