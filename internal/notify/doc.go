// Package notify provides the notification relay between state stores and
// the UI.
//
// # Overview
//
// Stores have no handle on the UI. When an operation succeeds or fails they
// publish an Event (severity + message) to a Bus; whatever UI is running
// subscribes and renders the event as a toast. The coupling runs entirely
// through this package.
//
// # Contract
//
// The relay is deliberately fire-and-forget:
//
//   - Delivery is synchronous and best-effort
//   - No queueing: events published with zero subscribers are dropped
//   - No acknowledgement or retry
//
// This is appropriate for transient UI feedback and nothing else. Anything
// that must not be lost does not belong on this bus.
//
// # Injection
//
// Stores accept the Notifier interface in their constructors rather than
// reaching for a global, which keeps them testable with a recording fake:
//
//	type recorder struct{ events []notify.Event }
//
//	func (r *recorder) Notify(l notify.Level, m string) {
//		r.events = append(r.events, notify.Event{Level: l, Message: m})
//	}
//
// # Concurrency
//
// Bus is safe for concurrent use. The subscriber list is copied under the
// mutex and callbacks run outside it, so a subscriber may unsubscribe (or
// publish) from within its own callback without deadlocking.
package notify
