package search

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is how long input must be quiet before a search fires.
const DefaultDelay = 300 * time.Millisecond

// FireMsg is delivered when a debounce window elapses. Only the message
// whose generation matches the debouncer's current one should trigger
// work; stale ticks from superseded keystrokes carry older generations.
type FireMsg struct {
	Generation int
	Query      string
}

// Debouncer coalesces rapid input changes into a single deferred fire.
//
// The Bubble Tea runtime has no way to cancel a scheduled tick, so
// cancellation is done by versioning instead: every Trigger bumps a
// generation counter and tags its tick with it. When a tick arrives,
// Current rejects any generation but the latest, which makes all ticks
// except the final one inert.
type Debouncer struct {
	delay time.Duration
	gen   int
}

// NewDebouncer builds a debouncer with the given quiet window. A
// non-positive delay falls back to DefaultDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules a fire for the given query after the quiet window,
// superseding any previously scheduled fire.
func (d *Debouncer) Trigger(query string) tea.Cmd {
	d.gen++
	gen := d.gen
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return FireMsg{Generation: gen, Query: query}
	})
}

// Cancel invalidates any scheduled fire without scheduling a new one.
// Used when input drops below the minimum query length.
func (d *Debouncer) Cancel() {
	d.gen++
}

// Current reports whether msg is the latest scheduled fire.
func (d *Debouncer) Current(msg FireMsg) bool {
	return msg.Generation == d.gen
}
