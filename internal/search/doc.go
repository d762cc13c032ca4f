// Package search debounces search input and fetches typeahead
// suggestions.
//
// Every keystroke in the search box triggers a debounce; only the fire
// that survives 300ms of quiet actually queries the server. Because the
// UI runtime cannot cancel a scheduled tick, superseded fires are
// neutralized by generation counting: each Trigger bumps the generation,
// and a tick whose generation is no longer current is dropped on arrival.
//
// Suggestions are best-effort. Short queries and backend failures both
// collapse to "no suggestions" rather than errors, keeping the search box
// quiet while the user is mid-thought.
package search
