// Package compare maintains the product comparison set.
//
// # Overview
//
// Comparison is a purely local feature: the set of products a user lines
// up side by side never touches the server. The store holds at most
// MaxProducts entries in insertion order and mirrors every change to a
// JSON file under the state directory, so the set survives restarts on
// the same machine.
//
// # Capacity
//
// Adding to a full set evicts the oldest entry rather than rejecting the
// add. Users reaching for a fifth product almost always want the new one
// more than whatever they picked first, and a hard error would force them
// to guess which entry to drop. The eviction toast names both products so
// the swap is never silent.
//
// # Persistence
//
// The file carries a schemaVersion field. Load failures of any kind,
// including a missing file or an unknown version, degrade to an empty set:
// comparison state is a convenience, never worth blocking startup over.
package compare
