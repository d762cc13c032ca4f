// Package favorites implements the client-side favorites store.
//
// The server owns the favorites set; this store mirrors it into memory for
// fast membership checks (UI badges) and keeps the mirror fresh around
// mutations. The add/remove asymmetry is deliberate:
//
//   - Add reloads the whole list after the mutation, because the list
//     entries carry denormalized product display data the client cannot
//     synthesize locally.
//   - Remove filters the entry out locally for responsiveness: the client
//     already holds the complete entry, so a local filter is
//     correctness-preserving and cheaper than a round trip.
//
// Load failures reset the list to empty rather than leaving stale data.
// One transient failure class is special-cased: the favorites service is
// known to return intermittent 500s, which degrade to an empty list
// without log noise.
package favorites
