// Package session owns the canonical workflow record for an intake session.
//
// The Store is the single writer: every mutation flows through a closed set
// of typed operations that stamp the update timestamp, keep the item-order
// permutation and generated-content maps consistent, and trigger a
// best-effort snapshot. Validation and step gating are pure functions over a
// record copy so the UI layer can probe freely without mutating anything.
package session
