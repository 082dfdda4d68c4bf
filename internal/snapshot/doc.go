// Package snapshot persists timestamped workflow record snapshots in SQLite.
//
// The store is the durable side of the backup rotation: it only knows about
// named payloads and their creation order. Retention policy, payload shape,
// and restore validation live in the backup package.
package snapshot
