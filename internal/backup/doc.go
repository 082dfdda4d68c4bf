// Package backup rotates durable snapshots of the workflow record and
// restores them.
//
// The manager implements session.Snapshotter: the record store hands it the
// full record after every mutation, and the manager serializes it, writes a
// timestamped snapshot, and prunes the rotation down to the configured
// retention. Restore and import validate structure before a record is
// accepted, so a corrupt snapshot can never displace the live record.
package backup
