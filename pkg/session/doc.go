/*
Package session serializes edits of named snapshots.

It layers per-name locks (optionally backed by a distributed locker) over a
ports.SnapshotStore, and applies edits copy-on-write: an edit works on a deep
copy and only a successful edit is persisted.
*/
package session
