// Package vault implements secret record operations against the remote
// content store: store, get, delete and revision history, with all payloads
// encrypted under the remote master key before they leave the machine.
//
// # Paths
//
// A secret's remote path is derived from its category and key:
//
//	keys/<category>/.../<key>.json
//
// Key names and category segments match [A-Za-z0-9_-]+; a key name must not
// contain the path separator; an empty category is valid (uncategorized).
// Validation happens before any I/O.
//
// The wrapped remote master key lives at the fixed path master_key.json.
//
// # Versioning
//
// Every write is versioned by the remote store's native revision mechanism.
// The vault never deletes old revisions: history is append-only from its
// perspective, and delete only removes the current content.
package vault
