// Package remote implements the content-store collaborator over the GitHub
// REST API: file reads and writes via the contents endpoint, revision
// history via the commits endpoint, and repository bootstrap via the repos
// endpoint.
//
// The remote store is treated as untrusted storage: everything written
// through this package is already encrypted, and nothing here encrypts or
// decrypts.
//
// # Transport
//
// Idempotent reads go through hashicorp/go-retryablehttp. Mutations (PUT,
// DELETE, repo creation) are attempted exactly once on a plain client: after
// a transport failure the write may already have been applied, and a blind
// retry could commit it twice.
//
// Overwrites and deletes carry the blob SHA of the content they replace, so
// a concurrent writer causes ErrRevisionConflict instead of a lost update.
//
// The API base URL is taken from KEYFOLD_API_URL when set, which is how
// tests point the client at an httptest server.
package remote
