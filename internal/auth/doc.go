// Package auth implements the GitHub OAuth device flow used by login.
//
// The handshake has two halves: RequestDeviceCode obtains a user code to
// display, and PollForToken waits for the user to authorize in the browser,
// honoring the authorization_pending and slow_down responses the endpoint
// returns while the user is still deciding.
//
// The resulting access token is an opaque string. Storing it (encrypted
// under the profile's local master key) is the profile store's job, not
// this package's.
package auth
