package errors

import "errors"

// Validation errors are raised before any I/O is attempted.
var (
	// ErrInvalidProfileName indicates a profile name that does not match [A-Za-z0-9_-]+.
	ErrInvalidProfileName = errors.New("invalid profile name")

	// ErrInvalidCategory indicates a malformed category path.
	ErrInvalidCategory = errors.New("invalid category path")

	// ErrInvalidKeyName indicates a key name that is empty or contains a path separator.
	ErrInvalidKeyName = errors.New("invalid key name")

	// ErrInvalidRepoIdentity indicates a repository identity that is not "name" or "owner/name".
	ErrInvalidRepoIdentity = errors.New("invalid repository identity")

	// ErrPasswordTooShort indicates a master password below the minimum length.
	ErrPasswordTooShort = errors.New("master password must be at least 8 characters")
)

// Authentication errors. A wrong password and corrupted ciphertext are
// indistinguishable from the ciphertext alone, so both surface as ErrWrongPassword.
var (
	// ErrWrongPassword indicates the master password failed to unwrap a key.
	ErrWrongPassword = errors.New("incorrect master password")
)

// Not-found errors.
var (
	// ErrSecretNotFound indicates no secret exists at the resolved path.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrRevisionNotFound indicates the secret did not exist at the requested revision.
	ErrRevisionNotFound = errors.New("revision not found")

	// ErrProfileNotFound indicates the named profile has no local state.
	ErrProfileNotFound = errors.New("profile not found")
)

// Remote errors indicate the content store could not be reached or answered
// with an unexpected status. Mutating operations are never retried after one
// of these, since the write may already have been applied.
var (
	// ErrRemoteUnavailable indicates a transport or API failure talking to the remote store.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrRevisionConflict indicates the remote rejected a write because the
	// supplied previous revision is no longer current.
	ErrRevisionConflict = errors.New("remote revision conflict")
)

// State errors indicate the command cannot run given the current local state.
var (
	// ErrNotLoggedIn indicates no access token is stored for the active profile.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrVaultNotConfigured indicates no repository has been configured for the active profile.
	ErrVaultNotConfigured = errors.New("vault repository not configured")

	// ErrProfileExists indicates a profile with that name already exists.
	ErrProfileExists = errors.New("profile already exists")

	// ErrAborted indicates the user declined a confirmation prompt.
	ErrAborted = errors.New("operation aborted")
)

// Authorization errors from the device-flow handshake.
var (
	// ErrDeviceCodeExpired indicates the user did not authorize in time.
	ErrDeviceCodeExpired = errors.New("device code expired")

	// ErrAccessDenied indicates the user declined the authorization request.
	ErrAccessDenied = errors.New("access denied by user")
)
