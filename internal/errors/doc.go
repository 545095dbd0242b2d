// Package errors provides typed error values for the keyfold application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Validation errors: malformed names, rejected before any I/O
//     (ErrInvalidProfileName, ErrInvalidCategory, ErrInvalidKeyName)
//   - Authentication errors: the master password failed to unwrap a key
//     (ErrWrongPassword)
//   - Not-found errors: a path absent at the requested revision
//     (ErrSecretNotFound, ErrRevisionNotFound)
//   - Remote errors: transport or API failure (ErrRemoteUnavailable)
//   - State errors: command cannot run given current local state
//     (ErrNotLoggedIn, ErrVaultNotConfigured)
//
// # Usage
//
// Return errors from internal packages:
//
//	if !validName.MatchString(name) {
//	    return kferrors.ErrInvalidProfileName
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Get(ctx, opts)
//	if errors.Is(err, kferrors.ErrSecretNotFound) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("fetching %s: %w", path, kferrors.ErrRemoteUnavailable)
//
// Error messages never contain secret values, tokens, or passwords.
package errors
