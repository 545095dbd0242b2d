// Package configs manages keyfold's local state: the global profile
// selector and each profile's persisted records.
//
// # Layout
//
// All state lives under the user config directory:
//
//	keyfold/
//	  config.toml              global selector (active profile name, plaintext)
//	  profiles/<name>/
//	    lmk.json               wrapped local master key {salt, nonce, ciphertext}
//	    token.json             access token, sealed under the unwrapped LMK
//	    repo.json              vault repo identity, sealed under the unwrapped LMK
//
// The selector is unencrypted because it holds only a name, no secret.
// Everything secret in a profile sits behind the LMK, which in turn is
// wrapped under the master password.
//
// # Profile Resolution
//
// ResolveActive computes the active profile once at command start from
// (explicit flag, persisted selector, default). The result is passed down
// explicitly; no deeper code reads the selector.
//
// # Ownership
//
// A profile exclusively owns its LMK wrapping and local records. Deleting a
// profile removes its entire local namespace but never touches the remote
// vault it referenced.
//
// Tests point UserKeyfoldSettings.UserConfigsPath at a temp directory.
package configs
