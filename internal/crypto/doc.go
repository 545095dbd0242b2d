// Package crypto provides the cryptographic primitives for keyfold.
//
// Key derivation is Argon2id (memory-hard, salted); payload encryption is
// XChaCha20-Poly1305 authenticated encryption. All randomness comes from
// crypto/rand. The package is pure and stateless: it performs no I/O.
//
// # Blob Formats
//
// Two wire formats exist, both JSON with base64-encoded binary fields:
//
//   - WrappedKey {salt, nonce, ciphertext}: master key material encrypted
//     under a password-derived key. The salt feeds Argon2id; the ciphertext
//     carries the Poly1305 tag.
//   - SealedRecord {nonce, ciphertext}: a payload encrypted under a raw
//     symmetric key. No salt, since the key is not password-derived.
//
// # Failure Semantics
//
// Decrypt and Unwrap fail closed. A wrong password, a tampered ciphertext,
// and a corrupted nonce all yield the same opaque ErrWrongPassword. The
// true cause is indistinguishable from the ciphertext alone, and not
// distinguishing is deliberate.
package crypto
