// Package keys owns the master key hierarchy: the Local Master Key (LMK)
// kept on this machine and the Remote Master Key (RMK) persisted, wrapped,
// in the vault repository.
//
// Each key follows the same lifecycle, independent of the other:
//
//   - Absent: on first need, 36-character random key material is generated,
//     wrapped under a password-derived key with a fresh salt, and persisted.
//   - Present: every use unwraps the stored material with the supplied
//     password. An authentication failure here is reported as a wrong master
//     password; corruption would look identical from the ciphertext alone,
//     and the ambiguity is accepted.
//   - Rotation: the material is unwrapped under the old password and
//     re-wrapped under the new one with a fresh salt and nonce. The material
//     itself is never regenerated; only its wrapping changes.
//
// The LMK seals local-only records (access token, repo identity); the RMK
// seals every secret record in the vault. Neither the master password nor
// unwrapped material is ever written to disk or held beyond the current
// invocation.
package keys
