package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	kferrors "github.com/keyfold/keyfold/internal/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// Argon2id parameters. Sequential (threads=1) for deterministic
	// performance across machines.
	argonTime    = 3
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 1

	// KeySize is the symmetric key length in bytes.
	KeySize = chacha20poly1305.KeySize

	// SaltSize is the key-derivation salt length in bytes.
	SaltSize = 32

	// NonceSize is the AEAD nonce length in bytes (XChaCha20-Poly1305).
	NonceSize = chacha20poly1305.NonceSizeX
)

// DeriveKey derives a 32-byte symmetric key from a password and salt using
// Argon2id. The same password and salt always yield the same key; a different
// salt yields an unlinkable key even for the same password. There is no
// notion of a "wrong password" at this layer.
func DeriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, KeySize)
}

// Encrypt seals plaintext under key with XChaCha20-Poly1305, generating a
// fresh random nonce per call. The returned ciphertext includes the
// authentication tag.
func Encrypt(key, plaintext []byte) (nonce, ciphertext []byte, err error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing cipher: %w", err)
	}

	nonce = make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, fmt.Errorf("generating nonce: %w", err)
	}

	return nonce, aead.Seal(nil, nonce, plaintext, nil), nil
}

// Decrypt opens ciphertext under key. It fails closed: any bit-level
// tampering, wrong key, or corrupted nonce yields ErrWrongPassword, never
// partial plaintext. Wrong key and corruption are indistinguishable from the
// ciphertext alone, so a single opaque failure is returned for both.
func Decrypt(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("initializing cipher: %w", err)
	}

	if len(nonce) != NonceSize {
		return nil, kferrors.ErrWrongPassword
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, kferrors.ErrWrongPassword
	}

	return plaintext, nil
}

// NewSalt returns a fresh random key-derivation salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	return salt, nil
}
