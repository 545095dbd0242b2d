package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// alphabet is the character set for generated key material and secret values.
// The product notes were ambiguous between alphabetic-only and alphanumeric;
// generated values are alphanumeric (A-Za-z0-9), matching the examples the
// product itself showed.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	// KeyMaterialLength is the fixed length of master key material.
	KeyMaterialLength = 36

	// MinSecretLength and MaxSecretLength bound generated secret values.
	MinSecretLength = 6
	MaxSecretLength = 36
)

// randomInt returns a uniform random int in [0, max) from crypto/rand.
func randomInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(n.Int64()), nil
}

// randomString returns a random string of the given length drawn uniformly
// from the alphabet.
func randomString(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		idx, err := randomInt(len(alphabet))
		if err != nil {
			return "", err
		}
		b[i] = alphabet[idx]
	}
	return string(b), nil
}

// GenerateKeyMaterial returns fresh 36-character random alphanumeric key
// material for a master key.
func GenerateKeyMaterial() (string, error) {
	return randomString(KeyMaterialLength)
}

// GenerateSecret returns a random alphanumeric secret value whose length is
// chosen uniformly in [MinSecretLength, MaxSecretLength]. Callers must
// surface the value and its length to the user for confirmation before
// storing it.
func GenerateSecret() (string, error) {
	span := MaxSecretLength - MinSecretLength + 1
	n, err := randomInt(span)
	if err != nil {
		return "", err
	}
	return randomString(MinSecretLength + n)
}
