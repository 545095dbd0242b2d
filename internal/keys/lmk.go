package keys

import (
	"crypto/sha256"

	"github.com/keyfold/keyfold/internal/configs"
	"github.com/keyfold/keyfold/internal/crypto"
	kferrors "github.com/keyfold/keyfold/internal/errors"
)

// RecordKey converts master key material into the raw 32-byte symmetric key
// used to seal records. Records sealed under a master key carry no
// key-derivation salt, so the conversion must be deterministic.
func RecordKey(material []byte) []byte {
	sum := sha256.Sum256(material)
	return sum[:]
}

// LoadOrCreateLMK returns the profile's local master key, generating and
// persisting fresh wrapped key material on first need. The boolean reports
// whether a new key was created. An unwrap failure on existing material
// surfaces as ErrWrongPassword.
func LoadOrCreateLMK(profile, password string) (key []byte, created bool, err error) {
	wk, exists, err := configs.LoadWrappedLMK(profile)
	if err != nil {
		return nil, false, err
	}

	if exists {
		material, err := crypto.Unwrap(wk, password)
		if err != nil {
			return nil, false, err
		}
		return RecordKey(material), false, nil
	}

	materialStr, err := crypto.GenerateKeyMaterial()
	if err != nil {
		return nil, false, err
	}
	material := []byte(materialStr)

	wk, err = crypto.Wrap(material, password)
	if err != nil {
		return nil, false, err
	}
	if err := configs.SaveWrappedLMK(profile, wk); err != nil {
		return nil, false, err
	}
	return RecordKey(material), true, nil
}

// UnlockLMK returns the profile's local master key. Unlike LoadOrCreateLMK
// it never creates one: a missing LMK means the profile has never logged in.
func UnlockLMK(profile, password string) ([]byte, error) {
	material, err := UnwrapLMKMaterial(profile, password)
	if err != nil {
		return nil, err
	}
	return RecordKey(material), nil
}

// UnwrapLMKMaterial unwraps and returns the profile's raw LMK key material.
// The password reset protocol uses the material directly so the same key can
// be re-wrapped under a new password without being regenerated.
func UnwrapLMKMaterial(profile, password string) ([]byte, error) {
	wk, exists, err := configs.LoadWrappedLMK(profile)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, kferrors.ErrNotLoggedIn
	}
	return crypto.Unwrap(wk, password)
}

// RewrapLMK wraps existing key material under a new password with a fresh
// salt and nonce, and persists it. The material itself never changes during
// rotation, only its wrapping.
func RewrapLMK(profile string, material []byte, newPassword string) error {
	wk, err := crypto.Wrap(material, newPassword)
	if err != nil {
		return err
	}
	return configs.SaveWrappedLMK(profile, wk)
}
