package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/keyfold/keyfold/internal/crypto"
)

// Per-profile record filenames. lmk.json holds the password-wrapped local
// master key; token.json and repo.json are sealed under the unwrapped LMK,
// never under the master password directly. That indirection is what lets
// reset-password change only the LMK wrapping.
const (
	lmkFile   = "lmk.json"
	tokenFile = "token.json"
	repoFile  = "repo.json"
)

func writeRecord(profile, file string, data []byte) error {
	if err := EnsureProfile(profile); err != nil {
		return err
	}
	path := filepath.Join(ProfileDir(profile), file)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	return nil
}

func readRecord(profile, file string) ([]byte, bool, error) {
	path := filepath.Join(ProfileDir(profile), file)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return data, true, nil
}

// SaveWrappedLMK persists the profile's wrapped local master key.
func SaveWrappedLMK(profile string, wk crypto.WrappedKey) error {
	data, err := crypto.EncodeWrappedKey(wk)
	if err != nil {
		return err
	}
	return writeRecord(profile, lmkFile, data)
}

// LoadWrappedLMK loads the profile's wrapped local master key. The second
// return value reports whether one exists.
func LoadWrappedLMK(profile string) (crypto.WrappedKey, bool, error) {
	data, exists, err := readRecord(profile, lmkFile)
	if err != nil || !exists {
		return crypto.WrappedKey{}, exists, err
	}
	wk, err := crypto.DecodeWrappedKey(data)
	if err != nil {
		return crypto.WrappedKey{}, true, err
	}
	return wk, true, nil
}

// SaveToken persists the profile's LMK-sealed access token.
func SaveToken(profile string, rec crypto.SealedRecord) error {
	data, err := crypto.EncodeSealedRecord(rec)
	if err != nil {
		return err
	}
	return writeRecord(profile, tokenFile, data)
}

// LoadToken loads the profile's LMK-sealed access token.
func LoadToken(profile string) (crypto.SealedRecord, bool, error) {
	data, exists, err := readRecord(profile, tokenFile)
	if err != nil || !exists {
		return crypto.SealedRecord{}, exists, err
	}
	rec, err := crypto.DecodeSealedRecord(data)
	if err != nil {
		return crypto.SealedRecord{}, true, err
	}
	return rec, true, nil
}

// SaveRepoIdentity persists the profile's LMK-sealed vault repo identity.
func SaveRepoIdentity(profile string, rec crypto.SealedRecord) error {
	data, err := crypto.EncodeSealedRecord(rec)
	if err != nil {
		return err
	}
	return writeRecord(profile, repoFile, data)
}

// LoadRepoIdentity loads the profile's LMK-sealed vault repo identity.
func LoadRepoIdentity(profile string) (crypto.SealedRecord, bool, error) {
	data, exists, err := readRecord(profile, repoFile)
	if err != nil || !exists {
		return crypto.SealedRecord{}, exists, err
	}
	rec, err := crypto.DecodeSealedRecord(data)
	if err != nil {
		return crypto.SealedRecord{}, true, err
	}
	return rec, true, nil
}

// RawWrappedLMK returns the exact bytes of the wrapped LMK record on disk.
// Reset-password reads it before attempting the remote commit so an aborted
// reset can be verified to have left the file byte-identical.
func RawWrappedLMK(profile string) ([]byte, bool, error) {
	return readRecord(profile, lmkFile)
}
