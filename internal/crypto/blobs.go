package crypto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	kferrors "github.com/keyfold/keyfold/internal/errors"
)

// WrappedKey is key material encrypted under a password-derived key, together
// with the salt and nonce needed to reverse the wrap. The salt and nonce are
// freshly random on every wrap, never reused across wraps even for the same
// logical key. This is the stored form of both the local and remote master
// keys.
type WrappedKey struct {
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// SealedRecord is a payload encrypted under a raw symmetric key. No
// key-derivation salt is needed since the key is not password-derived per
// record. This is the stored form of secret records, the access token, and
// the repo identity.
type SealedRecord struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// Wrap encrypts keyMaterial under a key derived from password and a fresh salt.
func Wrap(keyMaterial []byte, password string) (WrappedKey, error) {
	salt, err := NewSalt()
	if err != nil {
		return WrappedKey{}, err
	}

	key := DeriveKey(password, salt)
	nonce, ciphertext, err := Encrypt(key, keyMaterial)
	if err != nil {
		return WrappedKey{}, err
	}

	return WrappedKey{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// Unwrap decrypts a WrappedKey with the given password, returning the key
// material. Returns ErrWrongPassword if the password does not match or the
// blob has been tampered with.
func Unwrap(wk WrappedKey, password string) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(wk.Salt)
	if err != nil {
		return nil, kferrors.ErrWrongPassword
	}
	nonce, err := base64.StdEncoding.DecodeString(wk.Nonce)
	if err != nil {
		return nil, kferrors.ErrWrongPassword
	}
	ciphertext, err := base64.StdEncoding.DecodeString(wk.Ciphertext)
	if err != nil {
		return nil, kferrors.ErrWrongPassword
	}

	key := DeriveKey(password, salt)
	return Decrypt(key, nonce, ciphertext)
}

// Seal encrypts plaintext under a raw symmetric key.
func Seal(key, plaintext []byte) (SealedRecord, error) {
	nonce, ciphertext, err := Encrypt(key, plaintext)
	if err != nil {
		return SealedRecord{}, err
	}

	return SealedRecord{
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// Open decrypts a SealedRecord under a raw symmetric key.
func Open(key []byte, rec SealedRecord) ([]byte, error) {
	nonce, err := base64.StdEncoding.DecodeString(rec.Nonce)
	if err != nil {
		return nil, kferrors.ErrWrongPassword
	}
	ciphertext, err := base64.StdEncoding.DecodeString(rec.Ciphertext)
	if err != nil {
		return nil, kferrors.ErrWrongPassword
	}

	return Decrypt(key, nonce, ciphertext)
}

// EncodeWrappedKey serializes a WrappedKey to its JSON wire form.
func EncodeWrappedKey(wk WrappedKey) ([]byte, error) {
	data, err := json.Marshal(wk)
	if err != nil {
		return nil, fmt.Errorf("encoding wrapped key: %w", err)
	}
	return data, nil
}

// DecodeWrappedKey parses a WrappedKey from its JSON wire form.
func DecodeWrappedKey(data []byte) (WrappedKey, error) {
	var wk WrappedKey
	if err := json.Unmarshal(data, &wk); err != nil {
		return WrappedKey{}, fmt.Errorf("decoding wrapped key: %w", err)
	}
	return wk, nil
}

// EncodeSealedRecord serializes a SealedRecord to its JSON wire form.
func EncodeSealedRecord(rec SealedRecord) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding sealed record: %w", err)
	}
	return data, nil
}

// DecodeSealedRecord parses a SealedRecord from its JSON wire form.
func DecodeSealedRecord(data []byte) (SealedRecord, error) {
	var rec SealedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return SealedRecord{}, fmt.Errorf("decoding sealed record: %w", err)
	}
	return rec, nil
}
