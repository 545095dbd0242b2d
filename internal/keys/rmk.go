package keys

import (
	"context"
	"errors"
	"fmt"

	"github.com/keyfold/keyfold/internal/crypto"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/remote"
	"github.com/keyfold/keyfold/internal/vault"
)

// RMK is an unlocked remote master key together with the state needed to
// rotate it: the raw material and the blob SHA of its current wrapping.
type RMK struct {
	// Key is the raw symmetric key used to seal secret records.
	Key []byte
	// Material is the underlying key material; never regenerated on rotation.
	Material []byte
	// SHA is the blob SHA of the wrapped key as currently stored remotely.
	SHA string
	// Created reports whether the key was generated by this call.
	Created bool
}

// FetchOrCreateRMK fetches the vault's wrapped remote master key and unwraps
// it under password; the unwrap doubles as the access verification for this
// vault. If no wrapped key exists yet, fresh key material is generated,
// wrapped and uploaded. The wrapped key is always fetched fresh from the
// remote; it is never cached locally.
func FetchOrCreateRMK(ctx context.Context, client *remote.Client, password string) (*RMK, error) {
	file, err := client.GetFile(ctx, vault.RMKPath, "")
	if err != nil && !errors.Is(err, kferrors.ErrSecretNotFound) {
		return nil, err
	}

	if err == nil {
		wk, err := crypto.DecodeWrappedKey(file.Content)
		if err != nil {
			return nil, err
		}
		material, err := crypto.Unwrap(wk, password)
		if err != nil {
			return nil, err
		}
		return &RMK{Key: RecordKey(material), Material: material, SHA: file.SHA}, nil
	}

	materialStr, err := crypto.GenerateKeyMaterial()
	if err != nil {
		return nil, err
	}
	material := []byte(materialStr)

	wk, err := crypto.Wrap(material, password)
	if err != nil {
		return nil, err
	}
	content, err := crypto.EncodeWrappedKey(wk)
	if err != nil {
		return nil, err
	}

	sha, err := client.PutFile(ctx, vault.RMKPath, content, "", "Initialize vault master key")
	if err != nil {
		return nil, err
	}
	return &RMK{Key: RecordKey(material), Material: material, SHA: sha, Created: true}, nil
}

// RewrapRMK wraps the RMK's material under a new password with a fresh salt
// and nonce and uploads it, guarding against concurrent rewraps with the
// previous blob SHA. This upload is the commit point of the password reset
// protocol: on any failure the remote keeps its old wrapping and the caller
// must abort without touching local state.
func RewrapRMK(ctx context.Context, client *remote.Client, rmk *RMK, newPassword, opID string) error {
	wk, err := crypto.Wrap(rmk.Material, newPassword)
	if err != nil {
		return err
	}
	content, err := crypto.EncodeWrappedKey(wk)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Rewrap vault master key [op %s]", opID)
	if _, err := client.PutFile(ctx, vault.RMKPath, content, rmk.SHA, message); err != nil {
		return err
	}
	return nil
}
