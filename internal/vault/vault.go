package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/keyfold/keyfold/internal/crypto"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/remote"
)

// Vault performs secret record operations against one remote repository,
// encrypting and decrypting payloads with the unwrapped remote master key.
type Vault struct {
	remote *remote.Client
	rmk    []byte
}

// New returns a Vault over the given remote client and unwrapped RMK.
func New(client *remote.Client, rmk []byte) *Vault {
	return &Vault{remote: client, rmk: rmk}
}

// Lookup returns the blob SHA of the current content at category/key and
// whether the path exists. Used by callers that must confirm before
// overwriting or deleting.
func (v *Vault) Lookup(ctx context.Context, category, key string) (sha string, exists bool, err error) {
	path, err := ResolvePath(category, key)
	if err != nil {
		return "", false, err
	}

	file, err := v.remote.GetFile(ctx, path, "")
	if errors.Is(err, kferrors.ErrSecretNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return file.SHA, true, nil
}

// Store seals value under the RMK and writes it to the resolved path. When
// overwriting, prevSHA must be the blob SHA from Lookup; the remote's native
// versioning preserves the prior content as history. The write is the single
// commit point of the operation. opID tags the commit message so every
// mutation has a traceable identity.
func (v *Vault) Store(ctx context.Context, category, key, value, prevSHA, opID string) error {
	path, err := ResolvePath(category, key)
	if err != nil {
		return err
	}

	rec, err := crypto.Seal(v.rmk, []byte(value))
	if err != nil {
		return err
	}
	content, err := crypto.EncodeSealedRecord(rec)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Update key: %s [op %s]", DisplayPath(category, key), opID)
	if _, err := v.remote.PutFile(ctx, path, content, prevSHA, message); err != nil {
		return err
	}
	return nil
}

// Get fetches and decrypts the value at category/key. A non-empty version
// selects a historical revision ID from History; empty means the current
// revision. Returns ErrSecretNotFound (or ErrRevisionNotFound when a version
// was requested) if the path did not exist at that revision.
func (v *Vault) Get(ctx context.Context, category, key, version string) (string, error) {
	path, err := ResolvePath(category, key)
	if err != nil {
		return "", err
	}

	file, err := v.remote.GetFile(ctx, path, version)
	if errors.Is(err, kferrors.ErrSecretNotFound) && version != "" {
		return "", kferrors.ErrRevisionNotFound
	}
	if err != nil {
		return "", err
	}

	rec, err := crypto.DecodeSealedRecord(file.Content)
	if err != nil {
		return "", err
	}

	plaintext, err := crypto.Open(v.rmk, rec)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// Delete removes the current content at category/key. sha must be the blob
// SHA from Lookup. Prior revisions remain in the remote's history.
func (v *Vault) Delete(ctx context.Context, category, key, sha, opID string) error {
	path, err := ResolvePath(category, key)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Delete key: %s [op %s]", DisplayPath(category, key), opID)
	return v.remote.DeleteFile(ctx, path, sha, message)
}

// History returns a pager over the revisions touching category/key, newest
// first. No revisions are fetched until the first Next call.
func (v *Vault) History(category, key string) (*HistoryPager, error) {
	path, err := ResolvePath(category, key)
	if err != nil {
		return nil, err
	}
	return &HistoryPager{remote: v.remote, path: path}, nil
}
