package workflows

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/keyfold/keyfold/internal/audit"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/keys"
	"github.com/keyfold/keyfold/internal/vault"
)

// DeleteOptions configures the delete workflow.
type DeleteOptions struct {
	Profile  string
	Category string
	Key      string
	Prompt   Prompter
}

// DeleteResult reports what delete removed.
type DeleteResult struct {
	Path string
}

// Delete removes a secret after confirmation. The secret's revision history
// survives the deletion; only the current version disappears.
func Delete(ctx context.Context, opts DeleteOptions) (*DeleteResult, error) {
	if err := vault.ValidateCategory(opts.Category); err != nil {
		return nil, err
	}
	if err := vault.ValidateKey(opts.Key); err != nil {
		return nil, err
	}

	password, err := opts.Prompt.Password("Master password: ")
	if err != nil {
		return nil, err
	}
	sess, err := openSession(opts.Profile, password)
	if err != nil {
		return nil, err
	}
	rmk, err := keys.FetchOrCreateRMK(ctx, sess.client, password)
	if err != nil {
		return nil, err
	}
	v := vault.New(sess.client, rmk.Key)

	path := vault.DisplayPath(opts.Category, opts.Key)

	sha, exists, err := v.Lookup(ctx, opts.Category, opts.Key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, kferrors.ErrSecretNotFound
	}

	ok, err := opts.Prompt.Confirm(fmt.Sprintf("Delete the secret at %s?", path))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, kferrors.ErrAborted
	}

	opID := uuid.NewString()
	if err := v.Delete(ctx, opts.Category, opts.Key, sha, opID); err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{Profile: opts.Profile, Operation: "delete", Path: path, OpID: opID})

	return &DeleteResult{Path: path}, nil
}
