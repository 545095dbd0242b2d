package workflows

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/keyfold/keyfold/internal/audit"
	"github.com/keyfold/keyfold/internal/crypto"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/keys"
	"github.com/keyfold/keyfold/internal/vault"
)

// StoreOptions configures the store workflow.
type StoreOptions struct {
	Profile  string
	Category string
	Key      string
	// Value is the secret to store. Empty means generate one, with the user
	// confirming each candidate.
	Value  string
	Prompt Prompter
}

// StoreResult reports what store did.
type StoreResult struct {
	Path string
	// Overwritten reports that an existing secret at this path was replaced.
	Overwritten bool
	// Generated reports that the stored value came from the generator, in
	// which case Value carries it so the caller can show it once.
	Generated bool
	Value     string
}

// Store writes a secret to the vault. Overwriting an existing secret
// requires confirmation, and when no value is supplied the generator
// proposes candidates until one is accepted.
func Store(ctx context.Context, opts StoreOptions) (*StoreResult, error) {
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

	prevSHA, exists, err := v.Lookup(ctx, opts.Category, opts.Key)
	if err != nil {
		return nil, err
	}
	if exists {
		ok, err := opts.Prompt.Confirm(fmt.Sprintf("A secret already exists at %s. Overwrite it?", path))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, kferrors.ErrAborted
		}
	}

	value := opts.Value
	generated := false
	if value == "" {
		value, err = generateValue(opts.Prompt)
		if err != nil {
			return nil, err
		}
		generated = true
	}

	opID := uuid.NewString()
	if err := v.Store(ctx, opts.Category, opts.Key, value, prevSHA, opID); err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{Profile: opts.Profile, Operation: "store", Path: path, OpID: opID})

	result := &StoreResult{Path: path, Overwritten: exists, Generated: generated}
	if generated {
		result.Value = value
	}
	return result, nil
}

// generateValue proposes generated secrets until the user accepts one or
// declines to try again.
func generateValue(p Prompter) (string, error) {
	for {
		candidate, err := crypto.GenerateSecret()
		if err != nil {
			return "", err
		}
		ok, err := p.Confirm(fmt.Sprintf("Use generated secret %q (%d characters)?", candidate, len(candidate)))
		if err != nil {
			return "", err
		}
		if ok {
			return candidate, nil
		}
		again, err := p.Confirm("Generate another?")
		if err != nil {
			return "", err
		}
		if !again {
			return "", kferrors.ErrAborted
		}
	}
}
