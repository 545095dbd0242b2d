package workflows

import (
	"context"

	"github.com/keyfold/keyfold/internal/audit"
	"github.com/keyfold/keyfold/internal/keys"
	"github.com/keyfold/keyfold/internal/vault"
)

// GetOptions configures the get workflow.
type GetOptions struct {
	Profile  string
	Category string
	Key      string
	// Version is an optional revision ID; empty means the latest revision.
	Version string
	Prompt  Prompter
}

// GetResult carries the retrieved plaintext.
type GetResult struct {
	Path  string
	Value string
}

// Get retrieves and decrypts a secret, optionally at a specific revision.
func Get(ctx context.Context, opts GetOptions) (*GetResult, error) {
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

	value, err := v.Get(ctx, opts.Category, opts.Key, opts.Version)
	if err != nil {
		return nil, err
	}

	path := vault.DisplayPath(opts.Category, opts.Key)
	audit.Log(audit.Entry{Profile: opts.Profile, Operation: "get", Path: path, Revision: opts.Version})

	return &GetResult{Path: path, Value: value}, nil
}
