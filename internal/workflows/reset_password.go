package workflows

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/keyfold/keyfold/internal/audit"
	"github.com/keyfold/keyfold/internal/configs"
	"github.com/keyfold/keyfold/internal/crypto"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/keys"
	"github.com/keyfold/keyfold/internal/remote"
)

// ResetPasswordOptions configures the password reset workflow.
type ResetPasswordOptions struct {
	Profile string
	Prompt  Prompter
}

// ResetPasswordResult reports what the reset rotated.
type ResetPasswordResult struct {
	Profile string
	// RemoteRotated reports that the remote master key wrapping was rotated
	// too. It is false when the profile has no vault repository configured.
	RemoteRotated bool
}

// ResetPassword rotates the wrappings of both master keys under a new
// password. The remote rewrap is the commit point: it happens first, and on
// any failure the reset aborts with the local key untouched, so the old
// password keeps working everywhere. Only after the remote accepts its new
// wrapping is the local key rewrapped. The key material itself never
// changes, so stored secrets need no re-encryption.
func ResetPassword(ctx context.Context, opts ResetPasswordOptions) (*ResetPasswordResult, error) {
	oldPassword, err := opts.Prompt.Password("Current master password: ")
	if err != nil {
		return nil, err
	}

	material, err := keys.UnwrapLMKMaterial(opts.Profile, oldPassword)
	if err != nil {
		return nil, err
	}
	lmk := keys.RecordKey(material)

	// A vault repository is optional: reset must work on a profile that has
	// logged in but never run init.
	client, rmk, err := openRemoteForReset(ctx, opts.Profile, lmk, oldPassword)
	if err != nil {
		return nil, err
	}

	newPassword, err := newPassword(opts.Prompt)
	if err != nil {
		return nil, err
	}

	opID := uuid.NewString()
	if rmk != nil {
		if err := keys.RewrapRMK(ctx, client, rmk, newPassword, opID); err != nil {
			return nil, err
		}
	}

	if err := keys.RewrapLMK(opts.Profile, material, newPassword); err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{Profile: opts.Profile, Operation: "reset-password", OpID: opID})

	return &ResetPasswordResult{Profile: opts.Profile, RemoteRotated: rmk != nil}, nil
}

// openRemoteForReset assembles the remote client and fetches the remote
// master key when the profile has a repository configured. A missing token
// or repository identity means there is nothing remote to rotate.
func openRemoteForReset(ctx context.Context, profile string, lmk []byte, password string) (*remote.Client, *keys.RMK, error) {
	token, err := openToken(profile, lmk)
	if errors.Is(err, kferrors.ErrNotLoggedIn) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	rec, exists, err := configs.LoadRepoIdentity(profile)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, nil
	}
	identity, err := crypto.Open(lmk, rec)
	if err != nil {
		return nil, nil, err
	}
	owner, repo, ok := strings.Cut(string(identity), "/")
	if !ok {
		return nil, nil, kferrors.ErrInvalidRepoIdentity
	}

	client := remote.New(token, owner, repo)
	rmk, err := keys.FetchOrCreateRMK(ctx, client, password)
	if err != nil {
		return nil, nil, err
	}
	return client, rmk, nil
}
