package workflows

import (
	"context"
	"strings"

	"github.com/keyfold/keyfold/internal/configs"
	"github.com/keyfold/keyfold/internal/crypto"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/keys"
	"github.com/keyfold/keyfold/internal/remote"
)

// session is an unlocked profile: the local master key plus a remote client
// built from the profile's sealed token and repository identity.
type session struct {
	profile string
	lmk     []byte
	token   string
	owner   string
	repo    string
	client  *remote.Client
}

// openSession unlocks a profile and assembles its remote client. It fails
// with ErrNotLoggedIn when no token is stored and ErrVaultNotConfigured when
// no repository identity is stored.
func openSession(profile, password string) (*session, error) {
	lmk, err := keys.UnlockLMK(profile, password)
	if err != nil {
		return nil, err
	}

	token, err := openToken(profile, lmk)
	if err != nil {
		return nil, err
	}

	rec, exists, err := configs.LoadRepoIdentity(profile)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, kferrors.ErrVaultNotConfigured
	}
	identity, err := crypto.Open(lmk, rec)
	if err != nil {
		return nil, err
	}

	owner, repo, ok := strings.Cut(string(identity), "/")
	if !ok {
		return nil, kferrors.ErrInvalidRepoIdentity
	}

	return &session{
		profile: profile,
		lmk:     lmk,
		token:   token,
		owner:   owner,
		repo:    repo,
		client:  remote.New(token, owner, repo),
	}, nil
}

// remoteUsername resolves the login behind a token. The owner and repo are
// irrelevant for the user endpoint.
func remoteUsername(ctx context.Context, token string) (string, error) {
	return remote.New(token, "", "").CurrentUser(ctx)
}

// openToken unseals the profile's stored access token under an already
// unlocked local master key.
func openToken(profile string, lmk []byte) (string, error) {
	rec, exists, err := configs.LoadToken(profile)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", kferrors.ErrNotLoggedIn
	}
	token, err := crypto.Open(lmk, rec)
	if err != nil {
		return "", err
	}
	return string(token), nil
}
