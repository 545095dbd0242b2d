package workflows

import (
	"context"
	"regexp"
	"strings"

	"github.com/keyfold/keyfold/internal/audit"
	"github.com/keyfold/keyfold/internal/configs"
	"github.com/keyfold/keyfold/internal/crypto"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/keys"
	"github.com/keyfold/keyfold/internal/remote"
)

// DefaultRepoName is used when init is run without a repository argument.
const DefaultRepoName = "keyfold-storage"

var validRepoSegment = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// InitOptions configures the init workflow.
type InitOptions struct {
	Profile string
	// Repo is the repository identity: "name", "owner/name", or empty for
	// the default repository under the authenticated user.
	Repo   string
	Prompt Prompter
}

// InitResult reports what init did.
type InitResult struct {
	Owner string
	Repo  string
	// RepoCreated reports that the repository did not exist and was created.
	RepoCreated bool
	// VaultCreated reports that a fresh remote master key was generated,
	// meaning this repository had never held a vault before.
	VaultCreated bool
}

// parseRepoIdentity splits a repository identity into owner and name. A bare
// name leaves the owner empty for the caller to resolve.
func parseRepoIdentity(identity string) (owner, name string, err error) {
	if identity == "" {
		return "", DefaultRepoName, nil
	}

	owner, name, hasOwner := strings.Cut(identity, "/")
	if !hasOwner {
		owner, name = "", identity
	}
	if hasOwner && !validRepoSegment.MatchString(owner) {
		return "", "", kferrors.ErrInvalidRepoIdentity
	}
	if !validRepoSegment.MatchString(name) {
		return "", "", kferrors.ErrInvalidRepoIdentity
	}
	return owner, name, nil
}

// Init binds the profile to a vault repository. It ensures the repository
// exists (creating it private if not), fetches or creates the remote master
// key (which doubles as verifying that the master password can open this
// vault) and stores the repository identity sealed under the local master
// key.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	owner, name, err := parseRepoIdentity(opts.Repo)
	if err != nil {
		return nil, err
	}

	password, err := opts.Prompt.Password("Master password: ")
	if err != nil {
		return nil, err
	}

	lmk, err := keys.UnlockLMK(opts.Profile, password)
	if err != nil {
		return nil, err
	}
	token, err := openToken(opts.Profile, lmk)
	if err != nil {
		return nil, err
	}

	if owner == "" {
		owner, err = remoteUsername(ctx, token)
		if err != nil {
			return nil, err
		}
	}

	client := remote.New(token, owner, name)
	repoCreated, err := client.EnsureRepo(ctx)
	if err != nil {
		return nil, err
	}

	rmk, err := keys.FetchOrCreateRMK(ctx, client, password)
	if err != nil {
		return nil, err
	}

	sealed, err := crypto.Seal(lmk, []byte(owner+"/"+name))
	if err != nil {
		return nil, err
	}
	if err := configs.SaveRepoIdentity(opts.Profile, sealed); err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{Profile: opts.Profile, Operation: "init", Repo: owner + "/" + name})

	return &InitResult{
		Owner:        owner,
		Repo:         name,
		RepoCreated:  repoCreated,
		VaultCreated: rmk.Created,
	}, nil
}
