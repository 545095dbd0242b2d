package workflows

import (
	"context"

	"github.com/keyfold/keyfold/internal/audit"
	"github.com/keyfold/keyfold/internal/keys"
	"github.com/keyfold/keyfold/internal/remote"
	"github.com/keyfold/keyfold/internal/vault"
)

// HistoryOptions configures the history workflow.
type HistoryOptions struct {
	Profile  string
	Category string
	Key      string
	Prompt   Prompter
	// RenderPage is called with each page of revisions, newest first.
	RenderPage func(revisions []remote.Revision)
}

// HistoryResult reports how much history was shown.
type HistoryResult struct {
	Path string
	// Revisions is the total number of revisions rendered.
	Revisions int
}

// History pages through a secret's revisions newest first, asking the user
// between pages whether to continue. An empty history is not an error: a
// secret that never existed simply has zero revisions.
func History(ctx context.Context, opts HistoryOptions) (*HistoryResult, error) {
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
	// Listing revisions decrypts nothing, but fetching the remote master key
	// still verifies the password grants access to this vault.
	rmk, err := keys.FetchOrCreateRMK(ctx, sess.client, password)
	if err != nil {
		return nil, err
	}
	v := vault.New(sess.client, rmk.Key)

	pager, err := v.History(opts.Category, opts.Key)
	if err != nil {
		return nil, err
	}

	path := vault.DisplayPath(opts.Category, opts.Key)
	total := 0
	for !pager.Done() {
		page, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		opts.RenderPage(page)
		total += len(page)

		if pager.Done() {
			break
		}
		more, err := opts.Prompt.Confirm("Show older revisions?")
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	audit.Log(audit.Entry{Profile: opts.Profile, Operation: "history", Path: path})

	return &HistoryResult{Path: path, Revisions: total}, nil
}
