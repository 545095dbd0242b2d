package workflows

import (
	"context"
	"os"

	"github.com/keyfold/keyfold/internal/audit"
	"github.com/keyfold/keyfold/internal/auth"
	"github.com/keyfold/keyfold/internal/configs"
	"github.com/keyfold/keyfold/internal/crypto"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/keys"
)

// LoginOptions configures the login workflow.
type LoginOptions struct {
	Profile string
	Prompt  Prompter
	// Auth performs the device-flow handshake. Defaults to auth.New().
	Auth *auth.Client
	// OnDeviceCode is called once the device code is issued, so the caller
	// can show the user code and verification URI while polling continues.
	OnDeviceCode func(code *auth.DeviceCode)
}

// LoginResult reports what login did.
type LoginResult struct {
	Profile string
	// Username is the authenticated GitHub login.
	Username string
	// CreatedPassword reports that a fresh local master key was created,
	// meaning this was the profile's first login.
	CreatedPassword bool
}

// Login runs the device-flow handshake, establishes the profile's master
// password, and stores the resulting access token sealed under the local
// master key. Re-running login on an already authenticated profile asks for
// confirmation before replacing the stored token.
func Login(ctx context.Context, opts LoginOptions) (*LoginResult, error) {
	if err := configs.EnsureProfile(opts.Profile); err != nil {
		return nil, err
	}

	if _, exists, err := configs.LoadToken(opts.Profile); err != nil {
		return nil, err
	} else if exists {
		ok, err := opts.Prompt.Confirm("This profile is already logged in. Re-authenticate?")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, kferrors.ErrAborted
		}
	}

	// KEYFOLD_TEST_TOKEN bypasses the device flow with a pre-issued token.
	token := os.Getenv("KEYFOLD_TEST_TOKEN")
	if token == "" {
		authClient := opts.Auth
		if authClient == nil {
			authClient = auth.New()
		}

		code, err := authClient.RequestDeviceCode(ctx)
		if err != nil {
			return nil, err
		}
		if opts.OnDeviceCode != nil {
			opts.OnDeviceCode(code)
		}

		token, err = authClient.PollForToken(ctx, code)
		if err != nil {
			return nil, err
		}
	}

	username, err := remoteUsername(ctx, token)
	if err != nil {
		return nil, err
	}

	// First login on a profile sets its master password; later logins
	// unlock the existing local master key instead.
	_, hasLMK, err := configs.LoadWrappedLMK(opts.Profile)
	if err != nil {
		return nil, err
	}

	var password string
	if hasLMK {
		password, err = opts.Prompt.Password("Master password: ")
	} else {
		password, err = newPassword(opts.Prompt)
	}
	if err != nil {
		return nil, err
	}

	lmk, created, err := keys.LoadOrCreateLMK(opts.Profile, password)
	if err != nil {
		return nil, err
	}

	sealed, err := crypto.Seal(lmk, []byte(token))
	if err != nil {
		return nil, err
	}
	if err := configs.SaveToken(opts.Profile, sealed); err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{Profile: opts.Profile, Operation: "login"})

	return &LoginResult{
		Profile:         opts.Profile,
		Username:        username,
		CreatedPassword: created,
	}, nil
}
