package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/utils"
	"github.com/keyfold/keyfold/internal/workflows"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// spinnerPrompter pauses the spinner around every interactive prompt so the
// prompt line is not overwritten by spinner frames.
type spinnerPrompter struct {
	s *spinner.Spinner
}

func (p spinnerPrompter) pause() func() {
	if p.s != nil && p.s.Active() {
		p.s.Stop()
		return p.s.Restart
	}
	return func() {}
}

func (p spinnerPrompter) Confirm(prompt string) (bool, error) {
	defer p.pause()()
	return utils.Confirm(prompt)
}

func (p spinnerPrompter) Password(prompt string) (string, error) {
	defer p.pause()()
	return utils.ReadPassword(prompt)
}

var _ workflows.Prompter = spinnerPrompter{}

// resolveProfile resolves the profile the command runs under, honoring the
// global --profile flag over the stored selector.
func resolveProfile() (string, error) {
	return workflows.CurrentProfile(profileFlag)
}

// ErrReported marks failures whose message has already been shown to the
// user. main exits non-zero on it without printing anything further.
var ErrReported = errors.New("command failed")

// finishKnown renders well-understood failures as a friendly message on
// stderr and reports whether it handled the error. Unexpected errors stay
// with the caller.
func finishKnown(s *spinner.Spinner, err error) bool {
	var finalMessage string

	switch {
	case errors.Is(err, kferrors.ErrNotLoggedIn):
		finalMessage = ui.Error.Sprint("✗") + " Not logged in\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("keyfold login") + " first"
	case errors.Is(err, kferrors.ErrVaultNotConfigured):
		finalMessage = ui.Error.Sprint("✗") + " No vault repository configured\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("keyfold init") + " first"
	case errors.Is(err, kferrors.ErrWrongPassword):
		finalMessage = ui.Error.Sprint("✗") + " Incorrect master password"
	case errors.Is(err, kferrors.ErrSecretNotFound):
		finalMessage = ui.Error.Sprint("✗") + " Secret not found"
	case errors.Is(err, kferrors.ErrRevisionNotFound):
		finalMessage = ui.Error.Sprint("✗") + " The secret did not exist at that revision"
	case errors.Is(err, kferrors.ErrAborted):
		finalMessage = ui.Warning.Sprint("Aborted.")
	case errors.Is(err, kferrors.ErrPasswordTooShort):
		finalMessage = ui.Error.Sprint("✗") + fmt.Sprintf(" Master password must be at least %d characters", workflows.MinPasswordLength)
	case errors.Is(err, kferrors.ErrRevisionConflict):
		finalMessage = ui.Error.Sprint("✗") + " The vault changed while this command was running\n" +
			ui.Info.Sprint("→") + " Re-run the command to retry against the latest state"
	case errors.Is(err, kferrors.ErrRemoteUnavailable):
		finalMessage = ui.Error.Sprint("✗") + " Could not reach the vault repository\n" +
			ui.Info.Sprint("→") + " Check your network connection and try again"
	case errors.Is(err, kferrors.ErrProfileNotFound):
		finalMessage = ui.Error.Sprint("✗") + " Profile not found"
	case errors.Is(err, kferrors.ErrProfileExists):
		finalMessage = ui.Error.Sprint("✗") + " A profile with that name already exists"
	case errors.Is(err, kferrors.ErrInvalidProfileName):
		finalMessage = ui.Error.Sprint("✗") + " Profile names may only contain letters, digits, hyphens and underscores"
	case errors.Is(err, kferrors.ErrInvalidCategory), errors.Is(err, kferrors.ErrInvalidKeyName):
		finalMessage = ui.Error.Sprint("✗") + " " + err.Error()
	case errors.Is(err, kferrors.ErrInvalidRepoIdentity):
		finalMessage = ui.Error.Sprint("✗") + " Repository must be given as " + ui.Code.Sprint("name") + " or " + ui.Code.Sprint("owner/name")
	case errors.Is(err, kferrors.ErrDeviceCodeExpired):
		finalMessage = ui.Error.Sprint("✗") + " The device code expired before authorization\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("keyfold login") + " again"
	case errors.Is(err, kferrors.ErrAccessDenied):
		finalMessage = ui.Error.Sprint("✗") + " Authorization was denied"
	default:
		return false
	}

	// Stop the spinner before writing so the message is not overdrawn.
	// The deferred cleanup tolerates an already-stopped spinner.
	if s != nil && s.Active() {
		s.Stop()
	}
	fmt.Fprint(os.Stderr, ui.EnsureNewline(finalMessage))
	return true
}
