package workflows

import (
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/utils"
)

// MinPasswordLength is the minimum accepted master password length.
const MinPasswordLength = 8

// Prompter is how workflows ask the user for input. The command layer
// provides a terminal-backed implementation; tests provide a scripted one.
type Prompter interface {
	// Confirm asks a yes/no question and reports the answer.
	Confirm(prompt string) (bool, error)
	// Password reads a password without echoing it.
	Password(prompt string) (string, error)
}

// TerminalPrompter reads from the controlling terminal.
type TerminalPrompter struct{}

func (TerminalPrompter) Confirm(prompt string) (bool, error) {
	return utils.Confirm(prompt)
}

func (TerminalPrompter) Password(prompt string) (string, error) {
	return utils.ReadPassword(prompt)
}

// newPassword prompts for a new master password twice and enforces the
// minimum length. A mismatch between the two entries aborts the flow rather
// than looping, so a scripted caller can never hang.
func newPassword(p Prompter) (string, error) {
	password, err := p.Password("New master password: ")
	if err != nil {
		return "", err
	}
	if len(password) < MinPasswordLength {
		return "", kferrors.ErrPasswordTooShort
	}

	confirm, err := p.Password("Confirm master password: ")
	if err != nil {
		return "", err
	}
	if confirm != password {
		return "", kferrors.ErrAborted
	}
	return password, nil
}
