package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/keyfold/keyfold/internal/configs"
	logger "github.com/keyfold/keyfold/internal/logging"
)

// captureStreams redirects stdout and stderr while fn runs and returns
// everything written to each.
func captureStreams(fn func() error) (stdout, stderr string, err error) {
	origStdout, origStderr := os.Stdout, os.Stderr
	outR, outW, err := os.Pipe()
	if err != nil {
		return "", "", err
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		return "", "", err
	}
	os.Stdout, os.Stderr = outW, errW

	runErr := fn()

	outW.Close()
	errW.Close()
	os.Stdout, os.Stderr = origStdout, origStderr

	var outBuf, errBuf bytes.Buffer
	_, _ = io.Copy(&outBuf, outR)
	_, _ = io.Copy(&errBuf, errR)
	return outBuf.String(), errBuf.String(), runErr
}

func setupTestEnvironment(t *testing.T) {
	t.Helper()
	originalSettings := configs.UserKeyfoldSettings
	configs.UserKeyfoldSettings = &configs.UserSettings{UserConfigsPath: t.TempDir()}
	SetLogger(logger.Logger{})
	t.Cleanup(func() {
		configs.UserKeyfoldSettings = originalSettings
		ResetGlobalState()
	})
}

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := GetRootCmd()
	cmd.SetArgs(args)
	return captureStreams(cmd.Execute)
}

// TestProfileCommands contains integration tests for the `keyfold profile`
// command tree.
func TestProfileCommands(t *testing.T) {
	t.Run("CurrentDefaultsToDefault", func(t *testing.T) {
		setupTestEnvironment(t)

		output, _, err := runCommand(t, "profile", "current")
		if err != nil {
			t.Fatalf("Command failed: %v", err)
		}
		if strings.TrimSpace(output) != "default" {
			t.Errorf("Expected default profile, got: %s", output)
		}
	})

	t.Run("CreateSwitchAndList", func(t *testing.T) {
		setupTestEnvironment(t)

		output, _, err := runCommand(t, "profile", "create", "work")
		if err != nil {
			t.Fatalf("Create failed: %v\nOutput: %s", err, output)
		}
		if !strings.Contains(output, "work") {
			t.Errorf("Expected created profile in output: %s", output)
		}

		output, _, err = runCommand(t, "profile", "switch", "work")
		if err != nil {
			t.Fatalf("Switch failed: %v\nOutput: %s", err, output)
		}

		output, _, err = runCommand(t, "profile", "current")
		if err != nil {
			t.Fatalf("Current failed: %v", err)
		}
		if strings.TrimSpace(output) != "work" {
			t.Errorf("Expected work after switch, got: %s", output)
		}

		output, _, err = runCommand(t, "profile", "list")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if !strings.Contains(output, "default") || !strings.Contains(output, "work") {
			t.Errorf("Expected both profiles listed, got: %s", output)
		}
	})

	t.Run("ProfileFlagOverridesSelector", func(t *testing.T) {
		setupTestEnvironment(t)

		output, _, err := runCommand(t, "profile", "create", "work")
		if err != nil {
			t.Fatalf("Create failed: %v\nOutput: %s", err, output)
		}
		output, _, err = runCommand(t, "profile", "current", "--profile", "work")
		if err != nil {
			t.Fatalf("Current failed: %v", err)
		}
		if strings.TrimSpace(output) != "work" {
			t.Errorf("Expected flag to win, got: %s", output)
		}
	})

	t.Run("CreateRejectsInvalidName", func(t *testing.T) {
		setupTestEnvironment(t)

		stdout, stderr, err := runCommand(t, "profile", "create", "bad name")
		if !errors.Is(err, ErrReported) {
			t.Fatalf("Expected ErrReported so the process exits non-zero, got %v", err)
		}
		if !strings.Contains(stderr, "Profile names") {
			t.Errorf("Expected validation message on stderr, got: %s", stderr)
		}
		if strings.Contains(stdout, "Profile names") {
			t.Errorf("Validation message must not go to stdout: %s", stdout)
		}
	})

	t.Run("DeleteMissingProfileFails", func(t *testing.T) {
		setupTestEnvironment(t)

		stdout, stderr, err := runCommand(t, "profile", "delete", "no-such-profile")
		if !errors.Is(err, ErrReported) {
			t.Fatalf("Expected ErrReported so the process exits non-zero, got %v", err)
		}
		if !strings.Contains(stderr, "Profile not found") {
			t.Errorf("Expected not-found message on stderr, got: %s", stderr)
		}
		if stdout != "" {
			t.Errorf("Expected empty stdout for a failed delete, got: %s", stdout)
		}
	})
}
