package cmd

import (
	"errors"
	"strings"
	"testing"
)

// TestInitRepoFlag exercises the `keyfold init --repo` surface.
func TestInitRepoFlag(t *testing.T) {
	t.Run("FlagReachesWorkflow", func(t *testing.T) {
		setupTestEnvironment(t)

		// A malformed identity is rejected before any prompt or network
		// call, proving the flag value flows into the workflow.
		_, stderr, err := runCommand(t, "init", "--repo", "bad//name")
		if !errors.Is(err, ErrReported) {
			t.Fatalf("Expected ErrReported for a malformed identity, got %v", err)
		}
		if !strings.Contains(stderr, "Repository must be given as") {
			t.Errorf("Expected identity message on stderr, got: %s", stderr)
		}
	})

	t.Run("FlagAndArgumentConflict", func(t *testing.T) {
		setupTestEnvironment(t)

		_, stderr, err := runCommand(t, "init", "--repo", "me/vault", "other/vault")
		if err == nil {
			t.Fatal("Expected an error when both forms are given")
		}
		if !strings.Contains(stderr, "not both") {
			t.Errorf("Expected conflict message on stderr, got: %s", stderr)
		}
	})
}

// TestStoreKeyValueFlags exercises the `keyfold store --key/--value` surface.
func TestStoreKeyValueFlags(t *testing.T) {
	t.Run("KeyFlagReachesWorkflow", func(t *testing.T) {
		setupTestEnvironment(t)

		// An invalid key name is rejected before any prompt or network
		// call, proving the flag value flows into the workflow.
		_, stderr, err := runCommand(t, "store", "--key", "bad key!", "--value", "v")
		if !errors.Is(err, ErrReported) {
			t.Fatalf("Expected ErrReported for an invalid key, got %v", err)
		}
		if !strings.Contains(stderr, "invalid key name") {
			t.Errorf("Expected key validation message on stderr, got: %s", stderr)
		}
	})

	t.Run("PositionalKeyStillAccepted", func(t *testing.T) {
		setupTestEnvironment(t)

		_, stderr, err := runCommand(t, "store", "bad key!")
		if !errors.Is(err, ErrReported) {
			t.Fatalf("Expected ErrReported for an invalid key, got %v", err)
		}
		if !strings.Contains(stderr, "invalid key name") {
			t.Errorf("Expected key validation message on stderr, got: %s", stderr)
		}
	})

	t.Run("MissingKey", func(t *testing.T) {
		setupTestEnvironment(t)

		_, stderr, err := runCommand(t, "store")
		if err == nil {
			t.Fatal("Expected an error when no key is given")
		}
		if !strings.Contains(stderr, "key is required") {
			t.Errorf("Expected missing-key message on stderr, got: %s", stderr)
		}
	})

	t.Run("ValueFlagAndArgumentConflict", func(t *testing.T) {
		setupTestEnvironment(t)

		_, stderr, err := runCommand(t, "store", "--key", "api", "v1", "--value", "v2")
		if err == nil {
			t.Fatal("Expected an error when both value forms are given")
		}
		if !strings.Contains(stderr, "not both") {
			t.Errorf("Expected conflict message on stderr, got: %s", stderr)
		}
	})
}
