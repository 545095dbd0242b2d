package keys

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/keyfold/keyfold/internal/configs"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/remote"
	"github.com/keyfold/keyfold/internal/remote/remotetest"
	"github.com/keyfold/keyfold/internal/vault"
)

func setTempConfigDir(t *testing.T) {
	t.Helper()
	oldSettings := configs.UserKeyfoldSettings
	configs.UserKeyfoldSettings = &configs.UserSettings{UserConfigsPath: t.TempDir()}
	t.Cleanup(func() {
		configs.UserKeyfoldSettings = oldSettings
	})
}

func newFakeRemote(t *testing.T) (*remotetest.Server, *remote.Client) {
	t.Helper()
	server := remotetest.New("testuser", "test-vault")
	t.Cleanup(server.Close)

	os.Setenv("KEYFOLD_API_URL", server.URL())
	t.Cleanup(func() { os.Unsetenv("KEYFOLD_API_URL") })

	return server, remote.New("mock-token", "testuser", "test-vault")
}

func TestLoadOrCreateLMKLifecycle(t *testing.T) {
	setTempConfigDir(t)

	key1, created, err := LoadOrCreateLMK("work", "password")
	if err != nil {
		t.Fatalf("LoadOrCreateLMK failed: %v", err)
	}
	if !created {
		t.Error("first call should create the LMK")
	}

	key2, created, err := LoadOrCreateLMK("work", "password")
	if err != nil {
		t.Fatalf("LoadOrCreateLMK failed: %v", err)
	}
	if created {
		t.Error("second call should load the existing LMK")
	}
	if !bytes.Equal(key1, key2) {
		t.Error("unlocking with the same password should yield the same key")
	}
}

func TestUnlockLMKWrongPassword(t *testing.T) {
	setTempConfigDir(t)

	if _, _, err := LoadOrCreateLMK("work", "right-password"); err != nil {
		t.Fatalf("LoadOrCreateLMK failed: %v", err)
	}

	_, err := UnlockLMK("work", "wrong-password")
	if !errors.Is(err, kferrors.ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

func TestUnlockLMKNotLoggedIn(t *testing.T) {
	setTempConfigDir(t)

	_, err := UnlockLMK("fresh", "password")
	if !errors.Is(err, kferrors.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestLMKIsolationBetweenProfiles(t *testing.T) {
	setTempConfigDir(t)

	keyWork, _, err := LoadOrCreateLMK("work", "same-password")
	if err != nil {
		t.Fatalf("LoadOrCreateLMK failed: %v", err)
	}
	keyHome, _, err := LoadOrCreateLMK("home", "same-password")
	if err != nil {
		t.Fatalf("LoadOrCreateLMK failed: %v", err)
	}
	if bytes.Equal(keyWork, keyHome) {
		t.Error("profiles must have independently generated LMKs")
	}
}

func TestRewrapLMKKeepsMaterial(t *testing.T) {
	setTempConfigDir(t)

	if _, _, err := LoadOrCreateLMK("work", "old-password"); err != nil {
		t.Fatalf("LoadOrCreateLMK failed: %v", err)
	}

	material, err := UnwrapLMKMaterial("work", "old-password")
	if err != nil {
		t.Fatalf("UnwrapLMKMaterial failed: %v", err)
	}

	if err := RewrapLMK("work", material, "new-password"); err != nil {
		t.Fatalf("RewrapLMK failed: %v", err)
	}

	// Old password no longer unlocks.
	if _, err := UnlockLMK("work", "old-password"); !errors.Is(err, kferrors.ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword under old password, got %v", err)
	}

	// New password yields the same record key: material unchanged.
	rewrapped, err := UnwrapLMKMaterial("work", "new-password")
	if err != nil {
		t.Fatalf("UnwrapLMKMaterial failed: %v", err)
	}
	if !bytes.Equal(material, rewrapped) {
		t.Error("rotation must not regenerate key material")
	}
}

func TestRewrapLMKFreshSalt(t *testing.T) {
	setTempConfigDir(t)

	if _, _, err := LoadOrCreateLMK("work", "password"); err != nil {
		t.Fatalf("LoadOrCreateLMK failed: %v", err)
	}
	before, _, err := configs.LoadWrappedLMK("work")
	if err != nil {
		t.Fatalf("LoadWrappedLMK failed: %v", err)
	}

	material, err := UnwrapLMKMaterial("work", "password")
	if err != nil {
		t.Fatalf("UnwrapLMKMaterial failed: %v", err)
	}
	// Re-wrap under the same password: salt and nonce must still be fresh.
	if err := RewrapLMK("work", material, "password"); err != nil {
		t.Fatalf("RewrapLMK failed: %v", err)
	}

	after, _, err := configs.LoadWrappedLMK("work")
	if err != nil {
		t.Fatalf("LoadWrappedLMK failed: %v", err)
	}
	if before.Salt == after.Salt || before.Nonce == after.Nonce {
		t.Error("rewrap must use a fresh salt and nonce")
	}
}

func TestFetchOrCreateRMK(t *testing.T) {
	server, client := newFakeRemote(t)
	ctx := context.Background()

	rmk, err := FetchOrCreateRMK(ctx, client, "password")
	if err != nil {
		t.Fatalf("FetchOrCreateRMK failed: %v", err)
	}
	if !rmk.Created {
		t.Error("first fetch should create the RMK")
	}
	if _, ok := server.FileContent(vault.RMKPath); !ok {
		t.Fatal("wrapped RMK should be uploaded to the well-known path")
	}

	again, err := FetchOrCreateRMK(ctx, client, "password")
	if err != nil {
		t.Fatalf("FetchOrCreateRMK failed: %v", err)
	}
	if again.Created {
		t.Error("second fetch should find the existing RMK")
	}
	if !bytes.Equal(rmk.Key, again.Key) {
		t.Error("same password should unlock the same RMK")
	}
}

func TestFetchRMKWrongPassword(t *testing.T) {
	_, client := newFakeRemote(t)
	ctx := context.Background()

	if _, err := FetchOrCreateRMK(ctx, client, "right-password"); err != nil {
		t.Fatalf("FetchOrCreateRMK failed: %v", err)
	}

	_, err := FetchOrCreateRMK(ctx, client, "wrong-password")
	if !errors.Is(err, kferrors.ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

func TestRewrapRMK(t *testing.T) {
	_, client := newFakeRemote(t)
	ctx := context.Background()

	rmk, err := FetchOrCreateRMK(ctx, client, "old-password")
	if err != nil {
		t.Fatalf("FetchOrCreateRMK failed: %v", err)
	}

	if err := RewrapRMK(ctx, client, rmk, "new-password", "op-1"); err != nil {
		t.Fatalf("RewrapRMK failed: %v", err)
	}

	// Old password is rejected, new password unlocks the same key.
	if _, err := FetchOrCreateRMK(ctx, client, "old-password"); !errors.Is(err, kferrors.ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword under old password, got %v", err)
	}
	rewrapped, err := FetchOrCreateRMK(ctx, client, "new-password")
	if err != nil {
		t.Fatalf("FetchOrCreateRMK failed: %v", err)
	}
	if !bytes.Equal(rmk.Key, rewrapped.Key) {
		t.Error("rotation must not regenerate RMK material")
	}
}

func TestRewrapRMKStaleSHA(t *testing.T) {
	_, client := newFakeRemote(t)
	ctx := context.Background()

	rmk, err := FetchOrCreateRMK(ctx, client, "password")
	if err != nil {
		t.Fatalf("FetchOrCreateRMK failed: %v", err)
	}

	// A concurrent rewrap moved the remote on; our SHA is now stale.
	if err := RewrapRMK(ctx, client, rmk, "other-password", "op-1"); err != nil {
		t.Fatalf("RewrapRMK failed: %v", err)
	}

	err = RewrapRMK(ctx, client, rmk, "new-password", "op-2")
	if !errors.Is(err, kferrors.ErrRevisionConflict) {
		t.Errorf("expected ErrRevisionConflict for stale SHA, got %v", err)
	}
}
