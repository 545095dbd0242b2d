package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/keyfold/keyfold/internal/crypto"
	kferrors "github.com/keyfold/keyfold/internal/errors"
)

func setTempConfigDir(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	oldSettings := UserKeyfoldSettings
	UserKeyfoldSettings = &UserSettings{UserConfigsPath: tempDir}
	t.Cleanup(func() {
		UserKeyfoldSettings = oldSettings
	})
	return tempDir
}

func TestIsValidProfileName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"work", true},
		{"work-2", true},
		{"Work_2", true},
		{"", false},
		{"wo rk", false},
		{"work/2", false},
		{"wörk", false},
	}

	for _, tt := range tests {
		if got := IsValidProfileName(tt.name); got != tt.valid {
			t.Errorf("IsValidProfileName(%q) = %t, want %t", tt.name, got, tt.valid)
		}
	}
}

func TestResolveActiveExplicitWins(t *testing.T) {
	setTempConfigDir(t)

	if err := SaveGlobalConfig(&GlobalConfig{ActiveProfile: "personal"}); err != nil {
		t.Fatalf("SaveGlobalConfig failed: %v", err)
	}

	got, err := ResolveActive("work")
	if err != nil {
		t.Fatalf("ResolveActive failed: %v", err)
	}
	if got != "work" {
		t.Errorf("explicit flag should win, got %q", got)
	}
}

func TestResolveActiveSelector(t *testing.T) {
	setTempConfigDir(t)

	if err := SaveGlobalConfig(&GlobalConfig{ActiveProfile: "personal"}); err != nil {
		t.Fatalf("SaveGlobalConfig failed: %v", err)
	}

	got, err := ResolveActive("")
	if err != nil {
		t.Fatalf("ResolveActive failed: %v", err)
	}
	if got != "personal" {
		t.Errorf("selector should apply, got %q", got)
	}
}

func TestResolveActiveDefault(t *testing.T) {
	setTempConfigDir(t)

	got, err := ResolveActive("")
	if err != nil {
		t.Fatalf("ResolveActive failed: %v", err)
	}
	if got != DefaultProfile {
		t.Errorf("expected default profile, got %q", got)
	}
}

func TestResolveActiveInvalidExplicit(t *testing.T) {
	setTempConfigDir(t)

	_, err := ResolveActive("bad name")
	if !errors.Is(err, kferrors.ErrInvalidProfileName) {
		t.Errorf("expected ErrInvalidProfileName, got %v", err)
	}
}

func TestCreateProfile(t *testing.T) {
	setTempConfigDir(t)

	if err := CreateProfile("work"); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if !ProfileExists("work") {
		t.Error("profile directory should exist after create")
	}

	if err := CreateProfile("work"); !errors.Is(err, kferrors.ErrProfileExists) {
		t.Errorf("expected ErrProfileExists, got %v", err)
	}

	if err := CreateProfile("no good"); !errors.Is(err, kferrors.ErrInvalidProfileName) {
		t.Errorf("expected ErrInvalidProfileName, got %v", err)
	}
}

func TestListProfiles(t *testing.T) {
	setTempConfigDir(t)

	names, err := ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no profiles, got %v", names)
	}

	for _, name := range []string{"work", "personal", "ci"} {
		if err := CreateProfile(name); err != nil {
			t.Fatalf("CreateProfile(%q) failed: %v", name, err)
		}
	}

	names, err = ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	want := []string{"ci", "personal", "work"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected sorted %v, got %v", want, names)
			break
		}
	}
}

func TestSwitchProfile(t *testing.T) {
	setTempConfigDir(t)

	if err := CreateProfile("work"); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	if err := SwitchProfile("work"); err != nil {
		t.Fatalf("SwitchProfile failed: %v", err)
	}
	got, _ := ResolveActive("")
	if got != "work" {
		t.Errorf("expected active profile work, got %q", got)
	}

	// Switching with no name clears the selector.
	if err := SwitchProfile(""); err != nil {
		t.Fatalf("SwitchProfile(\"\") failed: %v", err)
	}
	got, _ = ResolveActive("")
	if got != DefaultProfile {
		t.Errorf("expected default after clearing selector, got %q", got)
	}

	if err := SwitchProfile("missing"); !errors.Is(err, kferrors.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestDeleteProfileClearsSelector(t *testing.T) {
	setTempConfigDir(t)

	if err := CreateProfile("work"); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if err := SwitchProfile("work"); err != nil {
		t.Fatalf("SwitchProfile failed: %v", err)
	}

	if err := DeleteProfile("work"); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}
	if ProfileExists("work") {
		t.Error("profile directory should be gone after delete")
	}

	got, _ := ResolveActive("")
	if got != DefaultProfile {
		t.Errorf("selector should be cleared after deleting active profile, got %q", got)
	}

	if err := DeleteProfile("work"); !errors.Is(err, kferrors.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileRecordsRoundtrip(t *testing.T) {
	setTempConfigDir(t)

	wk, err := crypto.Wrap([]byte("local master key material"), "password")
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	if err := SaveWrappedLMK("work", wk); err != nil {
		t.Fatalf("SaveWrappedLMK failed: %v", err)
	}

	loaded, exists, err := LoadWrappedLMK("work")
	if err != nil {
		t.Fatalf("LoadWrappedLMK failed: %v", err)
	}
	if !exists {
		t.Fatal("expected wrapped LMK to exist")
	}
	if loaded != wk {
		t.Error("wrapped LMK roundtrip mismatch")
	}

	_, exists, err = LoadWrappedLMK("other")
	if err != nil {
		t.Fatalf("LoadWrappedLMK failed: %v", err)
	}
	if exists {
		t.Error("wrapped LMK should not exist for untouched profile")
	}
}

func TestProfileRecordIsolation(t *testing.T) {
	tempDir := setTempConfigDir(t)

	salt, _ := crypto.NewSalt()
	key := crypto.DeriveKey("pw", salt)

	recWork, err := crypto.Seal(key, []byte("token-work"))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	recHome, err := crypto.Seal(key, []byte("token-home"))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if err := SaveToken("work", recWork); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if err := SaveToken("home", recHome); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	got, exists, err := LoadToken("work")
	if err != nil || !exists {
		t.Fatalf("LoadToken(work) = exists %t, err %v", exists, err)
	}
	plain, err := crypto.Open(key, got)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if string(plain) != "token-work" {
		t.Errorf("expected token-work, got %q", plain)
	}

	// Each profile's records live in its own directory.
	for _, name := range []string{"work", "home"} {
		path := filepath.Join(tempDir, "profiles", name, "token.json")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected token record at %s: %v", path, err)
		}
	}
}
