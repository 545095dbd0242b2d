package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	kferrors "github.com/keyfold/keyfold/internal/errors"
)

// DefaultProfile is the unnamed profile used when no explicit flag is given
// and no selector is persisted.
const DefaultProfile = "default"

// validProfileName matches the allowed profile naming pattern.
var validProfileName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// GlobalConfig is the unencrypted global selector record. It holds only a
// profile name, never any secret.
type GlobalConfig struct {
	ActiveProfile string `toml:"active_profile"`
}

func globalConfigPath() string {
	return filepath.Join(UserKeyfoldSettings.UserConfigsPath, "config.toml")
}

// LoadGlobalConfig loads the global selector, returning an empty config if
// none has been written yet.
func LoadGlobalConfig() (*GlobalConfig, error) {
	config := &GlobalConfig{}

	if _, err := os.Stat(globalConfigPath()); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(globalConfigPath(), config); err != nil {
		return nil, fmt.Errorf("failed to load global config: %w", err)
	}

	return config, nil
}

// SaveGlobalConfig persists the global selector.
func SaveGlobalConfig(config *GlobalConfig) error {
	if err := SaveTOML(globalConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save global config: %w", err)
	}
	return nil
}

// IsValidProfileName reports whether name matches [A-Za-z0-9_-]+.
func IsValidProfileName(name string) bool {
	return validProfileName.MatchString(name)
}

// ResolveActive resolves the active profile for this invocation: an explicit
// flag wins; otherwise the persisted selector; otherwise the default profile.
// Commands resolve once at start and pass the result down; nothing deeper in
// the call graph reads the selector.
func ResolveActive(explicit string) (string, error) {
	if explicit != "" {
		if !IsValidProfileName(explicit) {
			return "", kferrors.ErrInvalidProfileName
		}
		return explicit, nil
	}

	config, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}
	if config.ActiveProfile != "" {
		return config.ActiveProfile, nil
	}

	return DefaultProfile, nil
}

// ProfileExists reports whether the named profile has a local directory.
func ProfileExists(name string) bool {
	info, err := os.Stat(ProfileDir(name))
	return err == nil && info.IsDir()
}

// EnsureProfile creates the profile directory if it does not exist yet.
// Profiles come into existence on first login for that name.
func EnsureProfile(name string) error {
	if !IsValidProfileName(name) {
		return kferrors.ErrInvalidProfileName
	}
	if err := os.MkdirAll(ProfileDir(name), 0700); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	return nil
}

// CreateProfile creates a new named profile. Fails if the name is invalid or
// already taken.
func CreateProfile(name string) error {
	if !IsValidProfileName(name) {
		return kferrors.ErrInvalidProfileName
	}
	if ProfileExists(name) {
		return kferrors.ErrProfileExists
	}
	if err := os.MkdirAll(ProfileDir(name), 0700); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	return nil
}

// ListProfiles returns the names of all profiles with local state, sorted.
func ListProfiles() ([]string, error) {
	entries, err := os.ReadDir(profilesPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && IsValidProfileName(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// SwitchProfile updates the global selector. An empty name clears the
// selector, falling back to the default profile on subsequent invocations.
func SwitchProfile(name string) error {
	if name != "" {
		if !IsValidProfileName(name) {
			return kferrors.ErrInvalidProfileName
		}
		if !ProfileExists(name) {
			return kferrors.ErrProfileNotFound
		}
	}

	config, err := LoadGlobalConfig()
	if err != nil {
		return err
	}
	config.ActiveProfile = name
	return SaveGlobalConfig(config)
}

// DeleteProfile removes the profile's entire local namespace. If the global
// selector pointed at the deleted profile, it is cleared. The remote vault
// the profile referenced is not touched.
func DeleteProfile(name string) error {
	if !IsValidProfileName(name) {
		return kferrors.ErrInvalidProfileName
	}
	if !ProfileExists(name) {
		return kferrors.ErrProfileNotFound
	}

	if err := os.RemoveAll(ProfileDir(name)); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	config, err := LoadGlobalConfig()
	if err != nil {
		return err
	}
	if config.ActiveProfile == name {
		config.ActiveProfile = ""
		return SaveGlobalConfig(config)
	}
	return nil
}
