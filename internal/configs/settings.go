package configs

import (
	"log"
	"os"
	"path/filepath"
)

// UserSettings holds the local filesystem layout for keyfold state.
type UserSettings struct {
	// UserConfigsPath is the root of all keyfold local state
	// (selector, profiles). Tests point this at a temp directory.
	UserConfigsPath string
}

var UserKeyfoldSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	// This is independent of any profile, so it is ok to init here.
	UserKeyfoldSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "keyfold"),
	}
}

// profilesPath returns the directory containing all profile directories.
func profilesPath() string {
	return filepath.Join(UserKeyfoldSettings.UserConfigsPath, "profiles")
}

// ProfileDir returns the local state directory for the named profile.
func ProfileDir(name string) string {
	return filepath.Join(profilesPath(), name)
}
