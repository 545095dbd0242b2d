package workflows

import (
	"fmt"
	"sort"

	"github.com/keyfold/keyfold/internal/audit"
	"github.com/keyfold/keyfold/internal/configs"
	kferrors "github.com/keyfold/keyfold/internal/errors"
)

// ProfileInfo describes one profile in a listing.
type ProfileInfo struct {
	Name   string
	Active bool
}

// ListProfiles returns all known profiles, sorted, with the active one
// marked. The default profile is always listed even before first use.
func ListProfiles(explicit string) ([]ProfileInfo, error) {
	active, err := configs.ResolveActive(explicit)
	if err != nil {
		return nil, err
	}

	names, err := configs.ListProfiles()
	if err != nil {
		return nil, err
	}

	seen := false
	infos := make([]ProfileInfo, 0, len(names)+1)
	for _, name := range names {
		if name == configs.DefaultProfile {
			seen = true
		}
		infos = append(infos, ProfileInfo{Name: name, Active: name == active})
	}
	if !seen {
		infos = append(infos, ProfileInfo{Name: configs.DefaultProfile, Active: active == configs.DefaultProfile})
		sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	}
	return infos, nil
}

// CreateProfile creates a new, empty profile.
func CreateProfile(name string) error {
	if err := configs.CreateProfile(name); err != nil {
		return err
	}
	audit.Log(audit.Entry{Profile: name, Operation: "profile-create"})
	return nil
}

// SwitchProfile makes the named profile the active one for future
// invocations.
func SwitchProfile(name string) error {
	if err := configs.SwitchProfile(name); err != nil {
		return err
	}
	audit.Log(audit.Entry{Profile: name, Operation: "profile-switch"})
	return nil
}

// CurrentProfile reports the profile the next command would run under.
func CurrentProfile(explicit string) (string, error) {
	return configs.ResolveActive(explicit)
}

// DeleteProfile removes a profile and all its local state after
// confirmation. Remote vault contents are untouched: the profile only holds
// local access state.
func DeleteProfile(name string, prompt Prompter) error {
	if !configs.ProfileExists(name) {
		return kferrors.ErrProfileNotFound
	}

	ok, err := prompt.Confirm(fmt.Sprintf("Delete profile %q and all its local state?", name))
	if err != nil {
		return err
	}
	if !ok {
		return kferrors.ErrAborted
	}

	if err := configs.DeleteProfile(name); err != nil {
		return err
	}
	audit.Log(audit.Entry{Profile: name, Operation: "profile-delete"})
	return nil
}
