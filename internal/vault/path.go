package vault

import (
	"regexp"
	"strings"

	kferrors "github.com/keyfold/keyfold/internal/errors"
)

// Remote layout. The wrapped remote master key lives at a fixed well-known
// path; secret records live under the keys/ prefix at a path derived from
// their category and key name.
const (
	RMKPath     = "master_key.json"
	recordsRoot = "keys"
)

// validSegment matches one category path segment or a key name.
var validSegment = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateKey checks a key name: non-empty, no path separator, and matching
// the segment pattern.
func ValidateKey(key string) error {
	if key == "" || strings.Contains(key, "/") || !validSegment.MatchString(key) {
		return kferrors.ErrInvalidKeyName
	}
	return nil
}

// ValidateCategory checks a category path: zero segments (empty string) is
// valid; otherwise every /-separated segment must match the segment pattern,
// which rejects empty segments ("api//db") and segments with spaces.
func ValidateCategory(category string) error {
	if category == "" {
		return nil
	}
	for _, segment := range strings.Split(category, "/") {
		if !validSegment.MatchString(segment) {
			return kferrors.ErrInvalidCategory
		}
	}
	return nil
}

// ResolvePath validates category and key and returns the remote storage path
// for the secret record. Validation happens here, before any I/O.
func ResolvePath(category, key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	if err := ValidateCategory(category); err != nil {
		return "", err
	}

	if category == "" {
		return recordsRoot + "/" + key + ".json", nil
	}
	return recordsRoot + "/" + category + "/" + key + ".json", nil
}

// DisplayPath returns the user-facing category/key form for messages.
func DisplayPath(category, key string) string {
	if category == "" {
		return key
	}
	return category + "/" + key
}
