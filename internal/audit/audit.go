package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/keyfold/keyfold/internal/configs"
)

// Entry represents a single audit log entry. Entries record which operation
// touched which path under which profile, never values, tokens or passwords.
type Entry struct {
	Timestamp string `json:"ts"`      // RFC3339 with microseconds.
	Profile   string `json:"profile"` // Active profile for the invocation.
	Operation string `json:"op"`      // Operation name.
	OpID      string `json:"op_id,omitempty"` // Per-invocation operation ID.

	// Optional fields depending on operation.
	Path     string `json:"path,omitempty"`     // Resolved category/key for vault ops.
	Repo     string `json:"repo,omitempty"`     // Repo identity for init.
	Revision string `json:"revision,omitempty"` // Requested revision for get.
}

// Log appends an entry to the audit log. If logging fails it stays silent:
// operations should not fail just because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	root := configs.UserKeyfoldSettings.UserConfigsPath
	if root == "" {
		return
	}
	if err := os.MkdirAll(root, 0700); err != nil {
		return
	}

	logPath := filepath.Join(root, "audit.jsonl")

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}
