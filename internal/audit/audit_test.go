package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/keyfold/keyfold/internal/configs"
)

func setTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig := configs.UserKeyfoldSettings
	configs.UserKeyfoldSettings = &configs.UserSettings{UserConfigsPath: dir}
	t.Cleanup(func() { configs.UserKeyfoldSettings = orig })
	return dir
}

func TestLogAppendsEntries(t *testing.T) {
	dir := setTempConfigDir(t)

	Log(Entry{Profile: "default", Operation: "store", Path: "keys/api/db.json", OpID: "op-1"})
	Log(Entry{Profile: "default", Operation: "delete", Path: "keys/api/db.json", OpID: "op-2"})

	f, err := os.Open(filepath.Join(dir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("opening audit log: %v", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("unmarshalling audit line: %v", err)
		}
		entries = append(entries, e)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[0].Operation != "store" || entries[1].Operation != "delete" {
		t.Errorf("unexpected operations: %q, %q", entries[0].Operation, entries[1].Operation)
	}
	if entries[0].Timestamp == "" {
		t.Error("expected timestamp to be filled in")
	}
}

func TestLogSilentOnMissingConfigDir(t *testing.T) {
	orig := configs.UserKeyfoldSettings
	configs.UserKeyfoldSettings = &configs.UserSettings{UserConfigsPath: ""}
	t.Cleanup(func() { configs.UserKeyfoldSettings = orig })

	// Should not panic or create anything.
	Log(Entry{Profile: "default", Operation: "get"})
}
