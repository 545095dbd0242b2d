package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML writes data as TOML to filePath, creating parent directories as
// needed. Keyfold keeps only plaintext bookkeeping in TOML, currently the
// global profile selector; wrapped keys and sealed records go through the
// JSON record files instead. Files are written 0600 like everything else
// under the config directory.
func SaveTOML(filePath string, data any) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if err := toml.NewEncoder(file).Encode(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadTOML decodes the TOML file at filePath into data. Callers are expected
// to handle a missing file themselves, an absent selector is not an error.
func LoadTOML(filePath string, data any) error {
	_, err := toml.DecodeFile(filePath, data)
	return err
}
