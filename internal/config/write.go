package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteStarter writes a config file populated with the default values.
// It refuses to overwrite an existing file.
func WriteStarter(path string) error {
	if path == "" {
		path = DefaultLocalPath
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(GetDefaults(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal defaults: %w", err)
	}
	data = append(data, '\n')

	// Write to a temp file and rename so a crash never leaves a partial config.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
