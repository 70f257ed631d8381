package config

import "github.com/ariel-frischer/aicommit/internal/clean"

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"providers":            []string{"claude", "gemini", "codex", "opencode"},
		"cli_timeout":          120,
		"api_timeout":          30,
		"min_message_length":   clean.DefaultMinLength,
		"conventional_types":   clean.DefaultConventionalTypes,
		"require_conventional": false,
		"custom_cmd":           "",
		"api_endpoint":         "",
		"api_key":              "",
		"api_model":            "",
		"max_diff_files":       10,
		"show_progress":        true,
	}
}
