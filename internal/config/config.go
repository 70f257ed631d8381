// Package config loads aicommit configuration from defaults, global and
// local JSON files, and environment variables, in increasing priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/aicommit/internal/clean"
	"github.com/ariel-frischer/aicommit/internal/provider"
)

// DefaultLocalPath is the per-project config file location.
const DefaultLocalPath = ".aicommit/config.json"

// Configuration represents the aicommit CLI tool configuration.
type Configuration struct {
	// Providers is the ordered fallback chain.
	Providers []string `koanf:"providers" validate:"required,min=1"`

	// Commands maps provider names to executable-name overrides.
	Commands map[string]string `koanf:"commands"`

	// CustomCmd is the {{PROMPT}} template for the "custom" provider.
	CustomCmd string `koanf:"custom_cmd"`

	CLITimeout int `koanf:"cli_timeout" validate:"min=1,max=604800"`
	APITimeout int `koanf:"api_timeout" validate:"min=1,max=604800"`

	MinMessageLength    int      `koanf:"min_message_length" validate:"min=1"`
	ConventionalTypes   []string `koanf:"conventional_types"`
	RequireConventional bool     `koanf:"require_conventional"`

	APIEndpoint string `koanf:"api_endpoint"`
	APIKey      string `koanf:"api_key"`
	APIModel    string `koanf:"api_model"`

	MaxDiffFiles int  `koanf:"max_diff_files" validate:"min=1"`
	ShowProgress bool `koanf:"show_progress"`
}

// Load loads configuration from global, local, and environment sources.
// Priority: environment variables > local config > global config > defaults.
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		globalPath := filepath.Join(homeDir, ".aicommit", "config.json")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	if localConfigPath == "" {
		localConfigPath = DefaultLocalPath
	}
	if _, err := os.Stat(localConfigPath); err == nil {
		if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
	}

	if err := k.Load(env.Provider("AICOMMIT_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks tag rules and cross-field constraints.
func (c *Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.CustomCmd != "" {
		if err := provider.ValidateTemplate(c.CustomCmd); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	for _, name := range c.Providers {
		if name == "custom" && c.CustomCmd == "" {
			return fmt.Errorf("provider %q listed but custom_cmd is not set", name)
		}
		if name == "api" && c.APIEndpoint == "" {
			return fmt.Errorf("provider %q listed but api_endpoint is not set", name)
		}
	}
	return nil
}

// ProviderConfigs expands the ordered provider name list into concrete
// provider configurations carrying the shared validation policy.
func (c *Configuration) ProviderConfigs() []provider.Config {
	var types []string
	if c.RequireConventional {
		types = c.ConventionalTypes
		if len(types) == 0 {
			types = clean.DefaultConventionalTypes
		}
	}

	configs := make([]provider.Config, 0, len(c.Providers))
	for _, name := range c.Providers {
		cfg := provider.Config{
			Kind:              provider.KindCLI,
			Name:              name,
			Command:           c.Commands[name],
			Timeout:           time.Duration(c.CLITimeout) * time.Second,
			MinLength:         c.MinMessageLength,
			ConventionalTypes: types,
		}
		switch name {
		case "custom":
			cfg.Template = c.CustomCmd
		case "api":
			cfg.Kind = provider.KindAPI
			cfg.Endpoint = c.APIEndpoint
			cfg.Credential = c.APIKey
			cfg.Model = c.APIModel
			cfg.Timeout = time.Duration(c.APITimeout) * time.Second
		}
		configs = append(configs, cfg)
	}
	return configs
}

// envTransform converts environment variable names to config keys.
// Example: AICOMMIT_CLI_TIMEOUT -> cli_timeout
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "AICOMMIT_"))
}
