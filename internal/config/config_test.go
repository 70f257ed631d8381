package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/aicommit/internal/provider"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // ignore any real global config

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, []string{"claude", "gemini", "codex", "opencode"}, cfg.Providers)
	assert.Equal(t, 120, cfg.CLITimeout)
	assert.Equal(t, 30, cfg.APITimeout)
	assert.Equal(t, 5, cfg.MinMessageLength)
	assert.False(t, cfg.RequireConventional)
	assert.Equal(t, 10, cfg.MaxDiffFiles)
	assert.True(t, cfg.ShowProgress)
}

func TestLoadLocalOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, t.TempDir(), `{
		"providers": ["gemini"],
		"cli_timeout": 60,
		"require_conventional": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"gemini"}, cfg.Providers)
	assert.Equal(t, 60, cfg.CLITimeout)
	assert.True(t, cfg.RequireConventional)
	assert.Equal(t, 30, cfg.APITimeout, "unset keys keep their defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, t.TempDir(), `{"cli_timeout": 60}`)
	t.Setenv("AICOMMIT_CLI_TIMEOUT", "90")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.CLITimeout)
}

func TestLoadValidationFailures(t *testing.T) {
	tests := map[string]struct {
		content string
		wantErr string
	}{
		"empty providers": {
			content: `{"providers": []}`,
			wantErr: "validation failed",
		},
		"zero timeout": {
			content: `{"cli_timeout": 0}`,
			wantErr: "validation failed",
		},
		"timeout above cap": {
			content: `{"cli_timeout": 999999999}`,
			wantErr: "validation failed",
		},
		"custom without template": {
			content: `{"providers": ["custom"]}`,
			wantErr: "custom_cmd is not set",
		},
		"api without endpoint": {
			content: `{"providers": ["api"]}`,
			wantErr: "api_endpoint is not set",
		},
		"bad custom template": {
			content: `{"providers": ["custom"], "custom_cmd": "llm prompt"}`,
			wantErr: "{{PROMPT}}",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{"providers": [`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load local config")
}

func TestProviderConfigs(t *testing.T) {
	cfg := &Configuration{
		Providers:        []string{"claude", "custom", "api"},
		Commands:         map[string]string{"claude": "claude-nightly"},
		CustomCmd:        "llm {{PROMPT}}",
		CLITimeout:       60,
		APITimeout:       15,
		MinMessageLength: 8,
		APIEndpoint:      "https://llm.internal/v1/commit",
		APIKey:           "sk-1",
		APIModel:         "fast-1",
	}

	pcs := cfg.ProviderConfigs()
	require.Len(t, pcs, 3)

	claude := pcs[0]
	assert.Equal(t, provider.KindCLI, claude.Kind)
	assert.Equal(t, "claude-nightly", claude.Command)
	assert.Equal(t, 60*time.Second, claude.Timeout)
	assert.Equal(t, 8, claude.MinLength)
	assert.Nil(t, claude.ConventionalTypes, "conventional stays off unless required")

	custom := pcs[1]
	assert.Equal(t, "llm {{PROMPT}}", custom.Template)

	api := pcs[2]
	assert.Equal(t, provider.KindAPI, api.Kind)
	assert.Equal(t, "https://llm.internal/v1/commit", api.Endpoint)
	assert.Equal(t, "sk-1", api.Credential)
	assert.Equal(t, "fast-1", api.Model)
	assert.Equal(t, 15*time.Second, api.Timeout)
}

func TestProviderConfigsConventionalVocabulary(t *testing.T) {
	cfg := &Configuration{
		Providers:           []string{"claude"},
		CLITimeout:          60,
		RequireConventional: true,
	}

	pcs := cfg.ProviderConfigs()
	require.Len(t, pcs, 1)
	assert.Equal(t,
		[]string{"feat", "fix", "docs", "style", "refactor", "perf", "test", "chore", "build", "ci"},
		pcs[0].ConventionalTypes)
}

func TestProviderConfigsCustomVocabulary(t *testing.T) {
	cfg := &Configuration{
		Providers:           []string{"claude"},
		CLITimeout:          60,
		RequireConventional: true,
		ConventionalTypes:   []string{"feat", "wip"},
	}

	pcs := cfg.ProviderConfigs()
	assert.Equal(t, []string{"feat", "wip"}, pcs[0].ConventionalTypes)
}

func TestWriteStarter(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), ".aicommit", "config.json")

	require.NoError(t, WriteStarter(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"claude", "gemini", "codex", "opencode"}, cfg.Providers)

	err = WriteStarter(path)
	require.Error(t, err, "must refuse to overwrite an existing config")
	assert.Contains(t, err.Error(), "already exists")
}
