package provider

import (
	"fmt"
	"strings"
	"time"
)

// Config defines identity and invocation parameters for one provider.
// It is a tagged union: Kind selects which fields are meaningful.
// Instances are immutable once constructed.
type Config struct {
	// Kind is "cli" or "api". Empty defaults to KindCLI.
	Kind Kind

	// Name selects the provider implementation ("claude", "gemini",
	// "codex", "opencode", "custom", or any name for an API provider).
	Name string

	// Command overrides the executable name for CLI providers.
	Command string

	// Args replaces the provider's base argument list when non-nil.
	Args []string

	// Template is the {{PROMPT}} command template for the custom provider.
	Template string

	// Endpoint and Credential configure an API provider.
	Endpoint   string
	Credential string
	Model      string

	// Timeout is the per-provider default timeout.
	Timeout time.Duration

	// MinLength overrides the minimal-format threshold.
	MinLength int

	// ConventionalTypes, when non-nil, enables conventional-format
	// validation with this vocabulary for this provider.
	ConventionalTypes []string
}

// builtinNames are the CLI provider names FromConfig accepts, kept in sync
// with the switch below (and covered by a test that constructs every one).
var builtinNames = []string{"claude", "gemini", "codex", "opencode", "custom"}

// FromConfig constructs the provider a configuration describes.
// Unknown CLI provider names fail with an error listing valid names, so a
// typo in config surfaces immediately instead of at generation time.
func FromConfig(cfg Config) (Provider, error) {
	if cfg.Kind == KindAPI {
		return apiFromConfig(cfg)
	}

	var p *CLIProvider
	switch cfg.Name {
	case "claude":
		p = &NewClaude().CLIProvider
	case "gemini":
		p = &NewGemini().CLIProvider
	case "codex":
		p = &NewCodex().CLIProvider
	case "opencode":
		p = &NewOpenCode().CLIProvider
	case "custom":
		c, err := NewCustom(cfg.Template)
		if err != nil {
			return nil, err
		}
		c.timeout = cfg.Timeout
		c.minLength = cfg.MinLength
		c.conventionalTypes = cfg.ConventionalTypes
		return c, nil
	default:
		return nil, fmt.Errorf("unknown provider %q (valid: %s)",
			cfg.Name, strings.Join(builtinNames, ", "))
	}

	if cfg.Command != "" {
		p.Cmd = cfg.Command
	}
	if cfg.Args != nil {
		p.BaseArgs = append([]string(nil), cfg.Args...)
	}
	p.Timeout = cfg.Timeout
	p.MinLength = cfg.MinLength
	p.ConventionalTypes = cfg.ConventionalTypes
	return p, nil
}

// NewRegistryFromConfigs constructs every configured provider and registers
// it by name. The first construction failure aborts the whole registry so a
// config typo never yields a silently shorter chain.
func NewRegistryFromConfigs(configs []Config) (*Registry, error) {
	reg := NewRegistry()
	for _, cfg := range configs {
		p, err := FromConfig(cfg)
		if err != nil {
			return nil, err
		}
		reg.Register(p)
	}
	return reg, nil
}

// apiFromConfig builds the API provider, validating required fields.
func apiFromConfig(cfg Config) (Provider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("api provider %q requires an endpoint", cfg.Name)
	}
	a := NewAPI(cfg.Name, cfg.Endpoint, cfg.Credential)
	a.model = cfg.Model
	a.timeout = cfg.Timeout
	a.minLength = cfg.MinLength
	a.conventionalTypes = cfg.ConventionalTypes
	return a, nil
}
