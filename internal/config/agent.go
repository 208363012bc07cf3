package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "BRANDFORGE_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "BRANDFORGE_AGENT_BASE_URL"
	EnvAgentToken        = "BRANDFORGE_AGENT_TOKEN"
	EnvAgentDeployment   = "BRANDFORGE_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "BRANDFORGE_AGENT_API_VERSION"
	EnvAgentAuthType     = "BRANDFORGE_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "BRANDFORGE_AGENT_MODEL_NAME"
)

// AgentSettings mirrors the go-agents agent configuration with TOML
// field tags so it participates in the layered config files. The
// finalized values convert to a gaconfig.AgentConfig via AgentConfig.
type AgentSettings struct {
	Name     string           `toml:"name"`
	Provider ProviderSettings `toml:"provider"`
	Model    ModelSettings    `toml:"model"`
}

// ProviderSettings configures the model provider endpoint.
type ProviderSettings struct {
	Name    string         `toml:"name"`
	BaseURL string         `toml:"base_url"`
	Options map[string]any `toml:"options"`
}

// ModelSettings configures the model served by the provider.
type ModelSettings struct {
	Name string `toml:"name"`
}

// Finalize applies defaults from go-agents DefaultAgentConfig,
// environment variable overrides, and validation.
func (c *AgentSettings) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AgentSettings) Merge(o *AgentSettings) {
	overlay(&c.Name, o.Name)
	overlay(&c.Provider.Name, o.Provider.Name)
	overlay(&c.Provider.BaseURL, o.Provider.BaseURL)
	overlay(&c.Model.Name, o.Model.Name)

	if len(o.Provider.Options) > 0 {
		if c.Provider.Options == nil {
			c.Provider.Options = make(map[string]any, len(o.Provider.Options))
		}
		for k, v := range o.Provider.Options {
			c.Provider.Options[k] = v
		}
	}
}

// AgentConfig converts the finalized settings into a go-agents config,
// keeping library defaults for fields the settings do not cover.
func (c *AgentSettings) AgentConfig() gaconfig.AgentConfig {
	cfg := gaconfig.DefaultAgentConfig()
	cfg.Name = c.Name
	if cfg.Provider == nil {
		cfg.Provider = &gaconfig.ProviderConfig{}
	}
	cfg.Provider.Name = c.Provider.Name
	cfg.Provider.BaseURL = c.Provider.BaseURL
	if len(c.Provider.Options) > 0 {
		if cfg.Provider.Options == nil {
			cfg.Provider.Options = make(map[string]any, len(c.Provider.Options))
		}
		for k, v := range c.Provider.Options {
			cfg.Provider.Options[k] = v
		}
	}
	if cfg.Model == nil {
		cfg.Model = &gaconfig.ModelConfig{}
	}
	cfg.Model.Name = c.Model.Name
	return cfg
}

func (c *AgentSettings) loadDefaults() {
	defaults := gaconfig.DefaultAgentConfig()
	setDefault(&c.Name, defaults.Name)
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if defaults.Provider != nil {
		setDefault(&c.Provider.Name, defaults.Provider.Name)
		setDefault(&c.Provider.BaseURL, defaults.Provider.BaseURL)
	}
	if defaults.Model != nil {
		setDefault(&c.Model.Name, defaults.Model.Name)
	}
}

func (c *AgentSettings) loadEnv() {
	fromEnv(&c.Provider.Name, EnvAgentProviderName)
	fromEnv(&c.Provider.BaseURL, EnvAgentBaseURL)
	fromEnv(&c.Model.Name, EnvAgentModelName)

	options := map[string]string{
		"token":       EnvAgentToken,
		"deployment":  EnvAgentDeployment,
		"api_version": EnvAgentAPIVersion,
		"auth_type":   EnvAgentAuthType,
	}
	for key, name := range options {
		if v := os.Getenv(name); v != "" {
			c.Provider.Options[key] = v
		}
	}
}

func (c *AgentSettings) validate() error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model.Name == "" {
		return fmt.Errorf("model name required")
	}
	return nil
}
