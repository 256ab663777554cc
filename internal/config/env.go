package config

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned when a required API credential is unset.
var ErrMissingCredential = errors.New("missing credential")

// Environment variables read by ApplyEnv.
const (
	EnvClickUpToken     = "CLICKUP_API_TOKEN"
	EnvClickUpWorkspace = "CLICKUP_WORKSPACE_ID"
	EnvClickUpDoc       = "CLICKUP_DOC_ID"
	EnvClickUpParent    = "CLICKUP_PARENT_PAGE_ID"
	EnvModel            = "RELNOTES_MODEL"
)

var apiKeyEnv = map[string]string{
	"groq":      "GROQ_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

// APIKeyEnv names the variable holding the key for provider.
func APIKeyEnv(provider string) string {
	return apiKeyEnv[provider]
}

// ApplyEnv overlays credentials and overrides from the environment. Empty
// variables leave the config untouched.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(APIKeyEnv(c.Generator.Provider)); v != "" {
		c.Generator.APIKey = v
	}
	if v := getenv(EnvModel); v != "" {
		c.Generator.Model = v
	}
	if v := getenv(EnvClickUpToken); v != "" {
		c.ClickUp.Token = v
	}
	if v := getenv(EnvClickUpWorkspace); v != "" {
		c.ClickUp.WorkspaceID = v
	}
	if v := getenv(EnvClickUpDoc); v != "" {
		c.ClickUp.DocID = v
	}
	if v := getenv(EnvClickUpParent); v != "" {
		c.ClickUp.ParentPageID = v
	}
}

// RequireAPIKey fails when no key is set for the configured provider.
func (g Generator) RequireAPIKey() error {
	if g.APIKey == "" {
		return fmt.Errorf("%w: %s environment variable is required", ErrMissingCredential, APIKeyEnv(g.Provider))
	}
	return nil
}

// RequireToken fails when no ClickUp token is set.
func (c ClickUp) RequireToken() error {
	if c.Token == "" {
		return fmt.Errorf("%w: %s environment variable is required", ErrMissingCredential, EnvClickUpToken)
	}
	return nil
}
