package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".relnotes.yaml"

type Generator struct {
	Provider          string   `yaml:"provider"`
	Model             string   `yaml:"model"`
	BaseURL           string   `yaml:"base-url"`
	Temperature       *float64 `yaml:"temperature"`
	MaxTokens         int      `yaml:"max-tokens"`
	RequestsPerMinute int      `yaml:"requests-per-minute"`
	Timeout           int      `yaml:"timeout"`

	// APIKey only ever comes from the environment.
	APIKey string `yaml:"-"`
}

type PromptDefaults struct {
	Platform string `yaml:"platform"`
	Plan     string `yaml:"plan"`
	Channel  string `yaml:"channel"`
}

type ClickUp struct {
	WorkspaceID  string `yaml:"workspace-id"`
	DocID        string `yaml:"doc-id"`
	ParentPageID string `yaml:"parent-page-id"`
	// BaseURL overrides the public API endpoint.
	BaseURL string `yaml:"base-url"`

	Token string `yaml:"-"`
}

type Config struct {
	Product        string         `yaml:"product"`
	Generator      Generator      `yaml:"generator"`
	PromptDefaults PromptDefaults `yaml:"prompt-defaults"`
	ClickUp        ClickUp        `yaml:"clickup"`
	ArtifactsDir   string         `yaml:"artifacts-dir"`
}

// Load reads a YAML config file and returns a validated Config. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a validated Config with every default applied.
func Default() *Config {
	var cfg Config
	// The zero config always validates.
	_ = Validate(&cfg)
	return &cfg
}
