package config

import (
	"fmt"
	"strings"
)

const (
	DefaultProduct      = "Gameball"
	DefaultArtifactsDir = ".relnotes/runs"
	DefaultMaxTokens    = 4000
	DefaultTemperature  = 0.3

	DefaultWorkspaceID  = "3477524"
	DefaultDocID        = "3a40m-33560"
	DefaultParentPageID = "3a40m-31220"
)

var defaultModels = map[string]string{
	"groq":      "llama-3.3-70b-versatile",
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-3-5-haiku-latest",
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if cfg.Product == "" {
		cfg.Product = DefaultProduct
	}
	if cfg.ArtifactsDir == "" {
		cfg.ArtifactsDir = DefaultArtifactsDir
	}

	g := &cfg.Generator
	g.Provider = strings.ToLower(strings.TrimSpace(g.Provider))
	if g.Provider == "" {
		g.Provider = "groq"
	}
	model, ok := defaultModels[g.Provider]
	if !ok {
		return fmt.Errorf("config: generator: unknown provider %q (must be groq, openai, or anthropic)", g.Provider)
	}
	if g.Model == "" {
		g.Model = model
	}
	if g.Temperature == nil {
		t := DefaultTemperature
		g.Temperature = &t
	}
	if *g.Temperature < 0 || *g.Temperature > 2 {
		return fmt.Errorf("config: generator: temperature %v must be between 0 and 2", *g.Temperature)
	}
	if g.MaxTokens < 0 {
		return fmt.Errorf("config: generator: max-tokens must be >= 0")
	}
	if g.MaxTokens == 0 {
		g.MaxTokens = DefaultMaxTokens
	}
	if g.RequestsPerMinute < 0 {
		return fmt.Errorf("config: generator: requests-per-minute must be >= 0")
	}
	if g.Timeout < 0 {
		return fmt.Errorf("config: generator: timeout must be >= 0")
	}

	pd := &cfg.PromptDefaults
	if pd.Platform == "" {
		pd.Platform = "All"
	}
	if pd.Plan == "" {
		pd.Plan = "All Plans"
	}
	if pd.Channel == "" {
		pd.Channel = "All"
	}

	cu := &cfg.ClickUp
	if cu.WorkspaceID == "" {
		cu.WorkspaceID = DefaultWorkspaceID
	}
	if cu.DocID == "" {
		cu.DocID = DefaultDocID
	}
	if cu.ParentPageID == "" {
		cu.ParentPageID = DefaultParentPageID
	}

	return nil
}
