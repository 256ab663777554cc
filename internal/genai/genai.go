// Package genai is the boundary to the external text-generation service.
// A Generator makes exactly one call per request; SDK-level retries are
// disabled so a failing call surfaces immediately to the caller.
package genai

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Providers understood by New.
const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// GroqBaseURL is the OpenAI-compatible endpoint used by the groq provider.
const GroqBaseURL = "https://api.groq.com/openai/v1/"

// ErrEmptyResponse is returned when the service answers without any text.
var ErrEmptyResponse = errors.New("generator returned no content")

// Request is one system + user instruction pair.
type Request struct {
	System string
	Prompt string
}

// Generator is the interface for text generation. Tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Options configures a Generator.
type Options struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	// RequestsPerMinute bounds the outbound call rate; 0 means unlimited.
	RequestsPerMinute int
	// Timeout bounds a single call; 0 leaves the transport default.
	Timeout time.Duration
}

// New builds the Generator for opts.Provider, wrapped in a rate limiter when
// RequestsPerMinute is set.
func New(opts Options) (Generator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("genai: API key is required for provider %q", opts.Provider)
	}

	var g Generator
	switch opts.Provider {
	case ProviderGroq:
		if opts.BaseURL == "" {
			opts.BaseURL = GroqBaseURL
		}
		g = NewOpenAI(opts)
	case ProviderOpenAI:
		g = NewOpenAI(opts)
	case ProviderAnthropic:
		g = NewAnthropic(opts)
	default:
		return nil, fmt.Errorf("genai: unknown provider %q", opts.Provider)
	}

	if opts.RequestsPerMinute > 0 {
		g = NewLimited(g, opts.RequestsPerMinute)
	}
	return g, nil
}
