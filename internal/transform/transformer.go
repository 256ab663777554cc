// Package transform rewrites raw release entries into customer-facing prose
// through a genai.Generator, falling back to the original entry whenever a
// call fails or its response cannot be decoded.
package transform

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jorge-barreto/relnotes/internal/genai"
	"github.com/jorge-barreto/relnotes/internal/release"
)

// Entry is a record the transformer can rewrite.
type Entry interface {
	release.Feature | release.Improvement
}

// Result is the outcome of a single call that reached the service.
// Transformed reports whether Entry came from the response; when it is false
// Entry is the caller's original and Err says why the response was rejected.
type Result[T Entry] struct {
	Entry       T
	Transformed bool
	Err         error
}

// Transformer turns one entry into one generator call.
type Transformer struct {
	Generator genai.Generator
	Logger    *zap.Logger
	Product   string
	Defaults  PromptDefaults
}

// Feature rewrites a feature. The returned error is non-nil only when the
// service call itself failed; an undecodable response yields the original
// feature in a non-transformed Result.
func (t *Transformer) Feature(ctx context.Context, f release.Feature) (Result[release.Feature], error) {
	prompt, err := FeaturePrompt(f, t.Defaults)
	if err != nil {
		return Result[release.Feature]{}, err
	}
	return transformEntry(ctx, t, KindFeature, f.Title, f, prompt)
}

// Improvement rewrites an improvement, with the same contract as Feature.
func (t *Transformer) Improvement(ctx context.Context, imp release.Improvement) (Result[release.Improvement], error) {
	prompt, err := ImprovementPrompt(imp)
	if err != nil {
		return Result[release.Improvement]{}, err
	}
	return transformEntry(ctx, t, KindImprovement, imp.Title, imp, prompt)
}

func transformEntry[T Entry](ctx context.Context, t *Transformer, kind Kind, title string, original T, prompt string) (Result[T], error) {
	text, err := t.Generator.Generate(ctx, genai.Request{
		System: SystemPrompt(t.Product),
		Prompt: prompt,
	})
	if err != nil {
		return Result[T]{}, fmt.Errorf("transforming %s %q: %w", kind, title, err)
	}

	out, err := decodeObject[T](text)
	if err != nil {
		t.logger().Warn("unparseable response, keeping original",
			zap.String("kind", string(kind)),
			zap.String("title", title),
			zap.String("response", text),
			zap.Error(err),
		)
		return Result[T]{Entry: original, Err: err}, nil
	}
	return Result[T]{Entry: out, Transformed: true}, nil
}

func (t *Transformer) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}
