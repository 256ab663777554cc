package genai

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limited spaces calls to the wrapped Generator. It only waits; it never
// retries a call.
type Limited struct {
	next    Generator
	limiter *rate.Limiter
}

// NewLimited allows perMinute calls per minute with a burst of one.
func NewLimited(next Generator, perMinute int) *Limited {
	return &Limited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (l *Limited) Generate(ctx context.Context, req Request) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}
	return l.next.Generate(ctx, req)
}
