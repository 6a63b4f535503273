package llm

import (
	"context"
	"fmt"

	"github.com/mikey/cafe-hours/internal/core"
	"golang.org/x/time/rate"
)

// ThrottledNormalizer limits how often the wrapped normalizer is called
type ThrottledNormalizer struct {
	next    core.HoursNormalizer
	limiter *rate.Limiter
}

// NewThrottledNormalizer allows perSecond calls per second with the given burst
func NewThrottledNormalizer(next core.HoursNormalizer, perSecond float64, burst int) *ThrottledNormalizer {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &ThrottledNormalizer{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// NormalizeHours waits for a token, then delegates
func (t *ThrottledNormalizer) NormalizeHours(ctx context.Context, text string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("normalizer rate limit: %w", err)
	}
	return t.next.NormalizeHours(ctx, text)
}

// Close closes the wrapped normalizer when it holds resources
func (t *ThrottledNormalizer) Close() error {
	if closer, ok := t.next.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
