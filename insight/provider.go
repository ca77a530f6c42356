package insight

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/youtube-tracker/errs"
	"github.com/researchaccelerator-hub/youtube-tracker/telemetry"
)

// Provider generates a narrative from a sample. Implementations must return
// a provider-kinded error on failure or empty content.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, sample []SampleRow, days int) (string, error)
}

// Result is a generated narrative plus which provider produced it and how
// many providers failed before it.
type Result struct {
	Text      string `json:"text"`
	Provider  string `json:"provider"`
	Fallbacks int    `json:"fallbacks"`
}

// Chain tries providers in order, bounding each call by the configured
// timeout. The last error surfaces when every provider fails.
type Chain struct {
	providers []Provider
	timeout   time.Duration
}

// NewChain returns a chain over the given providers. A zero timeout
// defaults to 90 seconds.
func NewChain(timeout time.Duration, providers ...Provider) *Chain {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Chain{providers: providers, timeout: timeout}
}

// Summarize runs the provider chain.
func (c *Chain) Summarize(ctx context.Context, sample []SampleRow, days int) (*Result, error) {
	if len(c.providers) == 0 {
		return nil, errs.Configf("no narrative providers configured")
	}

	var lastErr error
	for i, p := range c.providers {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		text, err := p.Summarize(callCtx, sample, days)
		cancel()

		if err != nil {
			log.Warn().Err(err).Str("provider", p.Name()).Msg("Narrative provider failed")
			lastErr = err
			continue
		}

		if i > 0 {
			telemetry.InsightFallbacks.Inc()
		}
		return &Result{Text: text, Provider: p.Name(), Fallbacks: i}, nil
	}

	return nil, lastErr
}
