package embedding

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"sdch/pkg/sdcherr"
)

// Gateway calls the primary provider with bounded retries, falling back to
// the local provider on exhausted retries or missing configuration.
// Primary may be nil when no credential is configured.
type Gateway struct {
	Primary  Provider
	Fallback Provider
}

// Outcome records which embedder actually produced the vectors, so the
// dimension and identity can be recorded on the artifact for validation at
// query time.
type Outcome struct {
	Vectors   [][]float32
	Embedder  Identity
	Dimension int
}

// perAttemptTimeout bounds a single provider call; the component design
// names 30s as the default embedder call timeout.
const perAttemptTimeout = 30 * time.Second

// Embed attempts the primary provider up to 3 times, exponential backoff
// starting at 200ms, jittered. On exhausted retries, or when no primary is
// configured, it falls back to the local embedder. If both fail, it returns
// EmbedderUnavailable.
func (g *Gateway) Embed(ctx context.Context, texts []string) (Outcome, error) {
	if g.Primary != nil {
		vectors, err := g.callWithRetry(ctx, g.Primary, texts)
		if err == nil {
			return Outcome{Vectors: vectors, Embedder: IdentityPrimary, Dimension: g.Primary.Dimension()}, nil
		}
	}

	if g.Fallback == nil {
		return Outcome{}, sdcherr.New(sdcherr.EmbedderUnavailable, "no embedder available", nil)
	}

	vectors, err := g.callWithRetry(ctx, g.Fallback, texts)
	if err != nil {
		return Outcome{}, sdcherr.New(sdcherr.EmbedderUnavailable, "primary and fallback embedders both failed", err)
	}
	return Outcome{Vectors: vectors, Embedder: IdentityFallback, Dimension: g.Fallback.Dimension()}, nil
}

// EmbedWith embeds texts with the specific provider identified by identity,
// without any fallback. Used at query time to re-embed a query with the
// same embedder that produced a cached artifact, so dimensions match.
func (g *Gateway) EmbedWith(ctx context.Context, identity Identity, texts []string) ([][]float32, error) {
	var p Provider
	switch identity {
	case IdentityPrimary:
		p = g.Primary
	case IdentityFallback:
		p = g.Fallback
	}
	if p == nil {
		return nil, sdcherr.New(sdcherr.EmbedderUnavailable, "embedder used at build time is no longer configured", nil)
	}
	return g.callWithRetry(ctx, p, texts)
}

func (g *Gateway) callWithRetry(ctx context.Context, p Provider, texts []string) ([][]float32, error) {
	operation := func() ([][]float32, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, perAttemptTimeout)
		defer cancel()

		vectors, err := p.Embed(attemptCtx, texts)
		if err == nil {
			return vectors, nil
		}
		if !isRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond

	return backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(3))
}

func isRetryable(err error) bool {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return isRetryableStatus(statusErr.StatusCode)
	}
	// network errors (no typed status) are treated as transient and retried
	return true
}
