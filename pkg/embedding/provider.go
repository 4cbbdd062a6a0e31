// Package embedding implements the Embedding Gateway: a primary remote
// provider with bounded, jittered retries, falling back to a local provider
// on exhausted retries or missing configuration.
package embedding

import "context"

// Provider generates fixed-dimension embeddings for a batch of texts.
type Provider interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Identity is the embedder identity recorded with an artifact so the
// dimension can be validated at load time.
type Identity string

const (
	IdentityPrimary  Identity = "primary"
	IdentityFallback Identity = "fallback"
)
