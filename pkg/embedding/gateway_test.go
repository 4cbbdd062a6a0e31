package embedding_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdch/pkg/embedding"
)

type stubProvider struct {
	name string
	dim  int
	fn   func(ctx context.Context, texts []string) ([][]float32, error)
}

func (s *stubProvider) Name() string   { return s.name }
func (s *stubProvider) Dimension() int { return s.dim }
func (s *stubProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return s.fn(ctx, texts)
}

func TestGatewayUsesPrimaryOnSuccess(t *testing.T) {
	primary := &stubProvider{name: "primary", dim: 1536, fn: func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil
	}}
	fallback := &stubProvider{name: "fallback", dim: 384, fn: func(ctx context.Context, texts []string) ([][]float32, error) {
		t.Fatal("fallback should not be called")
		return nil, nil
	}}

	gw := &embedding.Gateway{Primary: primary, Fallback: fallback}
	out, err := gw.Embed(context.Background(), []string{"hello"})

	require.NoError(t, err)
	assert.Equal(t, embedding.IdentityPrimary, out.Embedder)
	assert.Equal(t, 1536, out.Dimension)
}

func TestGatewayFallsBackOnPrimaryFailure(t *testing.T) {
	primary := &stubProvider{name: "primary", dim: 1536, fn: func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("boom")
	}}
	fallback := &stubProvider{name: "fallback", dim: 384, fn: func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{0, 1}}, nil
	}}

	gw := &embedding.Gateway{Primary: primary, Fallback: fallback}
	out, err := gw.Embed(context.Background(), []string{"hello"})

	require.NoError(t, err)
	assert.Equal(t, embedding.IdentityFallback, out.Embedder)
	assert.Equal(t, 384, out.Dimension)
}

func TestGatewayUnavailableWhenBothFail(t *testing.T) {
	primary := &stubProvider{name: "primary", dim: 1536, fn: func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("boom")
	}}
	fallback := &stubProvider{name: "fallback", dim: 384, fn: func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("also boom")
	}}

	gw := &embedding.Gateway{Primary: primary, Fallback: fallback}
	_, err := gw.Embed(context.Background(), []string{"hello"})

	require.Error(t, err)
}
