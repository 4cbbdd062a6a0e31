package indexcache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdch/internal/pkg/logger"
	"sdch/pkg/chunker"
	"sdch/pkg/embedding"
	"sdch/pkg/indexcache"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }
func (noopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (noopLogger) GetLogById(string) (*logger.LogEntry, error) { return nil, nil }

func sampleArtifact() indexcache.Artifact {
	return indexcache.Artifact{
		Chunks: []chunker.Chunk{
			{Index: 0, Text: "first chunk", TokenCount: 2, SectionHint: "Intro"},
			{Index: 1, Text: "second chunk", TokenCount: 2, SectionHint: ""},
		},
		Embedder:   embedding.IdentityFallback,
		Dimension:  3,
		Embeddings: [][]float32{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}},
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	original := sampleArtifact()

	blob, err := indexcache.Serialize(original)
	require.NoError(t, err)

	restored, err := indexcache.Deserialize(blob)
	require.NoError(t, err)

	assert.Equal(t, original.Embedder, restored.Embedder)
	assert.Equal(t, original.Dimension, restored.Dimension)
	require.Len(t, restored.Chunks, 2)
	assert.Equal(t, original.Chunks[0].Text, restored.Chunks[0].Text)
	assert.Equal(t, original.Chunks[1].SectionHint, restored.Chunks[1].SectionHint)
	require.Len(t, restored.Embeddings, 2)
	assert.InDeltaSlice(t, original.Embeddings[0], restored.Embeddings[0], 1e-6)
}

func TestDeserializeRejectsBadMagic(t *testing.T) {
	_, err := indexcache.Deserialize([]byte("not an artifact"))
	require.Error(t, err)
}

func TestDeserializeNoEmbeddingsWhenEmbedderEmpty(t *testing.T) {
	artifact := sampleArtifact()
	artifact.Embedder = ""
	artifact.Embeddings = nil

	blob, err := indexcache.Serialize(artifact)
	require.NoError(t, err)

	restored, err := indexcache.Deserialize(blob)
	require.NoError(t, err)
	assert.Empty(t, restored.Embedder)
	assert.Nil(t, restored.Embeddings)
}

func TestCacheL1RoundTrip(t *testing.T) {
	c := indexcache.New(nil, noopLogger{})
	ctx := context.Background()
	artifact := sampleArtifact()

	c.Put(ctx, "doc-1", artifact)

	got, found := c.Get(ctx, "doc-1")
	require.True(t, found)
	assert.Equal(t, artifact.Dimension, got.Dimension)
	assert.Len(t, got.Chunks, 2)
}

func TestCacheMissWhenAbsent(t *testing.T) {
	c := indexcache.New(nil, noopLogger{})
	_, found := c.Get(context.Background(), "unknown-doc")
	assert.False(t, found)
}

func TestCacheInvalidateClearsL1(t *testing.T) {
	c := indexcache.New(nil, noopLogger{})
	ctx := context.Background()
	c.Put(ctx, "doc-2", sampleArtifact())

	c.Invalidate(ctx, "doc-2")

	_, found := c.Get(ctx, "doc-2")
	assert.False(t, found)
}
