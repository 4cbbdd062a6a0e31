package ranker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdch/pkg/chunker"
	"sdch/pkg/ranker"
)

func buildChunks() []chunker.Chunk {
	return []chunker.Chunk{
		{Index: 0, Text: "the history of aviation and early flight machines"},
		{Index: 1, Text: "the zeppelin migration pattern across northern europe"},
		{Index: 2, Text: "a chapter about unrelated agricultural topics"},
	}
}

func TestRankIsDeterministic(t *testing.T) {
	idx := ranker.BuildIndex(buildChunks())

	r1 := idx.Rank("zeppelin migration", ranker.DefaultParams())
	r2 := idx.Rank("zeppelin migration", ranker.DefaultParams())

	require.Equal(t, len(r1), len(r2))
	for i := range r1 {
		assert.Equal(t, r1[i].Index, r2[i].Index)
		assert.Equal(t, r1[i].Score, r2[i].Score)
	}
}

func TestRankFavorsMatchingChunk(t *testing.T) {
	idx := ranker.BuildIndex(buildChunks())
	results := idx.Rank("zeppelin migration", ranker.DefaultParams())

	require.NotEmpty(t, results)
	assert.Equal(t, 1, results[0].Index)
}

func TestRankTieBreakIsAscendingIndex(t *testing.T) {
	chunks := []chunker.Chunk{
		{Index: 0, Text: "nothing relevant here"},
		{Index: 1, Text: "also nothing relevant present"},
	}
	idx := ranker.BuildIndex(chunks)
	results := idx.Rank("zeppelin", ranker.DefaultParams())

	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 1, results[1].Index)
}
