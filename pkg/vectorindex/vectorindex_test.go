package vectorindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sdch/pkg/vectorindex"
)

func TestTopKOrdersByDescendingScore(t *testing.T) {
	idx := vectorindex.New(2, [][]float32{
		{1, 0},
		{0, 1},
		{0.9, 0.1},
	})

	results := idx.TopK([]float32{1, 0}, 2)
	assert.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 2, results[1].Index)
}

func TestScoresWithinUnitRange(t *testing.T) {
	idx := vectorindex.New(2, [][]float32{{1, 0}, {-1, 0}, {0, 1}})
	results := idx.TopK([]float32{1, 0}, 3)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, float32(-1))
		assert.LessOrEqual(t, r.Score, float32(1))
	}
}

func TestValidateDimensionMismatch(t *testing.T) {
	idx := vectorindex.New(1536, nil)
	err := idx.ValidateDimension(384)
	assert.Error(t, err)
}
