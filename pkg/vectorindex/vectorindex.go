// Package vectorindex implements an exact flat cosine-similarity search
// over chunk embeddings. The component design calls for an exact scan, not
// an approximate structure, so the in-process kernel is a tight dot-product
// loop; only the on-disk/storage representation reuses pgvector's vector
// type, not its ANN machinery.
package vectorindex

import (
	"sort"

	"sdch/pkg/sdcherr"
)

// Index is a flat matrix of L2-normalized embeddings, one row per chunk.
type Index struct {
	Dimension int
	Vectors   [][]float32
}

// New builds an Index over the given vectors, all of which must share
// dimension.
func New(dimension int, vectors [][]float32) *Index {
	return &Index{Dimension: dimension, Vectors: vectors}
}

// Scored pairs a chunk index with its similarity score.
type Scored struct {
	Index int
	Score float32
}

// ValidateDimension reports an IndexDimensionMismatch if d does not match
// the index's recorded dimension. A mismatch is returned as an error,
// never a panic. The tier-4 assembler answers it by falling back to BM25
// ranking; it does not invalidate or rebuild the cached index.
func (idx *Index) ValidateDimension(d int) error {
	if d != idx.Dimension {
		return sdcherr.New(sdcherr.IndexDimensionMismatch, "embedding dimension mismatch", nil)
	}
	return nil
}

// TopK returns the top k vectors by dot-product similarity to query,
// descending, ties broken by ascending index. Vectors are expected to be
// L2-normalized so the dot product is equivalent to cosine similarity.
func (idx *Index) TopK(query []float32, k int) []Scored {
	results := make([]Scored, len(idx.Vectors))
	for i, v := range idx.Vectors {
		results[i] = Scored{Index: i, Score: dot(query, v)}
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return results[a].Index < results[b].Index
	})

	if k >= 0 && k < len(results) {
		results = results[:k]
	}
	return results
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
