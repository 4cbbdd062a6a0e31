// Package ranker implements Okapi BM25 scoring of chunks against a query.
// No third-party package in the retrieved example pack exposes this exact,
// parametrized, deterministic formula as a reusable component (the closest
// analog pushes lexical scoring into a database query), so it is hand-rolled
// here on the standard library.
package ranker

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"sdch/pkg/chunker"
)

// Params carries the saturation (k1) and length-normalization (b)
// parameters.
type Params struct {
	K1 float64
	B  float64
}

// DefaultParams mirrors the values named in the component design.
func DefaultParams() Params {
	return Params{K1: 1.5, B: 0.75}
}

// Scored pairs a chunk index with its BM25 score.
type Scored struct {
	Index int
	Score float64
}

var tokenPattern = regexp.MustCompile(`[^\p{L}\p{N}]+`)

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "to": {},
	"in": {}, "is": {}, "it": {}, "for": {}, "on": {}, "with": {}, "as": {},
	"this": {}, "that": {}, "be": {}, "are": {}, "was": {}, "were": {},
	"at": {}, "by": {}, "from": {},
}

func tokenize(text string) []string {
	lower := strings.ToLower(text)
	raw := tokenPattern.Split(lower, -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if t == "" {
			continue
		}
		if _, stop := stopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Index holds the term statistics for a fixed set of chunks: document
// frequency, average chunk length, and per-chunk term frequencies. It is
// not cached: the tier-3 assembler builds a fresh Index from the cached
// chunks on every query.
type Index struct {
	docFreq   map[string]int
	termFreq  []map[string]int
	docLen    []int
	avgDocLen float64
	n         int
}

// BuildIndex computes BM25 term statistics over the given chunks.
func BuildIndex(chunks []chunker.Chunk) *Index {
	idx := &Index{
		docFreq:  make(map[string]int),
		termFreq: make([]map[string]int, len(chunks)),
		docLen:   make([]int, len(chunks)),
		n:        len(chunks),
	}

	totalLen := 0
	for i, c := range chunks {
		terms := tokenize(c.Text)
		tf := make(map[string]int, len(terms))
		for _, t := range terms {
			tf[t]++
		}
		idx.termFreq[i] = tf
		idx.docLen[i] = len(terms)
		totalLen += len(terms)
		for t := range tf {
			idx.docFreq[t]++
		}
	}
	if idx.n > 0 {
		idx.avgDocLen = float64(totalLen) / float64(idx.n)
	}
	return idx
}

// Rank scores every chunk against query and returns results sorted by
// descending score, ties broken by ascending chunk index (stable,
// deterministic).
func (idx *Index) Rank(query string, params Params) []Scored {
	queryTerms := tokenize(query)

	results := make([]Scored, idx.n)
	for i := 0; i < idx.n; i++ {
		results[i] = Scored{Index: i, Score: idx.score(i, queryTerms, params)}
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return results[a].Index < results[b].Index
	})

	return results
}

func (idx *Index) score(docIdx int, queryTerms []string, params Params) float64 {
	if idx.n == 0 || idx.avgDocLen == 0 {
		return 0
	}
	tf := idx.termFreq[docIdx]
	docLen := float64(idx.docLen[docIdx])

	var score float64
	seen := make(map[string]struct{}, len(queryTerms))
	for _, t := range queryTerms {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}

		f := float64(tf[t])
		if f == 0 {
			continue
		}
		df := float64(idx.docFreq[t])
		idf := math.Log((float64(idx.n)-df+0.5)/(df+0.5) + 1)
		numerator := f * (params.K1 + 1)
		denominator := f + params.K1*(1-params.B+params.B*docLen/idx.avgDocLen)
		score += idf * numerator / denominator
	}
	return score
}
