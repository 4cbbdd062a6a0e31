package assembler

import (
	"context"
	"sort"
	"strings"

	"sdch/pkg/budget"
	"sdch/pkg/chunker"
	"sdch/pkg/ranker"
	"sdch/pkg/sdcherr"
	"sdch/pkg/tier"
	"sdch/pkg/tokenizer"
)

// chunkSeparator joins assembled chunks in reading order.
const chunkSeparator = "\n\n---\n\n"

// assembleTier3 ranks all chunks by BM25 against the query and greedily
// fills the document budget, then reassembles the accepted chunks in
// ascending original index (reading order).
func (a *Assembler) assembleTier3(ctx context.Context, doc Document, query string, topK int) (Result, error) {
	artifact, err := a.Builder.Build(ctx, doc)
	if err != nil {
		return Result{}, err
	}
	if ctx.Err() != nil {
		return Result{}, sdcherr.New(sdcherr.Cancelled, "query cancelled", ctx.Err())
	}

	index := ranker.BuildIndex(artifact.Chunks)
	scored := index.Rank(query, ranker.DefaultParams())

	bud := budget.Allocate(a.BudgetCfg, doc.TokenCount)
	assembled, used := greedyFill(artifact.Chunks, scored, bud.DocumentMax, topK)

	tokenCount, err := tokenizer.Count(assembled)
	if err != nil {
		return Result{}, sdcherr.New(sdcherr.TokenizerError, "failed to count assembled context", err)
	}

	return Result{
		Tier:             tier.Tier3,
		AssembledContext: assembled,
		TokenCount:       tokenCount,
		ChunksUsed:       used,
		StrategyNotes:    "Ranked chunks by lexical relevance (BM25) and filled greedily within budget.",
		Budget:           bud,
	}, nil
}

// greedyFill walks scored chunks by descending score, accepting each whose
// token count fits the remaining budget, skipping ones that don't, until
// topK chunks have been accepted. Accepted chunks are returned joined in
// ascending original index order.
func greedyFill(chunks []chunker.Chunk, scored []ranker.Scored, maxTokens, topK int) (string, []ChunkUsed) {
	byIndex := make(map[int]chunker.Chunk, len(chunks))
	for _, c := range chunks {
		byIndex[c.Index] = c
	}

	var accepted []ChunkUsed
	running := 0
	for _, s := range scored {
		if len(accepted) >= topK {
			break
		}
		c, ok := byIndex[s.Index]
		if !ok {
			continue
		}
		if running+c.TokenCount > maxTokens {
			continue
		}
		running += c.TokenCount
		accepted = append(accepted, ChunkUsed{Index: c.Index, Tokens: c.TokenCount, Score: s.Score})
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Index < accepted[j].Index })

	parts := make([]string, len(accepted))
	for i, u := range accepted {
		parts[i] = byIndex[u.Index].Text
	}

	return strings.Join(parts, chunkSeparator), accepted
}
