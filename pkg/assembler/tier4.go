package assembler

import (
	"context"

	"sdch/pkg/budget"
	"sdch/pkg/ranker"
	"sdch/pkg/sdcherr"
	"sdch/pkg/tier"
	"sdch/pkg/tokenizer"
	"sdch/pkg/vectorindex"
)

// assembleTier4 embeds the query with the same embedder used at build
// time, computes the top 3*topK candidates by cosine similarity, then
// applies the tier-3 greedy fill among those candidates. Any failure to
// use embeddings — none recorded on the artifact, the embedder no longer
// configured, the query embedding call failing, or a dimension mismatch —
// silently falls back to tier-3 BM25 behavior with an annotated note.
func (a *Assembler) assembleTier4(ctx context.Context, doc Document, query string, topK int) (Result, error) {
	artifact, err := a.Builder.Build(ctx, doc)
	if err != nil {
		return Result{}, err
	}
	if ctx.Err() != nil {
		return Result{}, sdcherr.New(sdcherr.Cancelled, "query cancelled", ctx.Err())
	}

	if artifact.Embedder == "" || a.Builder.Gateway == nil {
		return a.fallBackToTier3(ctx, doc, query, topK, "Embeddings unavailable at build time")
	}

	queryVectors, err := a.Builder.Gateway.EmbedWith(ctx, artifact.Embedder, []string{query})
	if err != nil || len(queryVectors) == 0 {
		return a.fallBackToTier3(ctx, doc, query, topK, "Query embedding failed")
	}

	idx := vectorindex.New(artifact.Dimension, artifact.Embeddings)
	if err := idx.ValidateDimension(len(queryVectors[0])); err != nil {
		return a.fallBackToTier3(ctx, doc, query, topK, "Embedder dimension mismatch")
	}

	candidateK := 3 * topK
	candidates := idx.TopK(queryVectors[0], candidateK)

	scored := make([]ranker.Scored, len(candidates))
	for i, c := range candidates {
		scored[i] = ranker.Scored{Index: c.Index, Score: float64(c.Score)}
	}

	bud := budget.Allocate(a.BudgetCfg, doc.TokenCount)
	assembled, used := greedyFill(artifact.Chunks, scored, bud.DocumentMax, topK)

	tokenCount, err := tokenizer.Count(assembled)
	if err != nil {
		return Result{}, sdcherr.New(sdcherr.TokenizerError, "failed to count assembled context", err)
	}

	return Result{
		Tier:             tier.Tier4,
		AssembledContext: assembled,
		TokenCount:       tokenCount,
		ChunksUsed:       used,
		StrategyNotes:    "Ranked top candidates by embedding similarity and filled greedily within budget.",
		Budget:           bud,
	}, nil
}

func (a *Assembler) fallBackToTier3(ctx context.Context, doc Document, query string, topK int, reason string) (Result, error) {
	result, err := a.assembleTier3(ctx, doc, query, topK)
	if err != nil {
		return Result{}, err
	}
	result.Tier = tier.Tier4
	result.StrategyNotes = reason + "; fell back to lexical ranking. " + result.StrategyNotes
	return result, nil
}
