package assembler

import (
	"context"

	"sdch/pkg/budget"
	"sdch/pkg/sdcherr"
	"sdch/pkg/tier"
	"sdch/pkg/tokenizer"
	"sdch/pkg/trimmer"
)

// assembleTier2 trims boilerplate first. If the trimmed text now fits
// within the tier-1 threshold, or merely within the document budget, it is
// injected directly. Only when trimming still leaves the text over budget
// does assembly fall back to tier-3 chunked ranking over the trimmed text.
func (a *Assembler) assembleTier2(ctx context.Context, doc Document, query string, topK int) (Result, error) {
	trimmed := trimmer.Trim(doc.CanonicalText)

	trimmedTokens, err := tokenizer.Count(trimmed)
	if err != nil {
		return Result{}, sdcherr.New(sdcherr.TokenizerError, "failed to count trimmed tokens", err)
	}

	bud := budget.Allocate(a.BudgetCfg, trimmedTokens)

	if trimmedTokens <= a.Thresholds.Tau1 {
		return Result{
			Tier:             tier.Tier2,
			AssembledContext: trimmed,
			TokenCount:       trimmedTokens,
			ChunksUsed:       []ChunkUsed{},
			StrategyNotes:    "Boilerplate trimmed; result now fits within the tier-1 budget.",
			Budget:           bud,
		}, nil
	}

	if trimmedTokens <= bud.DocumentMax {
		return Result{
			Tier:             tier.Tier2,
			AssembledContext: trimmed,
			TokenCount:       trimmedTokens,
			ChunksUsed:       []ChunkUsed{},
			StrategyNotes:    "Boilerplate trimmed.",
			Budget:           bud,
		}, nil
	}

	fallbackDoc := doc
	fallbackDoc.CanonicalText = trimmed
	fallbackDoc.TokenCount = trimmedTokens

	result, err := a.assembleTier3(ctx, fallbackDoc, query, topK)
	if err != nil {
		return Result{}, err
	}
	result.Tier = tier.Tier2
	result.StrategyNotes = "Boilerplate trimmed; still exceeds the document budget, falling back to chunked ranking. " + result.StrategyNotes
	return result, nil
}
