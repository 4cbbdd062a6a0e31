package assembler

import (
	"sdch/pkg/budget"
	"sdch/pkg/tier"
)

// assembleTier1 emits the canonical text verbatim; the document
// allocation equals the document token count and no chunks are used.
func (a *Assembler) assembleTier1(doc Document) (Result, error) {
	bud := budget.Allocate(a.BudgetCfg, doc.TokenCount)
	return Result{
		Tier:             tier.Tier1,
		AssembledContext: doc.CanonicalText,
		TokenCount:       doc.TokenCount,
		ChunksUsed:       []ChunkUsed{},
		StrategyNotes:    "Full document injected directly.",
		Budget:           bud,
	}, nil
}
