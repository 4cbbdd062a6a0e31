// Package assembler is the top-level dispatcher: given a document record
// and a user query, it produces an assembled, budget-bounded context plus
// a trace of how it got there. Each tier's strategy is a plain function
// over (Document, query, budget); the Assembler itself holds no
// tier-specific logic, only the dispatch switch and shared dependencies.
package assembler

import (
	"context"
	"time"

	"sdch/pkg/budget"
	"sdch/pkg/sdcherr"
	"sdch/pkg/tier"
)

// defaultTopK matches the top_k default named in the external interface.
const defaultTopK = 10

// defaultTotalBudget bounds total assembler latency.
const defaultTotalBudget = 120 * time.Second

// Document is the minimal view of a stored document the assembler needs;
// callers adapt their persistence model into this shape.
type Document struct {
	ID            string
	CanonicalText string
	TokenCount    int
	Tier          tier.Tier
}

// ChunkUsed records one chunk contributed to the assembled context, in
// the order it was assembled.
type ChunkUsed struct {
	Index int     `json:"index"`
	Tokens int    `json:"tokens"`
	Score float64 `json:"score"`
}

// Result is the Context Assembler's output: the assembled text, its token
// count, the chunks used (empty for tier 1), a human-readable trace, and
// the resolved budget.
type Result struct {
	Tier             tier.Tier     `json:"tier"`
	AssembledContext string        `json:"assembled_context"`
	TokenCount       int           `json:"token_count"`
	ChunksUsed       []ChunkUsed   `json:"chunks_used"`
	StrategyNotes    string        `json:"strategy_notes"`
	Budget           budget.Budget `json:"budget"`
}

// Assembler holds the shared build coordinator, budget configuration, and
// tier thresholds used by every strategy.
type Assembler struct {
	Builder    *Builder
	BudgetCfg  budget.Config
	Thresholds tier.Thresholds
}

// New builds an Assembler over the given build coordinator, budget
// configuration, and tier thresholds.
func New(builder *Builder, budgetCfg budget.Config, thresholds tier.Thresholds) *Assembler {
	return &Assembler{Builder: builder, BudgetCfg: budgetCfg, Thresholds: thresholds}
}

// Assemble dispatches to the strategy for doc.Tier. topK <= 0 uses the
// default of 10. The returned context's cancellation is checked at each
// tier's suspension points; a cancelled query never mutates the document,
// cache, or store.
func (a *Assembler) Assemble(ctx context.Context, doc Document, query string, topK int) (Result, error) {
	if query == "" {
		return Result{}, sdcherr.New(sdcherr.EmptyQuery, "query must not be empty", nil)
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTotalBudget)
	defer cancel()

	switch doc.Tier {
	case tier.Tier1:
		return a.assembleTier1(doc)
	case tier.Tier2:
		return a.assembleTier2(ctx, doc, query, topK)
	case tier.Tier3:
		return a.assembleTier3(ctx, doc, query, topK)
	case tier.Tier4:
		return a.assembleTier4(ctx, doc, query, topK)
	default:
		return Result{}, sdcherr.New(sdcherr.StoreError, "document has no recognized tier", nil)
	}
}
