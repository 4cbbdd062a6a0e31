package assembler_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdch/internal/pkg/logger"
	"sdch/pkg/assembler"
	"sdch/pkg/budget"
	"sdch/pkg/embedding"
	"sdch/pkg/indexcache"
	"sdch/pkg/tier"
	"sdch/pkg/tokenizer"
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

func newAssembler() *assembler.Assembler {
	cache := indexcache.New(nil, noopLogger{})
	builder := assembler.NewBuilder(cache, nil)
	return assembler.New(builder, budget.DefaultConfig(), tier.DefaultThresholds())
}

func TestTier1RoundTrip(t *testing.T) {
	a := newAssembler()
	text := "Hello world. This is a test."
	tokens, err := tokenizer.Count(text)
	require.NoError(t, err)

	doc := assembler.Document{ID: "doc-1", CanonicalText: text, TokenCount: tokens, Tier: tier.Tier1}
	result, err := a.Assemble(context.Background(), doc, "test", 0)

	require.NoError(t, err)
	assert.Equal(t, text, result.AssembledContext)
	assert.Empty(t, result.ChunksUsed)
	assert.Equal(t, tier.Tier1, result.Tier)
}

func TestEmptyQueryRejected(t *testing.T) {
	a := newAssembler()
	doc := assembler.Document{ID: "doc-2", CanonicalText: "hello", TokenCount: 1, Tier: tier.Tier1}
	_, err := a.Assemble(context.Background(), doc, "", 0)
	require.Error(t, err)
}

func buildChapters(n int, wordsPerChapter int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString("Chapter heading line.\n\n")
		for w := 0; w < wordsPerChapter; w++ {
			sb.WriteString("filler ")
		}
		if i == 36 {
			sb.WriteString("zeppelin migration pattern discussion follows here. ")
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func TestTier3RanksAndOrdersChunks(t *testing.T) {
	a := newAssembler()
	text := buildChapters(10, 200)
	tokens, err := tokenizer.Count(text)
	require.NoError(t, err)

	doc := assembler.Document{ID: "doc-3", CanonicalText: text, TokenCount: tokens, Tier: tier.Tier3}
	result, err := a.Assemble(context.Background(), doc, "zeppelin migration", 5)

	require.NoError(t, err)
	require.NotEmpty(t, result.ChunksUsed)
	assert.LessOrEqual(t, result.TokenCount, result.Budget.DocumentAllocated+1)

	for i := 1; i < len(result.ChunksUsed); i++ {
		assert.Less(t, result.ChunksUsed[i-1].Index, result.ChunksUsed[i].Index)
	}
}

func TestTier4FallsBackWithoutEmbedder(t *testing.T) {
	a := newAssembler()
	text := buildChapters(10, 200)
	tokens, err := tokenizer.Count(text)
	require.NoError(t, err)

	doc := assembler.Document{ID: "doc-4", CanonicalText: text, TokenCount: tokens, Tier: tier.Tier4}
	result, err := a.Assemble(context.Background(), doc, "zeppelin migration", 5)

	require.NoError(t, err)
	assert.Equal(t, tier.Tier4, result.Tier)
	assert.Contains(t, result.StrategyNotes, "fell back")
}

func TestTier2FallsBackToTier3WhenStillOverBudget(t *testing.T) {
	// A 1,000-token window with no reservations makes the document budget
	// 1,000 tokens and tau1 is lowered to 100. Five repeated lines are
	// stripped by the trimmer as repeated boilerplate; the 200 unique
	// section lines survive, so the trimmed text still exceeds both tau1
	// and the document budget and assembly falls back to chunked ranking.
	cache := indexcache.New(nil, noopLogger{})
	builder := assembler.NewBuilder(cache, nil)
	thresholds := tier.Thresholds{Tau1: 100, Tau2: 5_000, Tau3: 10_000}
	a := assembler.New(builder, budget.Config{TotalWindow: 1_000}, thresholds)

	var sb strings.Builder
	for i := 0; i < 5; i++ {
		sb.WriteString("Confidential - Internal Use Only\n")
	}
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, "Section %d covers topic number %d in some detail.\n\n", i, i)
	}
	text := sb.String()

	tokens, err := tokenizer.Count(text)
	require.NoError(t, err)
	require.Greater(t, tokens, 1_000)

	doc := assembler.Document{ID: "doc-5", CanonicalText: text, TokenCount: tokens, Tier: tier.Tier2}
	result, err := a.Assemble(context.Background(), doc, "topic number 150", 5)

	require.NoError(t, err)
	assert.Equal(t, tier.Tier2, result.Tier)
	assert.Contains(t, result.StrategyNotes, "falling back to chunked ranking")
	assert.NotEmpty(t, result.ChunksUsed)
}

func TestGatewayEmbedWithUnknownIdentityFails(t *testing.T) {
	gw := &embedding.Gateway{}
	_, err := gw.EmbedWith(context.Background(), embedding.IdentityPrimary, []string{"q"})
	require.Error(t, err)
}
