package trimmer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"sdch/pkg/trimmer"
)

func TestTrimIsIdempotent(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString("Page 1 of 12\nActual unique content line.\n\n")
	}
	text := sb.String()

	once := trimmer.Trim(text)
	twice := trimmer.Trim(once)

	assert.Equal(t, once, twice)
}

func TestTrimRemovesRepeatedHeaderFooter(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 5; i++ {
		sb.WriteString("ACME Corp Confidential\nSome unique body line " + string(rune('a'+i)) + "\n\n")
	}
	trimmed := trimmer.Trim(sb.String())

	assert.False(t, strings.Contains(trimmed, "ACME Corp Confidential"))
}

func TestTrimDropsDuplicateAdjacentParagraphs(t *testing.T) {
	text := "Same paragraph text.\n\nSame paragraph text.\n\nDifferent paragraph."
	trimmed := trimmer.Trim(text)

	assert.Equal(t, 1, strings.Count(trimmed, "Same paragraph text."))
}

func TestTrimPreservesPageMarkers(t *testing.T) {
	text := "\n\n[Page 1]\nSome content here that is unique to the page."
	trimmed := trimmer.Trim(text)

	assert.True(t, strings.Contains(trimmed, "[Page 1]"))
}
