// Package chunker performs sentence-aware, fixed-target token chunking with
// overlap, the unit of ranking and retrieval for tier >= 3 documents.
package chunker

import (
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"sdch/pkg/tokenizer"
)

// Config carries the target/overlap/max token sizes.
type Config struct {
	TargetTokens  int
	OverlapTokens int
	MaxTokens     int
}

// DefaultConfig mirrors the defaults named in the configuration table.
func DefaultConfig() Config {
	return Config{TargetTokens: 512, OverlapTokens: 64, MaxTokens: 768}
}

// Chunk is a contiguous, token-bounded, sentence-aligned fragment of
// canonical text, densely indexed starting at 0.
type Chunk struct {
	Index       int
	Text        string
	TokenCount  int
	SectionHint string
}

var sentenceTokenizer sentences.SentenceTokenizer

func init() {
	if t, err := english.NewSentenceTokenizer(nil); err == nil {
		sentenceTokenizer = t
	}
}

var sectionHeaderPattern = regexp.MustCompile(`^#{1,6}\s+\S|^[A-Z][A-Z0-9 \-:]{3,60}$`)

func isSectionHeader(s string) bool {
	return sectionHeaderPattern.MatchString(strings.TrimSpace(s))
}

type sentInfo struct {
	text   string
	tokens int
	header string
}

// segment splits text into sentences using a trained English sentence
// boundary detector. Every line break (so every paragraph break, page
// marker line and tabular row) is a forced boundary in addition to the
// detector's own splits.
func segment(text string) []string {
	blocks := strings.Split(text, "\n")

	var out []string
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if sentenceTokenizer == nil {
			out = append(out, block)
			continue
		}
		for _, s := range sentenceTokenizer.Tokenize(block) {
			txt := strings.TrimSpace(s.Text)
			if txt != "" {
				out = append(out, txt)
			}
		}
	}
	return out
}

func buildSentInfos(text string) ([]sentInfo, error) {
	raw := segment(text)
	infos := make([]sentInfo, 0, len(raw))

	currentHeader := ""
	for _, s := range raw {
		if isSectionHeader(s) {
			currentHeader = s
		}
		n, err := tokenizer.Count(s)
		if err != nil {
			return nil, err
		}
		infos = append(infos, sentInfo{text: s, tokens: n, header: currentHeader})
	}
	return infos, nil
}

// Split performs the greedy accumulate-then-overlap algorithm: sentences
// accumulate into the current chunk until the next sentence would exceed
// max tokens or the current size reaches target tokens; the next chunk
// begins with a sentence-aligned suffix of the previous chunk whose token
// count is >= overlap. A single oversize sentence is split on token
// boundaries and accepted alone.
func Split(text string, cfg Config) ([]Chunk, error) {
	infos, err := buildSentInfos(text)
	if err != nil {
		return nil, err
	}

	var chunks []Chunk
	idx := 0
	i := 0

	for i < len(infos) {
		start := i
		var current []sentInfo
		total := 0

		for i < len(infos) {
			s := infos[i]
			if len(current) > 0 && total+s.tokens > cfg.MaxTokens {
				break
			}
			current = append(current, s)
			total += s.tokens
			i++
			if total >= cfg.TargetTokens || total > cfg.MaxTokens {
				break
			}
		}

		if len(current) == 1 && current[0].tokens > cfg.MaxTokens {
			pieces, err := splitOversizeSentence(current[0].text, cfg.MaxTokens)
			if err != nil {
				return nil, err
			}
			for _, p := range pieces {
				n, err := tokenizer.Count(p)
				if err != nil {
					return nil, err
				}
				chunks = append(chunks, Chunk{Index: idx, Text: p, TokenCount: n, SectionHint: current[0].header})
				idx++
			}
			continue
		}

		chunkText := joinSentences(current)
		n, err := tokenizer.Count(chunkText)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, Chunk{Index: idx, Text: chunkText, TokenCount: n, SectionHint: current[0].header})
		idx++

		if i >= len(infos) {
			break
		}

		overlap := trailingOverlap(current, cfg.OverlapTokens)
		i -= len(overlap)
		if i <= start {
			// guarantee forward progress
			i = start + len(current)
		}
	}

	return chunks, nil
}

// trailingOverlap returns a suffix of current whose token count is >=
// overlapTokens, sentence-aligned, always leaving at least one sentence of
// current out of the overlap so the cursor always advances.
func trailingOverlap(current []sentInfo, overlapTokens int) []sentInfo {
	if overlapTokens <= 0 || len(current) <= 1 {
		return nil
	}
	sum := 0
	cut := len(current)
	for cut > 0 {
		cut--
		sum += current[cut].tokens
		if sum >= overlapTokens {
			break
		}
	}
	if cut == 0 {
		cut = 1
	}
	return current[cut:]
}

func splitOversizeSentence(text string, maxTokens int) ([]string, error) {
	var pieces []string
	remaining := text
	for {
		n, err := tokenizer.Count(remaining)
		if err != nil {
			return nil, err
		}
		if n <= maxTokens || remaining == "" {
			if remaining != "" {
				pieces = append(pieces, remaining)
			}
			break
		}
		prefix, err := tokenizer.Slice(remaining, maxTokens)
		if err != nil {
			return nil, err
		}
		if prefix == "" || len(prefix) >= len(remaining) {
			pieces = append(pieces, remaining)
			break
		}
		pieces = append(pieces, prefix)
		remaining = remaining[len(prefix):]
	}
	return pieces, nil
}

func joinSentences(infos []sentInfo) string {
	parts := make([]string, len(infos))
	for i, s := range infos {
		parts[i] = s.text
	}
	return strings.Join(parts, " ")
}
