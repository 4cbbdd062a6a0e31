// Package trimmer removes boilerplate and redundant whitespace from
// canonical text. Every operation here is conservative: content is only
// removed when it matches a known boilerplate shape, repeats at least
// three times, or duplicates the paragraph right before it, since unique
// content must never be silently dropped. Where the repeats of a line sit
// (page boundary or not) is not checked.
package trimmer

import (
	"regexp"
	"strings"
)

// repeatedLineThreshold is the minimum number of occurrences of an
// identical, non-trivial line before it is treated as a repeated
// header/footer and removed wherever it occurs.
const repeatedLineThreshold = 3

var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*table of contents\s*$`),
	regexp.MustCompile(`(?i)^\s*index\s*$`),
	regexp.MustCompile(`(?i)^\s*page\s+\d+\s+of\s+\d+\s*$`),
	regexp.MustCompile(`^\s*\d+\s*$`),
	regexp.MustCompile(`^\s*https?://\S+\s*$`),
	regexp.MustCompile(`^[-=_*]{5,}\s*$`),
	regexp.MustCompile(`(?i)^\s*copyright\b.*$`),
}

var pageMarkerPattern = regexp.MustCompile(`^\[Page \d+\]$`)

// Trim applies whitespace collapsing, boilerplate-line removal and
// adjacent-duplicate-paragraph removal. It is idempotent: Trim(Trim(x)) ==
// Trim(x), and it preserves paragraph boundaries and page markers.
func Trim(text string) string {
	lines := strings.Split(text, "\n")

	freq := make(map[string]int, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || pageMarkerPattern.MatchString(trimmed) {
			continue
		}
		freq[trimmed]++
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !pageMarkerPattern.MatchString(trimmed) {
			if matchesBoilerplate(trimmed) {
				continue
			}
			if freq[trimmed] >= repeatedLineThreshold {
				continue
			}
		}
		kept = append(kept, collapseWhitespace(line))
	}

	joined := collapseBlankRuns(strings.Join(kept, "\n"))
	return dropDuplicateAdjacentParagraphs(joined)
}

func matchesBoilerplate(line string) bool {
	for _, p := range boilerplatePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

var whitespaceRun = regexp.MustCompile(`[ \t]+`)

func collapseWhitespace(line string) string {
	return strings.TrimRight(whitespaceRun.ReplaceAllString(line, " "), " ")
}

var threeOrMoreNewlines = regexp.MustCompile(`\n{3,}`)

func collapseBlankRuns(text string) string {
	return threeOrMoreNewlines.ReplaceAllString(text, "\n\n")
}

func dropDuplicateAdjacentParagraphs(text string) string {
	paragraphs := strings.Split(text, "\n\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if len(out) > 0 {
			prev := strings.TrimSpace(out[len(out)-1])
			cur := strings.TrimSpace(p)
			if cur != "" && prev == cur {
				continue
			}
		}
		out = append(out, p)
	}
	return strings.Join(out, "\n\n")
}
