package loader

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
)

// loadText decodes plain text / Markdown: UTF-8 with BOM stripping, invalid
// bytes replaced with the Unicode replacement character, line endings
// normalized to \n.
func loadText(data []byte) (Result, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var sb strings.Builder
	sb.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
			data = data[1:]
			continue
		}
		sb.WriteRune(r)
		data = data[size:]
	}

	text := sb.String()
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return Result{Text: text}, nil
}
