package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"sdch/pkg/sdcherr"
)

// narrowColumnThreshold is the column count at or below which a data row is
// rendered as a single tab-joined line rather than column:value pairs.
const narrowColumnThreshold = 4

// loadTabular parses headers, then emits a header row followed by each data
// row as a human-readable line: column:value pairs when the row is wide,
// or a single tab-joined line when the row is narrow.
func loadTabular(data []byte, delimiter rune) (Result, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return Result{}, sdcherr.New(sdcherr.DecodeError, "malformed delimited file", err)
	}
	if len(rows) == 0 {
		count := 0
		return Result{Text: "", RowCount: &count}, nil
	}

	header := rows[0]
	dataRows := rows[1:]
	narrow := len(header) <= narrowColumnThreshold

	var sb strings.Builder
	sb.WriteString(strings.Join(header, "\t"))
	sb.WriteString("\n")

	for _, row := range dataRows {
		if narrow {
			sb.WriteString(strings.Join(padRow(row, len(header)), "\t"))
			sb.WriteString("\n")
			continue
		}
		wrote := false
		for i, col := range header {
			var val string
			if i < len(row) {
				val = row[i]
			}
			if val == "" {
				continue
			}
			fmt.Fprintf(&sb, "%s: %s\n", col, val)
			wrote = true
		}
		if wrote {
			sb.WriteString("\n")
		}
	}

	count := len(dataRows)
	return Result{Text: sb.String(), RowCount: &count}, nil
}

func padRow(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
