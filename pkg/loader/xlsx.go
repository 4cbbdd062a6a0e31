package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"sdch/pkg/sdcherr"
)

// loadXLSX emits a "# Sheet: <name>" banner per sheet followed by CSV-like
// row serialization (tab-joined, matching the narrow-row rendering used by
// loadTabular).
func loadXLSX(data []byte) (Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Result{}, sdcherr.New(sdcherr.DecodeError, "malformed XLSX", err)
	}
	defer f.Close()

	var sb strings.Builder
	totalRows := 0

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "# Sheet: %s\n", sheet)
		for _, row := range rows {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		if len(rows) > 0 {
			totalRows += len(rows) - 1
		}
	}

	return Result{Text: sb.String(), RowCount: &totalRows}, nil
}
