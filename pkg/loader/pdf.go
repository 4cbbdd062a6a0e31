package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"sdch/pkg/sdcherr"
)

// loadPDF extracts text page by page, inserting "\n\n[Page K]\n" markers
// between pages (K starting at 1). Empty pages still emit a marker.
func loadPDF(data []byte) (Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, sdcherr.New(sdcherr.DecodeError, "malformed PDF", err)
	}

	numPages := reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		fmt.Fprintf(&sb, "\n\n[Page %d]\n", i)

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}

	count := numPages
	return Result{Text: sb.String(), PageCount: &count}, nil
}
