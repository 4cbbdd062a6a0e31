package loader

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"sdch/pkg/sdcherr"
)

// loadDOCX concatenates body paragraphs in document order; for each table,
// rows are emitted as tab-separated lines followed by a blank line. The
// nguyenthenguyen/docx library handles the zip/XML container; the
// paragraph/table walk over its extracted document.xml body is ours, since
// the library only exposes raw XML content, not a structured reader.
func loadDOCX(data []byte) (Result, error) {
	tmp, err := os.CreateTemp("", "sdch-docx-*.docx")
	if err != nil {
		return Result{}, sdcherr.New(sdcherr.DecodeError, "cannot stage docx", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return Result{}, sdcherr.New(sdcherr.DecodeError, "cannot stage docx", err)
	}
	tmp.Close()

	r, err := docx.ReadDocxFile(tmp.Name())
	if err != nil {
		return Result{}, sdcherr.New(sdcherr.DecodeError, "malformed DOCX", err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	text, err := renderDocxBody(content)
	if err != nil {
		return Result{}, sdcherr.New(sdcherr.DecodeError, "malformed DOCX body", err)
	}

	return Result{Text: text}, nil
}

func renderDocxBody(xmlContent string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(xmlContent))

	var out strings.Builder
	var paragraph strings.Builder
	var cell strings.Builder
	var row []string
	inTable := false
	inCell := false

	flushParagraph := func() {
		text := strings.TrimSpace(paragraph.String())
		if text != "" {
			out.WriteString(text)
			out.WriteString("\n\n")
		}
		paragraph.Reset()
	}
	flushCell := func() {
		row = append(row, strings.TrimSpace(cell.String()))
		cell.Reset()
	}
	flushRow := func() {
		out.WriteString(strings.Join(row, "\t"))
		out.WriteString("\n")
		row = nil
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				inTable = true
			case "tr":
				row = nil
			case "tc":
				inCell = true
				cell.Reset()
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if !inTable {
					flushParagraph()
				}
			case "tc":
				inCell = false
				flushCell()
			case "tr":
				flushRow()
			case "tbl":
				inTable = false
				out.WriteString("\n")
			}
		case xml.CharData:
			switch {
			case inCell:
				cell.Write(t)
			case !inTable:
				paragraph.Write(t)
			}
		}
	}
	flushParagraph()

	return strings.TrimRight(out.String(), "\n") + "\n", nil
}
