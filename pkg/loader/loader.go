// Package loader decodes raw bytes plus a MIME/extension hint into the
// canonical UTF-8 text representation that the rest of the engine treats
// as the sole source of truth for token counting, chunking and embedding.
package loader

import (
	"path/filepath"
	"strings"

	"sdch/pkg/sdcherr"
)

// Result is the canonical text plus the optional structural hints the
// per-format loaders can recover.
type Result struct {
	Text      string
	PageCount *int
	RowCount  *int
}

// Format identifies one of the accepted extensions.
type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

var extensionFormats = map[string]Format{
	".txt":  FormatText,
	".md":   FormatText,
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".csv":  FormatCSV,
	".tsv":  FormatTSV,
	".xlsx": FormatXLSX,
}

var mimeFormats = map[string]Format{
	"text/plain":    FormatText,
	"text/markdown": FormatText,
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"text/csv": FormatCSV,
	"text/tab-separated-values": FormatTSV,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FormatXLSX,
}

// DetectFormat resolves a Format from a MIME hint and/or filename
// extension. MIME is tried first; the extension is the fallback.
func DetectFormat(filename, mimeHint string) (Format, error) {
	if f, ok := mimeFormats[strings.ToLower(mimeHint)]; ok {
		return f, nil
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}
	return "", sdcherr.New(sdcherr.UnsupportedFormat, "unrecognized MIME type and extension: "+mimeHint+" "+ext, nil)
}

// Load dispatches to the per-format loader and returns canonical text plus
// whatever structural hints that format can recover.
func Load(data []byte, filename, mimeHint string) (Result, error) {
	format, err := DetectFormat(filename, mimeHint)
	if err != nil {
		return Result{}, err
	}

	switch format {
	case FormatText:
		return loadText(data)
	case FormatPDF:
		return loadPDF(data)
	case FormatDOCX:
		return loadDOCX(data)
	case FormatCSV:
		return loadTabular(data, ',')
	case FormatTSV:
		return loadTabular(data, '\t')
	case FormatXLSX:
		return loadXLSX(data)
	default:
		return Result{}, sdcherr.New(sdcherr.UnsupportedFormat, "no loader registered for format "+string(format), nil)
	}
}
