// Package layout extracts an ordered paragraph stream and raw tables
// from document bytes. It plays the role of the layout analyzer the
// chunking pipeline consumes: paragraphs carry a role hint and a
// position, tables carry per-cell row/column indices, a column count
// and a page number where the format provides one.
package layout

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
)

// Analyzer converts raw document bytes into a layout result.
type Analyzer interface {
	Analyze(r io.Reader, filename string) (*document.Layout, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate analyzer for a filename.
func ForFile(filename string) (Analyzer, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextAnalyzer{}, nil
	case ".md", ".markdown":
		return &MarkdownAnalyzer{}, nil
	case ".csv":
		return &CSVAnalyzer{}, nil
	case ".html", ".htm":
		return &HTMLAnalyzer{}, nil
	case ".pdf":
		return &PDFAnalyzer{}, nil
	case ".docx":
		return &DOCXAnalyzer{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// builder accumulates paragraphs with sequential positions.
type builder struct {
	result document.Layout
}

func (b *builder) addParagraph(content, role string) {
	content = CleanText(content)
	if content == "" {
		return
	}
	b.result.Paragraphs = append(b.result.Paragraphs, document.Paragraph{
		Content:  content,
		Role:     role,
		Position: len(b.result.Paragraphs),
	})
}

func (b *builder) addTable(t document.Table) {
	if len(t.Cells) == 0 {
		return
	}
	b.result.Tables = append(b.result.Tables, t)
}

// IsEmpty reports whether analysis found no usable content.
func IsEmpty(lay *document.Layout) bool {
	return lay == nil || (len(lay.Paragraphs) == 0 && len(lay.Tables) == 0)
}
