package layout

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
)

// DOCXAnalyzer handles .docx files. Heading styles map to role
// hints; body tables are extracted cell by cell in document order.
type DOCXAnalyzer struct{}

func (a *DOCXAnalyzer) Analyze(r io.Reader, filename string) (*document.Layout, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "layout-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	b := &builder{}
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			text := docxParagraphText(it)
			if text == "" {
				continue
			}
			b.addParagraph(text, docxRole(it))
		case *docx.Table:
			b.addTable(extractDOCXTable(it))
		}
	}
	return &b.result, nil
}

// extractDOCXTable flattens a body table into indexed cells.
func extractDOCXTable(tbl *docx.Table) document.Table {
	var t document.Table
	for rowIdx, row := range tbl.TableRows {
		if row == nil {
			continue
		}
		col := 0
		for _, cell := range row.TableCells {
			if cell == nil {
				continue
			}
			var texts []string
			for _, para := range cell.Paragraphs {
				if text := docxParagraphText(para); text != "" {
					texts = append(texts, text)
				}
			}
			t.Cells = append(t.Cells, document.Cell{
				Row:     rowIdx,
				Col:     col,
				Content: CleanText(strings.Join(texts, " ")),
			})
			col++
		}
		if col > t.ColumnCount {
			t.ColumnCount = col
		}
	}
	return t
}

// docxRole maps a heading style to an analyzer role hint.
func docxRole(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	switch style {
	case "title":
		return "title"
	case "heading1":
		return "title"
	case "heading2", "heading3", "heading4", "heading5", "heading6":
		return "heading"
	}
	return ""
}

func docxParagraphText(para *docx.Paragraph) string {
	if para == nil {
		return ""
	}
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
