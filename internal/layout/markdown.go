package layout

import (
	"bytes"
	"io"
	"strings"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownAnalyzer handles Markdown files using goldmark. Headings
// become role-hinted paragraphs (level 1 maps to "title"), pipe tables
// become indexed cell tables, and all other blocks become body
// paragraphs in document order.
type MarkdownAnalyzer struct{}

func (a *MarkdownAnalyzer) Analyze(r io.Reader, filename string) (*document.Layout, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	b := &builder{}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			role := "heading"
			if node.Level == 1 {
				role = "title"
			}
			b.addParagraph(extractText(node, src), role)
		case *east.Table:
			b.addTable(extractMarkdownTable(node, src))
		default:
			b.addParagraph(extractText(n, src), "")
		}
	}
	return &b.result, nil
}

// extractMarkdownTable flattens a pipe table into indexed cells. The
// header row is row 0, matching the other analyzers.
func extractMarkdownTable(table *east.Table, src []byte) document.Table {
	var t document.Table
	row := 0
	for n := table.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.(type) {
		case *east.TableHeader, *east.TableRow:
			col := 0
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if _, ok := c.(*east.TableCell); !ok {
					continue
				}
				t.Cells = append(t.Cells, document.Cell{
					Row:     row,
					Col:     col,
					Content: CleanText(extractText(c, src)),
				})
				col++
			}
			if col > t.ColumnCount {
				t.ColumnCount = col
			}
			if col > 0 {
				row++
			}
		}
	}
	return t
}

// extractText gets the text content of a goldmark AST node. Inline
// children and block lines cover the same source bytes, so only one of
// the two is read.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.FirstChild() == nil {
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(src))
			}
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
