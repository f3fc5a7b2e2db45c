package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
	"golang.org/x/net/html"
)

// HTMLAnalyzer handles HTML files. Heading tags become role-hinted
// paragraphs, content blocks become body paragraphs, and <table>
// elements are extracted cell by cell.
type HTMLAnalyzer struct{}

func (a *HTMLAnalyzer) Analyze(r io.Reader, filename string) (*document.Layout, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	b := &builder{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				role := "heading"
				if level == 1 {
					role = "title"
				}
				b.addParagraph(textContent(n), role)
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "table":
				b.addTable(extractHTMLTable(n))
				return
			case "p", "li", "blockquote":
				b.addParagraph(textContent(n), "")
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return &b.result, nil
}

// extractHTMLTable flattens a <table> into indexed cells. Column
// count is taken from the widest row.
func extractHTMLTable(table *html.Node) document.Table {
	var t document.Table
	row := 0

	var findRows func(*html.Node)
	findRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			col := 0
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					t.Cells = append(t.Cells, document.Cell{
						Row:     row,
						Col:     col,
						Content: CleanText(textContent(c)),
					})
					col++
				}
			}
			if col > t.ColumnCount {
				t.ColumnCount = col
			}
			if col > 0 {
				row++
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findRows(c)
		}
	}
	findRows(table)
	return t
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
