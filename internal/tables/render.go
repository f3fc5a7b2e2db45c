package tables

import (
	"sort"
	"strings"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/token"
)

// Rendered is a table flattened to pipe-separated text, ready for
// chunking. Line 0 of Content is the header row.
type Rendered struct {
	Content  string
	Headers  []string
	ID       int
	Tokens   int
	RowCount int
}

// Render flattens a table into row lines. Returns false when the
// table has no cells.
func Render(t *document.Table, id int) (Rendered, bool) {
	if len(t.Cells) == 0 {
		return Rendered{}, false
	}

	rows := map[int]map[int]string{}
	for _, c := range t.Cells {
		if rows[c.Row] == nil {
			rows[c.Row] = map[int]string{}
		}
		rows[c.Row][c.Col] = c.Content
	}

	rowIdx := make([]int, 0, len(rows))
	for r := range rows {
		rowIdx = append(rowIdx, r)
	}
	sort.Ints(rowIdx)

	lines := make([]string, 0, len(rowIdx))
	for _, r := range rowIdx {
		colIdx := make([]int, 0, len(rows[r]))
		for c := range rows[r] {
			colIdx = append(colIdx, c)
		}
		sort.Ints(colIdx)
		cells := make([]string, 0, len(colIdx))
		for _, c := range colIdx {
			cells = append(cells, rows[r][c])
		}
		lines = append(lines, strings.Join(cells, " | "))
	}

	content := strings.Join(lines, "\n")
	return Rendered{
		Content:  content,
		Headers:  headerRow(t),
		ID:       id,
		Tokens:   token.Count(content),
		RowCount: len(rows),
	}, true
}
