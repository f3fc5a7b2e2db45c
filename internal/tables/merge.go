// Package tables reassembles tables split across page boundaries and
// converts them into index-ready chunks. Page-split fragments often
// lose their header row, and page metadata is not always reliable, so
// continuation detection combines several independent signals with an
// OR instead of trusting any single one.
package tables

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
)

// maxContinuationDistance bounds how far apart two fragments may sit
// in the table stream and still be considered one logical table.
const maxContinuationDistance = 2

var dataPatternRe = regexp.MustCompile(`\d+[.,]\d+|\d{4}|IDR|Rp|%`)

// MergeContinuations groups adjacent continuation fragments and
// merges each group into a single table. Non-continuations pass
// through unchanged.
func MergeContinuations(in []document.Table) []document.Table {
	if len(in) < 2 {
		return in
	}

	var out []document.Table
	i := 0
	for i < len(in) {
		group := []document.Table{in[i]}
		j := i + 1
		for j < len(in) && isContinuation(&group[len(group)-1], &in[j], j-i) {
			group = append(group, in[j])
			j++
		}
		if len(group) > 1 {
			out = append(out, mergeGroup(group))
		} else {
			out = append(out, in[i])
		}
		i = j
	}
	return out
}

// isContinuation decides whether next is a continuation of prev, given
// their distance in the table stream. Ambiguous signals resolve to
// false: not merging is the conservative outcome.
func isContinuation(prev, next *document.Table, distance int) bool {
	if distance > maxContinuationDistance {
		return false
	}
	if prev.ColumnCount != next.ColumnCount {
		return false
	}
	if prev.Page > 0 && next.Page > 0 && next.Page > prev.Page+1 {
		return false
	}

	h1 := headerRow(prev)
	h2 := headerRow(next)
	if len(h1) > 0 && len(h2) > 0 {
		if equalHeaders(h1, h2) {
			return true
		}
		if headerSimilarity(h1, h2) > 0.8 {
			return true
		}
	}

	// A continuation's first row is usually data, not a header:
	// headers are short, data rows are long or numeric.
	if len(h2) > 0 {
		total := 0
		for _, cell := range h2 {
			total += len(cell)
		}
		if float64(total)/float64(len(h2)) > 30 {
			return true
		}
		for _, cell := range h2 {
			if dataPatternRe.MatchString(cell) {
				return true
			}
		}
	}

	t1 := columnTypes(prev)
	t2 := columnTypes(next)
	if len(t1) > 0 && len(t1) == len(t2) {
		match := 0
		for k := range t1 {
			if t1[k] == t2[k] {
				match++
			}
		}
		if float64(match)/float64(len(t1)) > 0.7 {
			return true
		}
	}

	return false
}

// mergeGroup pools the cells of a continuation group into one table.
// Row 0 of every fragment after the first is a repeated header and is
// dropped; remaining rows are renumbered contiguously.
func mergeGroup(group []document.Table) document.Table {
	merged := document.Table{
		ColumnCount: group[0].ColumnCount,
		Page:        group[0].Page,
	}

	offset := 0
	for idx, tb := range group {
		startRow := 0
		if idx > 0 {
			startRow = 1
		}
		maxRow := 0
		for _, c := range tb.Cells {
			if c.Row > maxRow {
				maxRow = c.Row
			}
			if c.Row < startRow {
				continue
			}
			merged.Cells = append(merged.Cells, document.Cell{
				Row:     c.Row - startRow + offset,
				Col:     c.Col,
				Content: c.Content,
			})
		}
		offset += maxRow - startRow + 1
	}

	sort.Slice(merged.Cells, func(a, b int) bool {
		if merged.Cells[a].Row != merged.Cells[b].Row {
			return merged.Cells[a].Row < merged.Cells[b].Row
		}
		return merged.Cells[a].Col < merged.Cells[b].Col
	})
	return merged
}

// headerRow returns row 0 in column order.
func headerRow(t *document.Table) []string {
	var cells []document.Cell
	for _, c := range t.Cells {
		if c.Row == 0 {
			cells = append(cells, c)
		}
	}
	sort.Slice(cells, func(a, b int) bool { return cells[a].Col < cells[b].Col })
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.Content)
	}
	return out
}

func equalHeaders(h1, h2 []string) bool {
	if len(h1) != len(h2) {
		return false
	}
	for i := range h1 {
		if h1[i] != h2[i] {
			return false
		}
	}
	return true
}

// headerSimilarity is the cell-wise case-insensitive match ratio.
// Headers of different widths never match.
func headerSimilarity(h1, h2 []string) float64 {
	if len(h1) != len(h2) || len(h1) == 0 {
		return 0
	}
	matches := 0
	for i := range h1 {
		if strings.EqualFold(h1[i], h2[i]) {
			matches++
		}
	}
	return float64(matches) / float64(len(h1))
}

var (
	digitRe  = regexp.MustCompile(`\d`)
	letterRe = regexp.MustCompile(`[a-zA-Z]`)
)

// columnTypes classifies each column as number, text, mixed or empty
// by sampling its cells below the header row.
func columnTypes(t *document.Table) []string {
	if t.ColumnCount == 0 {
		return nil
	}
	types := make([]string, t.ColumnCount)
	for col := 0; col < t.ColumnCount; col++ {
		numbers, letters, total := 0, 0, 0
		for _, c := range t.Cells {
			if c.Col != col || c.Row == 0 {
				continue
			}
			total++
			if digitRe.MatchString(c.Content) {
				numbers++
			}
			if letterRe.MatchString(c.Content) {
				letters++
			}
		}
		switch {
		case total == 0:
			types[col] = "empty"
		case float64(numbers) > float64(total)*0.7:
			types[col] = "number"
		case float64(letters) > float64(total)*0.7:
			types[col] = "text"
		default:
			types[col] = "mixed"
		}
	}
	return types
}
