package tables

import (
	"fmt"
	"testing"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
)

// buildTable constructs a table from row slices.
func buildTable(page int, rows ...[]string) document.Table {
	var t document.Table
	t.Page = page
	for r, row := range rows {
		if len(row) > t.ColumnCount {
			t.ColumnCount = len(row)
		}
		for c, content := range row {
			t.Cells = append(t.Cells, document.Cell{Row: r, Col: c, Content: content})
		}
	}
	return t
}

func TestMergeContinuations_PageSplitTable(t *testing.T) {
	// A 3-column table split across a page boundary. The page-2
	// fragment lost its header; its first row is plain data.
	first := buildTable(1,
		[]string{"Item", "Qty", "Price"},
		[]string{"Widget A", "10", "1.500,00"},
		[]string{"Widget B", "4", "2.250,50"},
		[]string{"Widget C", "7", "800,00"},
		[]string{"Widget D", "2", "150,75"},
		[]string{"Widget E", "9", "3.100,00"},
	)
	second := buildTable(2,
		[]string{"Widget F", "12", "2.300,00"},
		[]string{"Widget G", "1", "95,00"},
		[]string{"Widget H", "6", "410,25"},
		[]string{"Widget I", "3", "777,00"},
		[]string{"Widget J", "8", "1.050,00"},
		[]string{"Widget K", "5", "64,50"},
	)
	unrelated := buildTable(5,
		[]string{"Name", "Role"},
		[]string{"Alice", "Engineer"},
	)

	out := MergeContinuations([]document.Table{first, second, unrelated})
	if len(out) != 2 {
		t.Fatalf("expected 2 tables after merge, got %d", len(out))
	}

	merged := out[0]
	// 6 rows from the first fragment plus 5 from the second (its
	// first row is treated as a repeated header and dropped).
	if got := merged.RowCount(); got != 11 {
		t.Errorf("merged row count = %d, want 11", got)
	}
	if merged.ColumnCount != 3 {
		t.Errorf("merged column count = %d, want 3", merged.ColumnCount)
	}
	// Rows must be contiguous from 0.
	seen := map[int]bool{}
	for _, c := range merged.Cells {
		seen[c.Row] = true
	}
	for r := 0; r < 11; r++ {
		if !seen[r] {
			t.Errorf("row %d missing after renumbering", r)
		}
	}

	if out[1].ColumnCount != 2 {
		t.Errorf("unrelated table should pass through unchanged")
	}
}

func TestMergeContinuations_IdenticalHeadersMerge(t *testing.T) {
	first := buildTable(1,
		[]string{"Kode", "Deskripsi"},
		[]string{"A1", "alpha"},
	)
	second := buildTable(2,
		[]string{"Kode", "Deskripsi"},
		[]string{"B2", "beta"},
	)

	out := MergeContinuations([]document.Table{first, second})
	if len(out) != 1 {
		t.Fatalf("expected 1 merged table, got %d", len(out))
	}
	if got := out[0].RowCount(); got != 3 {
		t.Errorf("merged row count = %d, want 3 (repeated header dropped)", got)
	}
}

func TestMergeContinuations_DifferentColumnCountsNeverMerge(t *testing.T) {
	first := buildTable(1,
		[]string{"A", "B", "C"},
		[]string{"1.000,00", "2.000,00", "3.000,00"},
	)
	second := buildTable(2,
		[]string{"A", "B"},
		[]string{"1.000,00", "2.000,00"},
	)

	out := MergeContinuations([]document.Table{first, second})
	if len(out) != 2 {
		t.Fatalf("column count mismatch must not merge, got %d tables", len(out))
	}
}

func TestMergeContinuations_PageGapBlocksMerge(t *testing.T) {
	first := buildTable(1,
		[]string{"Item", "Total"},
		[]string{"x", "1.000,00"},
	)
	far := buildTable(4,
		[]string{"Item", "Total"},
		[]string{"y", "2.000,00"},
	)

	out := MergeContinuations([]document.Table{first, far})
	if len(out) != 2 {
		t.Fatalf("page gap > 1 must not merge, got %d tables", len(out))
	}
}

func TestMergeContinuations_DistanceBound(t *testing.T) {
	// Three unmergeable separators between two otherwise matching
	// fragments exceed the continuation distance.
	part := func(page int) document.Table {
		return buildTable(page,
			[]string{"Item", "Qty"},
			[]string{"thing", "1.234,00"},
		)
	}
	blocker := func(page int) document.Table {
		return buildTable(page, []string{"solo"})
	}

	out := MergeContinuations([]document.Table{part(1), blocker(1), blocker(1), blocker(1), part(2)})
	merged := 0
	for _, tb := range out {
		if tb.ColumnCount == 2 {
			merged++
		}
	}
	if merged != 2 {
		t.Errorf("fragments past the distance bound must stay separate, got %d two-column tables", merged)
	}
}

func TestMergeContinuations_ColumnTypeFingerprint(t *testing.T) {
	// No headers in common and short first row, but the column type
	// profile (text, number, number) matches.
	first := buildTable(1,
		[]string{"Nama", "Jumlah", "Harga"},
		[]string{"abc", "1", "2"},
		[]string{"def", "3", "4"},
		[]string{"ghi", "5", "6"},
	)
	second := buildTable(2,
		[]string{"jkl", "7", "8"},
		[]string{"mno", "9", "10"},
		[]string{"pqr", "11", "12"},
	)

	out := MergeContinuations([]document.Table{first, second})
	if len(out) != 1 {
		t.Fatalf("matching column types should merge, got %d tables", len(out))
	}
}

func TestMergeContinuations_SingleTablePassesThrough(t *testing.T) {
	only := buildTable(1, []string{"A"}, []string{"b"})
	out := MergeContinuations([]document.Table{only})
	if len(out) != 1 || out[0].RowCount() != 2 {
		t.Errorf("single table must pass through unchanged")
	}
}

func TestColumnTypes(t *testing.T) {
	tb := buildTable(1,
		[]string{"Name", "Amount", "Mixed"},
		[]string{"alice", "100", "a1"},
		[]string{"bob", "200", "33"},
		[]string{"carol", "300", "bb"},
	)
	types := columnTypes(&tb)
	want := []string{"text", "number", "mixed"}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("column %d: got %q, want %q", i, types[i], want[i])
		}
	}
}

func TestHeaderSimilarity(t *testing.T) {
	h1 := []string{"Item", "Qty", "Price", "Total", "Note"}
	h2 := []string{"item", "qty", "price", "total", "Remark"}
	if sim := headerSimilarity(h1, h2); sim <= 0.8 {
		t.Errorf("4/5 case-insensitive match should exceed 0.8, got %f", sim)
	}
	if sim := headerSimilarity(h1, h1[:3]); sim != 0 {
		t.Errorf("width mismatch must score 0, got %f", sim)
	}
}

func TestMergeGroup_RowRenumberingStable(t *testing.T) {
	parts := make([]document.Table, 3)
	for i := range parts {
		parts[i] = buildTable(i+1,
			[]string{"H1", "H2"},
			[]string{fmt.Sprintf("a%d", i), fmt.Sprintf("b%d", i)},
			[]string{fmt.Sprintf("c%d", i), fmt.Sprintf("d%d", i)},
		)
	}
	merged := mergeGroup(parts)
	// 3 rows from the first part, 2 from each continuation.
	if got := merged.RowCount(); got != 7 {
		t.Fatalf("row count = %d, want 7", got)
	}
	// Cells must be sorted row-major.
	for i := 1; i < len(merged.Cells); i++ {
		prev, cur := merged.Cells[i-1], merged.Cells[i]
		if cur.Row < prev.Row || (cur.Row == prev.Row && cur.Col < prev.Col) {
			t.Fatalf("cells not row-major at index %d", i)
		}
	}
}
