package layout

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
)

// CSVAnalyzer handles CSV files. The whole file becomes one table
// with the first record as its header row.
type CSVAnalyzer struct{}

func (a *CSVAnalyzer) Analyze(r io.Reader, filename string) (*document.Layout, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	b := &builder{}
	if len(records) == 0 {
		return &b.result, nil
	}

	var t document.Table
	t.ColumnCount = len(records[0])
	for rowIdx, record := range records {
		for colIdx, cell := range record {
			t.Cells = append(t.Cells, document.Cell{
				Row:     rowIdx,
				Col:     colIdx,
				Content: CleanText(cell),
			})
		}
		if len(record) > t.ColumnCount {
			t.ColumnCount = len(record)
		}
	}
	b.addTable(t)
	return &b.result, nil
}
