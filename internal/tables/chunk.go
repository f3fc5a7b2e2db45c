package tables

import (
	"fmt"
	"strings"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/token"
)

// Chunk converts a rendered table into one or more chunks bounded by
// targetTokens. Oversized tables are split on row lines, and every
// part repeats the header line so each chunk stays independently
// interpretable.
func Chunk(tb Rendered, targetTokens int) []document.Chunk {
	if tb.Tokens <= targetTokens {
		return []document.Chunk{{
			Content: "=== TABLE ===\n" + tb.Content,
			Type:    document.ChunkTypeTable,
			Metadata: map[string]any{
				document.MetaTableID:  tb.ID,
				document.MetaHeaders:  tb.Headers,
				document.MetaRowCount: tb.RowCount,
			},
			Tokens: tb.Tokens,
		}}
	}
	return split(tb, targetTokens)
}

func split(tb Rendered, targetTokens int) []document.Chunk {
	lines := strings.Split(tb.Content, "\n")
	header := ""
	if len(lines) > 0 {
		header = lines[0]
	}

	var chunks []document.Chunk
	current := []string{header}
	currentTokens := token.Count(header)

	flush := func() {
		content := fmt.Sprintf("=== TABLE (Part %d) ===\n%s", len(chunks)+1, strings.Join(current, "\n"))
		chunks = append(chunks, document.Chunk{
			Content: content,
			Type:    document.ChunkTypeTable,
			Metadata: map[string]any{
				document.MetaTableID:      tb.ID,
				document.MetaHeaders:      tb.Headers,
				document.MetaRowCount:     tb.RowCount,
				document.MetaPartialTable: true,
				document.MetaPart:         len(chunks) + 1,
			},
			Tokens: currentTokens,
		})
	}

	for _, line := range lines[1:] {
		lineTokens := token.Count(line)
		if currentTokens+lineTokens > targetTokens {
			flush()
			current = []string{header, line}
			currentTokens = token.Count(header) + lineTokens
		} else {
			current = append(current, line)
			currentTokens += lineTokens
		}
	}
	if len(current) > 1 {
		flush()
	}

	for i := range chunks {
		chunks[i].Metadata[document.MetaTotalParts] = len(chunks)
	}
	return chunks
}
