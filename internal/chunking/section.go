// Package chunking turns assembled sections and merged tables into
// the deduplicated, token-bounded chunk set handed to the index
// writer.
package chunking

import (
	"fmt"
	"strings"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/token"
)

// headerPrefix renders the section header line every chunk carries,
// so no chunk loses its topical context.
func headerPrefix(header string) string {
	return fmt.Sprintf("=== %s ===\n", header)
}

// ChunkSection converts one section into chunks bounded by
// targetTokens. Small sections become a single complete chunk; large
// ones are split greedily on part boundaries, each part repeating the
// header prefix.
func ChunkSection(sec document.Section, targetTokens int) []document.Chunk {
	prefix := headerPrefix(sec.Header)
	prefixTokens := token.Count(prefix)

	if sec.TotalTokens <= targetTokens {
		return []document.Chunk{{
			Content: prefix + joinParts(sec.Parts),
			Type:    string(sec.Type),
			Metadata: map[string]any{
				document.MetaSectionHeader:   sec.Header,
				document.MetaSectionID:       sec.ID,
				document.MetaCompleteSection: true,
			},
			Tokens: prefixTokens + sec.TotalTokens,
		}}
	}

	var chunks []document.Chunk
	var current []document.Classified
	currentTokens := prefixTokens

	flush := func() {
		chunks = append(chunks, document.Chunk{
			Content: prefix + joinParts(current),
			Type:    string(sec.Type),
			Metadata: map[string]any{
				document.MetaSectionHeader:  sec.Header,
				document.MetaSectionID:      sec.ID,
				document.MetaPartialSection: true,
				document.MetaChunkPart:      len(chunks) + 1,
			},
			Tokens: currentTokens,
		})
	}

	for _, part := range sec.Parts {
		if currentTokens+part.Tokens > targetTokens {
			if len(current) > 0 {
				flush()
			}
			current = []document.Classified{part}
			currentTokens = prefixTokens + part.Tokens
		} else {
			current = append(current, part)
			currentTokens += part.Tokens
		}
	}
	if len(current) > 0 {
		flush()
	}
	return chunks
}

func joinParts(parts []document.Classified) string {
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		texts = append(texts, p.Content)
	}
	return strings.Join(texts, "\n\n")
}
