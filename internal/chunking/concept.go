package chunking

import (
	"strings"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/classify"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/token"
)

// AggregateConcept partitions sections into those belonging to the
// designated comprehensive concept and the rest, and builds one
// unified chunk for the concept material. Sequential chunking can
// split a short enumerated list across chunk boundaries; this pass
// guarantees at least one chunk holds the full set.
//
// Returns the remaining sections and, when concept content exists,
// the consolidated chunk.
func AggregateConcept(sections []document.Section, cls *classify.Classifier) (document.Chunk, []document.Section, bool) {
	var conceptSections, others []document.Section
	for _, sec := range sections {
		if isConceptSection(sec, cls) {
			conceptSections = append(conceptSections, sec)
		} else {
			others = append(others, sec)
		}
	}
	if len(conceptSections) == 0 {
		return document.Chunk{}, others, false
	}

	var content []string
	totalTokens := 0

	for _, sec := range conceptSections {
		if cls.IsConceptText(sec.Header) {
			content = append(content, strings.TrimSuffix(headerPrefix(sec.Header), "\n"))
		}
		for _, part := range sec.Parts {
			if part.Content == "" {
				continue
			}
			content = append(content, part.Content)
			totalTokens += part.Tokens
		}
	}

	// Scattered mentions: a paragraph elsewhere naming two or more
	// distinct concept items belongs in the unified chunk too.
	for _, sec := range others {
		for _, part := range sec.Parts {
			if cls.ConceptMentions(part.Content) >= 2 {
				content = append(content, part.Content)
				totalTokens += part.Tokens
			}
		}
	}

	if len(content) == 0 {
		return document.Chunk{}, others, false
	}

	joined := strings.Join(content, "\n\n")
	if totalTokens == 0 {
		totalTokens = token.Count(joined)
	}
	return document.Chunk{
		Content: joined,
		Type:    document.ChunkTypeConcept,
		Metadata: map[string]any{
			document.MetaComprehensive: true,
			document.MetaContentType:   document.ChunkTypeConcept,
		},
		Tokens: totalTokens,
	}, others, true
}

// isConceptSection routes by section type, header, or any body part
// naming the concept. A single mention in the body pulls the whole
// section into the unified chunk.
func isConceptSection(sec document.Section, cls *classify.Classifier) bool {
	if strings.HasPrefix(string(sec.Type), "concept_") || cls.IsConceptText(sec.Header) {
		return true
	}
	for _, part := range sec.Parts {
		if cls.IsConceptText(part.Content) {
			return true
		}
	}
	return false
}
