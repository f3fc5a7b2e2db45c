// Package document holds the value types shared across the indexing
// pipeline: analyzer output (paragraphs, tables), classified content,
// assembled sections, and the chunks handed to the index writer.
package document

// Paragraph is one paragraph as emitted by the layout analyzer.
type Paragraph struct {
	Content  string // cleaned text
	Role     string // analyzer role hint ("title", "heading", ...), may be empty
	Position int    // order within the document
}

// Cell is a single table cell addressed by row and column index.
type Cell struct {
	Row     int
	Col     int
	Content string
}

// Table is a raw table as emitted by the layout analyzer, or the
// merged result of several page-split fragments. Row 0 is the header.
type Table struct {
	Cells       []Cell
	ColumnCount int
	Page        int // 1-based page number, 0 if unknown
}

// RowCount returns the number of distinct rows in the table.
func (t *Table) RowCount() int {
	seen := map[int]bool{}
	for _, c := range t.Cells {
		seen[c.Row] = true
	}
	return len(seen)
}

// Layout is the full analyzer output for one document.
type Layout struct {
	Paragraphs []Paragraph
	Tables     []Table
}

// ContentType labels a paragraph with its structural role.
type ContentType string

const (
	TypeTitle            ContentType = "title"
	TypeHeading          ContentType = "heading"
	TypeConceptHeader    ContentType = "concept_header"
	TypeConceptItem      ContentType = "concept_item"
	TypeConceptContent   ContentType = "concept_content"
	TypeTableOfContents  ContentType = "table_of_contents"
	TypeChapter          ContentType = "chapter"
	TypeSectionHeader    ContentType = "section_header"
	TypeSubsectionHeader ContentType = "subsection_header"
	TypeAppendix         ContentType = "appendix"
	TypePurposeStatement ContentType = "purpose_statement"
	TypeDetailedContent  ContentType = "detailed_content"
	TypeTableContent     ContentType = "table_content"
	TypeContent          ContentType = "content"
)

// IsHeading reports whether this type opens a new section.
func (t ContentType) IsHeading() bool {
	switch t {
	case TypeTitle, TypeHeading, TypeSectionHeader, TypeChapter, TypeSubsectionHeader:
		return true
	}
	return false
}

// Classified is a paragraph after content-type classification.
type Classified struct {
	Paragraph
	Type   ContentType
	Tokens int
}

// Section is a contiguous run of paragraphs headed by one
// heading-class paragraph.
type Section struct {
	Header      string
	Type        ContentType
	Parts       []Classified
	ID          int
	TotalTokens int
}

// Append adds a paragraph to the section and keeps TotalTokens in sync.
func (s *Section) Append(p Classified) {
	s.Parts = append(s.Parts, p)
	s.TotalTokens += p.Tokens
}

// Chunk type values beyond the paragraph content types.
const (
	ChunkTypeTable   = "table"
	ChunkTypeConcept = "concept_comprehensive"
)

// Metadata keys stored on index payloads.
const (
	MetaSource          = "source"
	MetaChunkIndex      = "chunk_index"
	MetaContentType     = "content_type"
	MetaTokenCount      = "token_count"
	MetaTotalChunks     = "total_chunks"
	MetaContentHash     = "content_hash"
	MetaSectionHeader   = "section_header"
	MetaSectionID       = "section_id"
	MetaCompleteSection = "is_complete_section"
	MetaPartialSection  = "is_partial_section"
	MetaChunkPart       = "chunk_part"
	MetaTableID         = "table_id"
	MetaHeaders         = "headers"
	MetaRowCount        = "row_count"
	MetaPartialTable    = "is_partial_table"
	MetaPart            = "part"
	MetaTotalParts      = "total_parts"
	MetaComprehensive   = "is_comprehensive"
)

// Chunk is a bounded unit of text plus metadata destined for the
// vector index. Immutable once built.
type Chunk struct {
	Content  string
	Type     string
	Metadata map[string]any
	Tokens   int
}
