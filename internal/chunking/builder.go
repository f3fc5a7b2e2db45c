package chunking

import (
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/classify"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/section"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/tables"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/token"
)

// Config controls chunk budgets.
type Config struct {
	SectionTokens int // target token budget per section chunk
	TableTokens   int // target token budget per table chunk
}

// DefaultConfig returns the production budgets. Fewer, larger chunks
// reduce indexing cost and retrieval fan-out.
func DefaultConfig() Config {
	return Config{
		SectionTokens: 3500,
		TableTokens:   5000,
	}
}

// Builder runs the full classification → assembly → merge → chunk →
// dedupe transformation for one document. Pure and synchronous; safe
// to use from multiple goroutines.
type Builder struct {
	classifier *classify.Classifier
	cfg        Config
}

func NewBuilder(classifier *classify.Classifier, cfg Config) *Builder {
	if cfg.SectionTokens <= 0 {
		cfg.SectionTokens = 3500
	}
	if cfg.TableTokens <= 0 {
		cfg.TableTokens = 5000
	}
	return &Builder{classifier: classifier, cfg: cfg}
}

// Classify labels each non-empty paragraph and attaches its token
// count.
func (b *Builder) Classify(paragraphs []document.Paragraph) []document.Classified {
	out := make([]document.Classified, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p.Content == "" {
			continue
		}
		out = append(out, document.Classified{
			Paragraph: p,
			Type:      b.classifier.Classify(p.Content, p.Role),
			Tokens:    token.Count(p.Content),
		})
	}
	return out
}

// Build converts one analyzer result into the final ordered chunk
// set: concept chunk first, then section chunks, then table chunks,
// deduplicated.
func (b *Builder) Build(lay *document.Layout) []document.Chunk {
	classified := b.Classify(lay.Paragraphs)
	sections := section.Assemble(classified)

	var chunks []document.Chunk

	conceptChunk, others, ok := AggregateConcept(sections, b.classifier)
	if ok {
		chunks = append(chunks, conceptChunk)
	}

	for _, sec := range others {
		chunks = append(chunks, ChunkSection(sec, b.cfg.SectionTokens)...)
	}

	merged := tables.MergeContinuations(lay.Tables)
	for i := range merged {
		rendered, ok := tables.Render(&merged[i], i)
		if !ok {
			continue
		}
		chunks = append(chunks, tables.Chunk(rendered, b.cfg.TableTokens)...)
	}

	return Dedupe(chunks)
}
