// Package classify labels paragraphs with a content type using an
// ordered rule cascade. Classification has to work on bilingual
// (Indonesian/English) documents that often carry no style metadata,
// so keyword sets, numbering regexes and structural density are
// layered; the first matching rule wins.
package classify

import (
	"regexp"
	"strings"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
)

var (
	conceptHeaderKeywords = []string{"CORE VALUES", "NILAI INTI"}

	tocKeywords = []string{"DAFTAR ISI", "TABLE OF CONTENTS", "CONTENTS", "INDEX", "INDEKS"}

	appendixKeywords = []string{"APPENDIX", "LAMPIRAN", "ANNEX", "ATTACHMENT"}

	purposeKeywords = []string{
		"PURPOSE", "TUJUAN", "VISION", "VISI", "MISSION", "MISI",
		"OBJECTIVE", "SASARAN", "GOAL", "TARGET", "INTRODUCTION",
		"PENDAHULUAN", "OVERVIEW", "RINGKASAN", "SUMMARY",
		"CONCLUSION", "KESIMPULAN", "RECOMMENDATION", "REKOMENDASI",
	}

	procedureKeywords = []string{
		"PROCEDURE", "PROSEDUR", "PROCESS", "PROSES", "WORKFLOW",
		"LANGKAH", "TAHAP", "STEPS", "CARA",
	}

	policyKeywords = []string{
		"POLICY", "KEBIJAKAN", "RULE", "ATURAN", "REGULATION",
		"REGULASI", "GUIDELINE", "PANDUAN",
	}

	chapterRe    = regexp.MustCompile(`^(BAB|CHAPTER|SECTION|BAGIAN)\s*\d+`)
	subsectionRe = regexp.MustCompile(`^\d+\.\d+`)
	sectionRe    = regexp.MustCompile(`^\d+\.`)
)

// input is the normalized view of one paragraph handed to each rule.
type input struct {
	text  string
	upper string
	words int
	role  string
}

// rule is one entry of the ordered classification table.
type rule struct {
	name  string
	apply func(c *Classifier, in input) (document.ContentType, bool)
}

// Classifier is a pure, deterministic, total classification function.
// The concept item list identifies members of the designated
// enumerable concept (e.g. a company's named core values).
type Classifier struct {
	conceptItems []string // upper-cased
	rules        []rule
}

// New builds a classifier for the given concept item keywords.
func New(conceptItems []string) *Classifier {
	c := &Classifier{}
	for _, item := range conceptItems {
		item = strings.TrimSpace(item)
		if item != "" {
			c.conceptItems = append(c.conceptItems, strings.ToUpper(item))
		}
	}
	c.rules = []rule{
		{"role_title", func(_ *Classifier, in input) (document.ContentType, bool) {
			return document.TypeTitle, strings.Contains(strings.ToLower(in.role), "title")
		}},
		{"role_heading", func(_ *Classifier, in input) (document.ContentType, bool) {
			return document.TypeHeading, strings.Contains(strings.ToLower(in.role), "heading")
		}},
		{"concept_header", func(_ *Classifier, in input) (document.ContentType, bool) {
			return document.TypeConceptHeader, containsAny(in.upper, conceptHeaderKeywords)
		}},
		{"concept_item", func(c *Classifier, in input) (document.ContentType, bool) {
			if !containsAny(in.upper, c.conceptItems) {
				return "", false
			}
			// Short text is the item name itself; longer text is
			// the item's elaboration.
			if in.words < 10 {
				return document.TypeConceptItem, true
			}
			return document.TypeConceptContent, true
		}},
		{"table_of_contents", func(_ *Classifier, in input) (document.ContentType, bool) {
			return document.TypeTableOfContents, containsAny(in.upper, tocKeywords)
		}},
		{"chapter", func(_ *Classifier, in input) (document.ContentType, bool) {
			return document.TypeChapter, chapterRe.MatchString(in.upper)
		}},
		{"subsection_header", func(_ *Classifier, in input) (document.ContentType, bool) {
			return document.TypeSubsectionHeader, subsectionRe.MatchString(in.text)
		}},
		{"section_header", func(_ *Classifier, in input) (document.ContentType, bool) {
			return document.TypeSectionHeader, sectionRe.MatchString(in.text)
		}},
		{"appendix", func(_ *Classifier, in input) (document.ContentType, bool) {
			return document.TypeAppendix, containsAny(in.upper, appendixKeywords)
		}},
		{"purpose_statement", func(_ *Classifier, in input) (document.ContentType, bool) {
			return document.TypePurposeStatement, containsAny(in.upper, purposeKeywords)
		}},
		{"procedure", func(_ *Classifier, in input) (document.ContentType, bool) {
			return document.TypeDetailedContent, containsAny(in.upper, procedureKeywords)
		}},
		{"policy", func(_ *Classifier, in input) (document.ContentType, bool) {
			return document.TypeDetailedContent, containsAny(in.upper, policyKeywords)
		}},
		{"long_content", func(_ *Classifier, in input) (document.ContentType, bool) {
			return document.TypeDetailedContent, in.words > 100
		}},
		{"table_content", func(_ *Classifier, in input) (document.ContentType, bool) {
			if strings.ContainsAny(in.text, "─┌└") {
				return document.TypeTableContent, true
			}
			if strings.Count(in.text, "|") > 2 && strings.Contains(in.text, "\n") {
				return document.TypeTableContent, true
			}
			return "", false
		}},
	}
	return c
}

// Classify returns the content type for a paragraph, given its text
// and the analyzer's role hint. Always returns a type; the fallback
// is TypeContent.
func (c *Classifier) Classify(text, role string) document.ContentType {
	in := input{
		text:  strings.TrimSpace(text),
		upper: strings.ToUpper(strings.TrimSpace(text)),
		words: len(strings.Fields(text)),
		role:  role,
	}
	for _, r := range c.rules {
		if t, ok := r.apply(c, in); ok {
			return t
		}
	}
	return document.TypeContent
}

// IsConceptText reports whether text mentions the concept header or
// any configured concept item. Used when routing whole sections to
// the concept aggregator.
func (c *Classifier) IsConceptText(text string) bool {
	upper := strings.ToUpper(text)
	return containsAny(upper, conceptHeaderKeywords) || containsAny(upper, c.conceptItems)
}

// ConceptMentions counts how many distinct concept items the text
// mentions.
func (c *Classifier) ConceptMentions(text string) int {
	upper := strings.ToUpper(text)
	n := 0
	for _, item := range c.conceptItems {
		if strings.Contains(upper, item) {
			n++
		}
	}
	return n
}

func containsAny(upper string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}
