// Package section assembles a classified paragraph stream into
// contiguous sections. A heading-class paragraph opens a new section;
// everything else accumulates into the open one.
package section

import "github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"

// FallbackHeader titles the synthetic section that collects body text
// appearing before any heading.
const FallbackHeader = "Document Content"

// Assemble walks paragraphs in position order and returns the
// resulting sections. Every paragraph lands in exactly one section,
// and section order matches paragraph order.
func Assemble(paragraphs []document.Classified) []document.Section {
	var sections []document.Section
	var current *document.Section
	counter := 0

	open := func(header string, t document.ContentType) {
		current = &document.Section{
			Header: header,
			Type:   t,
			ID:     counter,
		}
		counter++
	}

	for _, p := range paragraphs {
		if p.Type.IsHeading() {
			if current != nil {
				sections = append(sections, *current)
			}
			open(p.Content, p.Type)
			current.Append(p)
			continue
		}
		if current == nil {
			open(FallbackHeader, document.TypeContent)
		}
		current.Append(p)
	}

	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}
