package layout

import (
	"regexp"
	"strings"
)

var (
	bulletRe    = regexp.MustCompile(`[•●▪∙◦]`)
	spacesRe    = regexp.MustCompile(`[ \t]+`)
	newlinesRe  = regexp.MustCompile(`\n{4,}`)
	numberingRe = regexp.MustCompile(`(\d+)\.(\s*)`)
	subNumberRe = regexp.MustCompile(`(\d+\.\d+)\.(\s*)`)
)

// CleanText normalizes analyzer output while preserving document
// structure: bullets become dashes, whitespace collapses, numbering
// keeps a single trailing space.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	txt := strings.ReplaceAll(text, "\u00a0", " ")
	txt = bulletRe.ReplaceAllString(txt, "- ")
	txt = spacesRe.ReplaceAllString(txt, " ")
	txt = newlinesRe.ReplaceAllString(txt, "\n\n\n")
	txt = numberingRe.ReplaceAllString(txt, "$1. ")
	txt = subNumberRe.ReplaceAllString(txt, "$1. ")
	return strings.TrimSpace(txt)
}
