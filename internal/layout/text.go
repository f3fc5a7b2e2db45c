package layout

import (
	"bufio"
	"io"
	"strings"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
)

// TextAnalyzer handles plain text files. Paragraphs are blocks
// separated by blank lines; plain text carries no role hints.
type TextAnalyzer struct{}

func (a *TextAnalyzer) Analyze(r io.Reader, filename string) (*document.Layout, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	b := &builder{}
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			b.addParagraph(current.String(), "")
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &b.result, nil
}
