package chunking

import (
	"crypto/sha256"
	"fmt"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
)

// Dedupe drops chunks whose content is byte-identical to an earlier
// chunk. Order preserving; the first occurrence wins.
func Dedupe(chunks []document.Chunk) []document.Chunk {
	seen := make(map[string]bool, len(chunks))
	unique := make([]document.Chunk, 0, len(chunks))
	for _, c := range chunks {
		h := ContentHashHex(c.Content)
		if seen[h] {
			continue
		}
		seen[h] = true
		unique = append(unique, c)
	}
	return unique
}

// ContentHashHex computes SHA-256 of content and returns a hex string.
func ContentHashHex(content string) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", h[:])
}
