// Package token provides the single token estimator shared by every
// budget decision in the pipeline. Chunk boundaries are only
// consistent if all of them count tokens the same way.
package token

import "strings"

// Count gives a deterministic token estimate using the ~1.33
// tokens-per-word heuristic. Exact tokenization is not required for
// chunk budgeting.
func Count(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
