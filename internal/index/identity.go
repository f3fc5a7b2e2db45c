package index

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// SafeDocID encodes a source name into an identifier-safe form.
func SafeDocID(source string) string {
	return base64.URLEncoding.EncodeToString([]byte(source))
}

// ChunkID derives the deterministic point ID for one chunk of one
// source. Reprocessing the same source yields the same IDs, so
// upserts overwrite instead of duplicating.
func ChunkID(source string, ordinal int) string {
	name := fmt.Sprintf("%s_%d", SafeDocID(source), ordinal)
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(name)).String()
}
