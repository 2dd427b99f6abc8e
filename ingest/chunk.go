package ingest

import (
	"crypto/sha256"
	"encoding/hex"
)

// Chunk is the unit of embedding, storage and citation: a bounded word-count
// slice of a document section plus the metadata the reranker boosts on.
type Chunk struct {
	Title        string
	Section      string
	Text         string
	HeadingLevel int
	Priority     Priority
}

// Fingerprint returns the stable content hash used as the chunk's identity
// for deduplication and as its vector store record id.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// BuildChunks slices document sections into chunks, carrying each section's
// metadata onto every chunk cut from it.
func BuildChunks(sections []Section, c *Chunkifier) []Chunk {
	var out []Chunk
	for _, s := range sections {
		for _, text := range c.Chunkify(s.Body) {
			out = append(out, Chunk{
				Title:        s.Title,
				Section:      s.Heading,
				Text:         text,
				HeadingLevel: s.HeadingLevel,
				Priority:     s.Priority,
			})
		}
	}

	return out
}
