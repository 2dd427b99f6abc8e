// Package docstore persists chunk embeddings and answers nearest-neighbor
// queries. Two implementations sit behind one interface: an exact in-memory
// scan that is always available, and a Chroma-backed index preferred when
// configured. Open picks between them once, at construction.
package docstore

import (
	"context"

	"github.com/gamma-omg/policy-helper/ingest"
)

// Record is one stored vector. ID is the chunk's content hash, which makes
// re-upserting identical content a no-op. Records are never mutated after
// upsert.
type Record struct {
	ID        string
	Embedding []float32
	Chunk     ingest.Chunk
}

// ScoredChunk is a search hit: chunk metadata plus its similarity score.
type ScoredChunk struct {
	Score float64
	Chunk ingest.Chunk
}

// VectorStore persists records and answers nearest-neighbor queries.
type VectorStore interface {
	// Upsert inserts or replaces records keyed by content hash.
	Upsert(ctx context.Context, records []Record) error

	// Search returns up to k results ordered by descending similarity.
	Search(ctx context.Context, query []float32, k int) ([]ScoredChunk, error)
}
