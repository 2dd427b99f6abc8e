package docstore

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryStore is the exact fallback: a brute-force cosine scan over all
// stored vectors. O(n·D) per query, always available.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	index   map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[string]int)}
}

func (s *MemoryStore) Upsert(_ context.Context, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		if i, ok := s.index[r.ID]; ok {
			s.records[i] = r
			continue
		}

		s.index[r.ID] = len(s.records)
		s.records = append(s.records, r)
	}

	return nil
}

func (s *MemoryStore) Search(_ context.Context, query []float32, k int) ([]ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 || k <= 0 {
		return nil, nil
	}

	hits := make([]ScoredChunk, len(s.records))
	for i, r := range s.records {
		hits[i] = ScoredChunk{
			Score: cosine(r.Embedding, query),
			Chunk: r.Chunk,
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if k < len(hits) {
		hits = hits[:k]
	}

	return hits, nil
}

// Len reports the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}

	return dot / (math.Sqrt(na)*math.Sqrt(nb) + 1e-9)
}
