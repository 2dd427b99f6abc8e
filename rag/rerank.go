package rag

import (
	"github.com/gamma-omg/policy-helper/docstore"
	"github.com/gamma-omg/policy-helper/ingest"
)

// mmrLambda balances relevance against diversity: 1.0 is pure relevance,
// 0.0 pure diversity.
const mmrLambda = 0.7

// boost scales a raw similarity score by chunk metadata. Heading level and
// section priority boosts compose multiplicatively.
func boost(score float64, c ingest.Chunk) float64 {
	switch c.HeadingLevel {
	case 1:
		score *= 1.20
	case 2:
		score *= 1.15
	case 3:
		score *= 1.10
	}

	switch c.Priority {
	case ingest.PriorityHigh:
		score *= 1.15
	case ingest.PriorityMedium:
		score *= 1.05
	}

	return score
}

// rerank selects k results from the candidate pool by metadata-boosted
// Maximal Marginal Relevance. The diversity penalty is binary: 1.0 when an
// already-selected result shares the same (title, section) key, else 0.0.
// Redundancy is discouraged, not forbidden; a same-section near-duplicate can
// still win on boosted relevance alone. Ties break toward the earliest
// candidate in the original order.
func rerank(candidates []docstore.ScoredChunk, k int) []ingest.Chunk {
	if k <= 0 {
		return nil
	}
	if k >= len(candidates) {
		out := make([]ingest.Chunk, 0, len(candidates))
		for _, c := range candidates {
			out = append(out, c.Chunk)
		}
		return out
	}

	boosted := make([]float64, len(candidates))
	for i, c := range candidates {
		boosted[i] = boost(c.Score, c.Chunk)
	}

	remaining := make([]int, len(candidates))
	for i := range remaining {
		remaining[i] = i
	}

	// Seed with the highest boosted score.
	seed := 0
	for _, i := range remaining {
		if boosted[i] > boosted[seed] {
			seed = i
		}
	}

	selected := []ingest.Chunk{candidates[seed].Chunk}
	remaining = append(remaining[:seed], remaining[seed+1:]...)

	for len(selected) < k && len(remaining) > 0 {
		bestPos := 0
		bestObjective := objective(boosted[remaining[0]], candidates[remaining[0]].Chunk, selected)

		for pos, i := range remaining[1:] {
			if obj := objective(boosted[i], candidates[i].Chunk, selected); obj > bestObjective {
				bestObjective = obj
				bestPos = pos + 1
			}
		}

		selected = append(selected, candidates[remaining[bestPos]].Chunk)
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
	}

	return selected
}

func objective(boostedScore float64, c ingest.Chunk, selected []ingest.Chunk) float64 {
	penalty := 0.0
	for _, s := range selected {
		if s.Title == c.Title && s.Section == c.Section {
			penalty = 1.0
			break
		}
	}

	return mmrLambda*boostedScore - (1-mmrLambda)*penalty
}
