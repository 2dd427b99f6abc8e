// Package embed maps text to fixed-dimension unit-length vectors.
package embed

import (
	"context"
	"math"
)

// Embedder produces L2-normalized vectors of a fixed dimension, so cosine
// similarity reduces to a dot product. Implementations must keep the same
// dimension to stay compatible with vectors already in the store.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dim() int
	Model() string
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	norm := math.Sqrt(sum) + 1e-9
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}

	return v
}
