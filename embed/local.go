package embed

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// LocalEmbedder is the offline default: it seeds a PRNG with the SHA-1 of the
// text and draws a Gaussian vector, so the same text always maps to the same
// unit vector across calls and restarts. No semantic meaning, but exact text
// matches score 1.0, which is enough for tests and air-gapped deployments.
type LocalEmbedder struct {
	dim int
}

func NewLocalEmbedder(dim int) *LocalEmbedder {
	return &LocalEmbedder{dim: dim}
}

func (e *LocalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	sum := sha1.Sum([]byte(text))
	seed := binary.BigEndian.Uint64(sum[:8])
	rng := rand.New(rand.NewSource(int64(seed)))

	v := make([]float32, e.dim)
	for i := range v {
		v[i] = float32(rng.NormFloat64())
	}

	return normalize(v), nil
}

func (e *LocalEmbedder) Dim() int {
	return e.dim
}

func (e *LocalEmbedder) Model() string {
	return fmt.Sprintf("local-%d", e.dim)
}
