package embed

import (
	"context"
	"fmt"

	"github.com/amikos-tech/chroma-go/pkg/embeddings"
)

// FunctionEmbedder adapts a chroma-go embedding function (OpenAI, Gemini) to
// the Embedder interface. Provider output is re-normalized so stored vectors
// keep the unit-norm invariant regardless of what the API returns.
type FunctionEmbedder struct {
	fn    embeddings.EmbeddingFunction
	dim   int
	model string
}

func NewFunctionEmbedder(fn embeddings.EmbeddingFunction, dim int, model string) *FunctionEmbedder {
	return &FunctionEmbedder{fn: fn, dim: dim, model: model}
}

func (e *FunctionEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	emb, err := e.fn.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	v := emb.ContentAsFloat32()
	if len(v) != e.dim {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(v), e.dim)
	}

	return normalize(v), nil
}

func (e *FunctionEmbedder) Dim() int {
	return e.dim
}

func (e *FunctionEmbedder) Model() string {
	return e.model
}
