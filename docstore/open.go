package docstore

import (
	"context"
	"log/slog"
)

// Options selects the vector store backend.
type Options struct {
	// Backend is "chroma" or "memory".
	Backend string
	// ChromaAddr is the Chroma server base URL, required for the chroma
	// backend.
	ChromaAddr string
	// Collection is the Chroma collection name.
	Collection string
}

// Open constructs the configured vector store. When the Chroma backend fails
// to initialize the in-memory store is substituted and the returned flag is
// true; this is the single degrade-to-local decision point, taken once at
// construction and never mid-request.
func Open(ctx context.Context, log *slog.Logger, opts Options) (VectorStore, bool) {
	if opts.Backend != "chroma" {
		log.Info("using in-memory vector store")
		return NewMemoryStore(), false
	}

	store, err := NewChromaStore(ctx, ChromaStoreConfig{
		BaseURL:    opts.ChromaAddr,
		Collection: opts.Collection,
	})
	if err != nil {
		log.Warn("Chroma initialization failed, falling back to in-memory store", "error", err)
		return NewMemoryStore(), true
	}

	log.Info("using Chroma vector store", "collection", opts.Collection)
	return store, false
}
