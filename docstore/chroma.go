package docstore

import (
	"context"
	"fmt"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"

	"github.com/gamma-omg/policy-helper/ingest"
)

// Metadata attribute keys for chunk records.
const (
	DocTitle     = "title"
	DocSection   = "section"
	HeadingLevel = "heading_level"
	Priority     = "priority"
)

// ChromaStoreConfig configures the Chroma-backed store.
type ChromaStoreConfig struct {
	BaseURL    string
	Collection string
}

// ChromaStore delegates nearest-neighbor queries to a Chroma server. Vectors
// are computed by the engine's embedder and stored as-is; Chroma only indexes
// them.
type ChromaStore struct {
	col chroma.Collection
}

// NewChromaStore connects to Chroma and opens (or creates) the collection.
// Any failure here means the server is unreachable or misconfigured; the
// caller is expected to fall back to the in-memory store.
func NewChromaStore(ctx context.Context, cfg ChromaStoreConfig) (*ChromaStore, error) {
	client, err := chroma.NewHTTPClient(chroma.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create Chroma client: %w", err)
	}

	col, err := client.GetOrCreateCollection(ctx, cfg.Collection,
		chroma.WithCollectionMetadataCreate(
			chroma.NewMetadata(chroma.NewStringAttribute("hnsw:space", "cosine")),
		))
	if err != nil {
		return nil, fmt.Errorf("failed to open Chroma collection %s: %w", cfg.Collection, err)
	}

	return &ChromaStore{col: col}, nil
}

func (ds *ChromaStore) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]chroma.DocumentID, len(records))
	texts := make([]string, len(records))
	embs := make([]embeddings.Embedding, len(records))
	metas := make([]chroma.DocumentMetadata, len(records))

	for i, r := range records {
		ids[i] = chroma.DocumentID(r.ID)
		texts[i] = r.Chunk.Text
		embs[i] = embeddings.NewEmbeddingFromFloat32(r.Embedding)
		metas[i] = chroma.NewDocumentMetadata(
			chroma.NewStringAttribute(DocTitle, r.Chunk.Title),
			chroma.NewStringAttribute(DocSection, r.Chunk.Section),
			chroma.NewIntAttribute(HeadingLevel, int64(r.Chunk.HeadingLevel)),
			chroma.NewStringAttribute(Priority, string(r.Chunk.Priority)),
		)
	}

	err := ds.col.Upsert(ctx,
		chroma.WithIDs(ids...),
		chroma.WithTexts(texts...),
		chroma.WithEmbeddings(embs...),
		chroma.WithMetadatas(metas...),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert records: %w", err)
	}

	return nil
}

func (ds *ChromaStore) Search(ctx context.Context, query []float32, k int) ([]ScoredChunk, error) {
	r, err := ds.col.Query(ctx,
		chroma.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(query)),
		chroma.WithNResults(k),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	docs := r.GetDocumentsGroups()[0]
	metadatas := r.GetMetadatasGroups()[0]
	distances := r.GetDistancesGroups()[0]

	res := make([]ScoredChunk, 0, len(docs))
	for i := range docs {
		title, _ := metadatas[i].GetString(DocTitle)
		section, _ := metadatas[i].GetString(DocSection)
		level, _ := metadatas[i].GetInt(HeadingLevel)
		priority, _ := metadatas[i].GetString(Priority)

		res = append(res, ScoredChunk{
			// Chroma reports cosine distance; similarity = 1 - distance.
			Score: 1 - float64(distances[i]),
			Chunk: ingest.Chunk{
				Title:        title,
				Section:      section,
				Text:         docs[i].ContentString(),
				HeadingLevel: int(level),
				Priority:     ingest.Priority(priority),
			},
		})
	}

	return res, nil
}
