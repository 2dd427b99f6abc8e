// Package rag orchestrates the retrieval-augmented pipeline: ingest chunks
// into the vector store, retrieve and rerank contexts for a query, generate
// the grounded answer, and aggregate request metrics.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gamma-omg/policy-helper/docstore"
	"github.com/gamma-omg/policy-helper/embed"
	"github.com/gamma-omg/policy-helper/ingest"
)

// Stats is a snapshot of engine counters and latencies.
type Stats struct {
	TotalDocs              int     `json:"total_docs"`
	TotalChunks            int     `json:"total_chunks"`
	AskCount               int     `json:"ask_count"`
	FallbackUsed           bool    `json:"fallback_used"`
	AvgRetrievalLatencyMs  float64 `json:"avg_retrieval_latency_ms"`
	AvgGenerationLatencyMs float64 `json:"avg_generation_latency_ms"`
	EmbeddingModel         string  `json:"embedding_model"`
	LLMModel               string  `json:"llm_model"`
}

// EngineConfig carries the engine's collaborators, already constructed and
// fallback-resolved by the caller.
type EngineConfig struct {
	Log       *slog.Logger
	Store     docstore.VectorStore
	Embedder  embed.Embedder
	Generator Generator

	// FallbackUsed records that the preferred vector store backend was
	// unavailable at construction and the in-memory store was substituted.
	FallbackUsed bool
}

// Engine is the single orchestrator instance behind all requests. One mutex
// guards every piece of mutable state; searches against an already-built
// index run outside it.
type Engine struct {
	log       *slog.Logger
	store     docstore.VectorStore
	embedder  embed.Embedder
	generator Generator

	mu           sync.Mutex
	metrics      latencyMetrics
	hashes       map[string]struct{}
	titles       map[string]struct{}
	chunkCount   int
	askCount     int
	fallbackUsed bool
}

func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		log:          cfg.Log,
		store:        cfg.Store,
		embedder:     cfg.Embedder,
		generator:    cfg.Generator,
		hashes:       make(map[string]struct{}),
		titles:       make(map[string]struct{}),
		fallbackUsed: cfg.FallbackUsed,
	}
}

// IngestChunks embeds and stores every chunk not already seen by this engine
// and reports how many new documents and chunks this call added. Re-ingesting
// an identical chunk set returns (0, 0).
func (e *Engine) IngestChunks(ctx context.Context, chunks []ingest.Chunk) (newDocs, newChunks int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	docsBefore := len(e.titles)
	var batch []docstore.Record

	for _, ch := range chunks {
		h := ingest.Fingerprint(ch.Text)
		if _, seen := e.hashes[h]; seen {
			continue
		}

		v, err := e.embedder.Embed(ctx, ch.Text)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to embed chunk: %w", err)
		}

		e.hashes[h] = struct{}{}
		e.titles[ch.Title] = struct{}{}
		e.chunkCount++

		batch = append(batch, docstore.Record{ID: h, Embedding: v, Chunk: ch})
	}

	if len(batch) > 0 {
		if err := e.store.Upsert(ctx, batch); err != nil {
			return 0, 0, fmt.Errorf("failed to upsert records: %w", err)
		}
	}

	newDocs = len(e.titles) - docsBefore
	newChunks = len(batch)
	e.log.Info("ingestion complete", "new_docs", newDocs, "new_chunks", newChunks)

	return newDocs, newChunks, nil
}

// Retrieve embeds the query, pulls 2k candidates from the store and reranks
// them down to at most k chunks.
func (e *Engine) Retrieve(ctx context.Context, query string, k int) ([]ingest.Chunk, error) {
	start := time.Now()

	qv, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	candidates, err := e.store.Search(ctx, qv, k*2)
	if err != nil {
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}

	results := rerank(candidates, k)

	e.mu.Lock()
	e.metrics.addRetrieval(float64(time.Since(start)) / float64(time.Millisecond))
	e.mu.Unlock()

	return results, nil
}

// Answer generates the final answer from the query and retrieved contexts.
// The ask counter increments even when generation fails, so it counts
// attempted requests rather than successes.
func (e *Engine) Answer(ctx context.Context, query string, contexts []ingest.Chunk) (string, error) {
	start := time.Now()

	answer, err := e.generator.Generate(ctx, query, contexts)

	e.mu.Lock()
	e.askCount++
	if err == nil {
		e.metrics.addGeneration(float64(time.Since(start)) / float64(time.Millisecond))
	}
	e.mu.Unlock()

	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	return answer, nil
}

// Stats returns a snapshot of engine counters, latency averages and the
// active model identifiers.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	avgRetrieval, avgGeneration := e.metrics.summary()

	return Stats{
		TotalDocs:              len(e.titles),
		TotalChunks:            e.chunkCount,
		AskCount:               e.askCount,
		FallbackUsed:           e.fallbackUsed,
		AvgRetrievalLatencyMs:  avgRetrieval,
		AvgGenerationLatencyMs: avgGeneration,
		EmbeddingModel:         e.embedder.Model(),
		LLMModel:               e.generator.Model(),
	}
}
