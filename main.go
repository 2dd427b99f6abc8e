package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	gemini "github.com/amikos-tech/chroma-go/pkg/embeddings/gemini"
	openai "github.com/amikos-tech/chroma-go/pkg/embeddings/openai"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gamma-omg/policy-helper/docstore"
	"github.com/gamma-omg/policy-helper/embed"
	"github.com/gamma-omg/policy-helper/ingest"
	"github.com/gamma-omg/policy-helper/rag"
	"github.com/gamma-omg/policy-helper/readers"
)

func createEmbedder(cfg *Config) (embed.Embedder, error) {
	if cfg.OpenAIEmbeddings != nil {
		ef, err := openai.NewOpenAIEmbeddingFunction(
			cfg.OpenAIEmbeddings.ApiKey,
			openai.WithModel(openai.EmbeddingModel(cfg.OpenAIEmbeddings.Model)))
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI embedding function: %w", err)
		}

		return embed.NewFunctionEmbedder(ef, cfg.EmbeddingDim, "openai:"+cfg.OpenAIEmbeddings.Model), nil
	}

	if cfg.GeminiEmbeddings != nil {
		ef, err := gemini.NewGeminiEmbeddingFunction(
			gemini.WithAPIKey(cfg.GeminiEmbeddings.ApiKey),
			gemini.WithDefaultModel(embeddings.EmbeddingModel(cfg.GeminiEmbeddings.Model)))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini embedding function: %w", err)
		}

		return embed.NewFunctionEmbedder(ef, cfg.EmbeddingDim, "gemini:"+cfg.GeminiEmbeddings.Model), nil
	}

	return embed.NewLocalEmbedder(cfg.EmbeddingDim), nil
}

// createGenerator builds the configured answer provider, substituting the
// offline stub when the provider cannot be initialized. Construction-time
// failures degrade; request-time failures surface to the caller.
func createGenerator(ctx context.Context, logger *slog.Logger, cfg *Config, guide string) rag.Generator {
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.OpenAI == nil {
			logger.Warn("openai provider selected but not configured, using stub generator")
			break
		}
		g, err := rag.NewOpenAIGenerator(cfg.LLM.OpenAI.ApiKey, cfg.LLM.OpenAI.Model, guide)
		if err != nil {
			logger.Warn("OpenAI initialization failed, using stub generator", "error", err)
			break
		}
		return g

	case "ollama":
		if cfg.LLM.Ollama == nil {
			logger.Warn("ollama provider selected but not configured, using stub generator")
			break
		}
		g, err := rag.NewOllamaGenerator(ctx, cfg.LLM.Ollama.Host, cfg.LLM.Ollama.Model, guide)
		if err != nil {
			logger.Warn("Ollama initialization failed, using stub generator", "error", err)
			break
		}
		return g
	}

	return &rag.StubGenerator{}
}

func main() {
	cfgPath := flag.String("config", "cfg/config.yaml", "Configuration file for the policy helper")
	flag.Parse()

	cfg, err := readConfig(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		log.Fatalf("failed to open log file: %s", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	embedder, err := createEmbedder(cfg)
	if err != nil {
		log.Fatal(err)
	}

	openCtx, openCancel := context.WithTimeout(ctx, 10*time.Second)
	store, fallback := docstore.Open(openCtx, logger, docstore.Options{
		Backend:    cfg.VectorStore.Backend,
		ChromaAddr: cfg.VectorStore.ChromaAddr,
		Collection: cfg.VectorStore.Collection,
	})
	openCancel()

	guide := ingest.LoadGuide(cfg.DocRoot)
	generator := createGenerator(ctx, logger, cfg, guide)

	engine := rag.NewEngine(rag.EngineConfig{
		Log:          logger,
		Store:        store,
		Embedder:     embedder,
		Generator:    generator,
		FallbackUsed: fallback,
	})

	loader := ingest.NewLoader(logger, cfg.DocRoot,
		ingest.NewChunkifier(cfg.ChunkSize, cfg.ChunkOverlap),
		&readers.MarkdownFileReader{},
		&readers.UniversalFileReader{})

	reg := ingest.NewRegistry(logger, cfg.DocRoot,
		time.Duration(cfg.MergeEventsMs)*time.Millisecond,
		func(ctx context.Context) error {
			chunks, err := loader.Load()
			if err != nil {
				return err
			}
			_, _, err = engine.IngestChunks(ctx, chunks)
			return err
		})

	if err := reg.Sync(ctx); err != nil {
		logger.Warn("initial corpus sync failed", "error", err)
	}
	if err := reg.Watch(ctx); err != nil {
		logger.Warn("corpus watch unavailable", "error", err)
	}

	if cfg.MCPAddr != "" {
		srv := NewMCPServer(engine)
		sse := server.NewSSEServer(srv, server.WithBaseURL(fmt.Sprintf("http://%s", cfg.MCPAddr)))
		go func() {
			if err := sse.Start(cfg.MCPAddr); err != nil {
				logger.Error("MCP server stopped", "error", err)
			}
		}()
	}

	router := newRouter(&apiServer{log: logger, engine: engine, loader: loader})
	log.Println(router.Run(cfg.ServerAddr))
}
