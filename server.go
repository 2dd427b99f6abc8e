package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamma-omg/policy-helper/ingest"
	"github.com/gamma-omg/policy-helper/rag"
)

const defaultTopK = 4

type apiServer struct {
	log    *slog.Logger
	engine *rag.Engine
	loader *ingest.Loader
}

type askRequest struct {
	Query string `json:"query" binding:"required"`
	K     *int   `json:"k"`
}

type citation struct {
	Title   string `json:"title"`
	Section string `json:"section"`
}

type chunkResponse struct {
	Title   string `json:"title"`
	Section string `json:"section"`
	Text    string `json:"text"`
}

// askMetrics mirrors the stats snapshot plus the legacy flat latency fields
// older clients still read.
type askMetrics struct {
	rag.Stats
	RetrievalMs  float64 `json:"retrieval_ms"`
	GenerationMs float64 `json:"generation_ms"`
}

type askResponse struct {
	Query     string          `json:"query"`
	Answer    string          `json:"answer"`
	Citations []citation      `json:"citations"`
	Chunks    []chunkResponse `json:"chunks"`
	Metrics   askMetrics      `json:"metrics"`
}

type ingestResponse struct {
	IndexedDocs   int `json:"indexed_docs"`
	IndexedChunks int `json:"indexed_chunks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newRouter(srv *apiServer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/health", srv.handleHealth)
		api.GET("/metrics", srv.handleMetrics)
		api.POST("/ingest", srv.handleIngest)
		api.POST("/ask", srv.handleAsk)
	}

	return router
}

func (s *apiServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *apiServer) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Stats())
}

func (s *apiServer) handleIngest(c *gin.Context) {
	chunks, err := s.loader.Load()
	if err != nil {
		if errors.Is(err, ingest.ErrCorpusNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	newDocs, newChunks, err := s.engine.IngestChunks(c.Request.Context(), chunks)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ingestResponse{IndexedDocs: newDocs, IndexedChunks: newChunks})
}

func (s *apiServer) handleAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	k := defaultTopK
	if req.K != nil {
		k = *req.K
	}

	contexts, err := s.engine.Retrieve(c.Request.Context(), req.Query, k)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	answer, err := s.engine.Answer(c.Request.Context(), req.Query, contexts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	citations := make([]citation, 0, len(contexts))
	chunks := make([]chunkResponse, 0, len(contexts))
	for _, ctx := range contexts {
		citations = append(citations, citation{Title: ctx.Title, Section: ctx.Section})
		chunks = append(chunks, chunkResponse{Title: ctx.Title, Section: ctx.Section, Text: ctx.Text})
	}

	stats := s.engine.Stats()
	c.JSON(http.StatusOK, askResponse{
		Query:     req.Query,
		Answer:    answer,
		Citations: citations,
		Chunks:    chunks,
		Metrics: askMetrics{
			Stats:        stats,
			RetrievalMs:  stats.AvgRetrievalLatencyMs,
			GenerationMs: stats.AvgGenerationLatencyMs,
		},
	})
}
