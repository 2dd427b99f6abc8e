package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gamma-omg/policy-helper/ingest"
)

// OllamaGenerator answers through a local Ollama server's chat API.
type OllamaGenerator struct {
	host       string
	model      string
	guide      string
	httpClient *http.Client
}

// NewOllamaGenerator verifies the server is reachable before returning, so an
// unreachable host degrades to the stub at construction instead of failing
// every request later.
func NewOllamaGenerator(ctx context.Context, host, model, guide string) (*OllamaGenerator, error) {
	g := &OllamaGenerator{
		host:       host,
		model:      model,
		guide:      guide,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama probe request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Ollama server unreachable: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("Ollama probe failed with status %d", resp.StatusCode)
	}

	return g, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type ollamaChatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

func (g *OllamaGenerator) Generate(ctx context.Context, query string, contexts []ingest.Chunk) (string, error) {
	body, err := json.Marshal(ollamaChatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(g.guide)},
			{Role: "user", Content: userPrompt(query, contexts)},
		},
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Ollama chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Ollama chat request failed with status %d: %s", resp.StatusCode, string(msg))
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	if chatResp.Message.Content == "" {
		return "", fmt.Errorf("Ollama returned an empty answer")
	}

	return chatResp.Message.Content, nil
}

func (g *OllamaGenerator) Model() string {
	return "ollama:" + g.model
}
