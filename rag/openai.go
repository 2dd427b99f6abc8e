package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gamma-omg/policy-helper/ingest"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

// OpenAIGenerator answers through the OpenAI chat completions API.
type OpenAIGenerator struct {
	apiKey     string
	model      string
	guide      string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIGenerator(apiKey, model, guide string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is not configured")
	}

	return &OpenAIGenerator{
		apiKey:     apiKey,
		model:      model,
		guide:      guide,
		baseURL:    openAIChatURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type openAIChatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *OpenAIGenerator) Generate(ctx context.Context, query string, contexts []ingest.Chunk) (string, error) {
	body, err := json.Marshal(openAIChatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(g.guide)},
			{Role: "user", Content: userPrompt(query, contexts)},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OpenAI chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI chat request failed with status %d: %s", resp.StatusCode, string(msg))
	}

	var chatResp openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", errors.New("OpenAI returned an empty answer")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) Model() string {
	return "openai:" + g.model
}
