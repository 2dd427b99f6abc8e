package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gamma-omg/policy-helper/rag"
)

// NewMCPServer exposes the ask pipeline as an MCP tool, so agent runtimes can
// query the policy corpus over SSE alongside the HTTP API.
func NewMCPServer(engine *rag.Engine) *server.MCPServer {
	tool := mcp.NewTool("ask_policy",
		mcp.WithDescription("Answers questions about company policy and product documents, with citations"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The question to answer"),
		))

	srv := server.NewMCPServer("policy-helper", "0.1.0", server.WithToolCapabilities(false))
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		contexts, err := engine.Retrieve(ctx, q, defaultTopK)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		answer, err := engine.Answer(ctx, q, contexts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var response string
		for _, c := range contexts {
			raw, err := json.Marshal(struct {
				Title   string `json:"title"`
				Section string `json:"section"`
				Text    string `json:"text"`
			}{
				Title:   c.Title,
				Section: c.Section,
				Text:    c.Text,
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			response += fmt.Sprintf("%s\n", string(raw))
		}

		return mcp.NewToolResultText(answer + "\n\n" + response), nil
	})

	return srv
}
