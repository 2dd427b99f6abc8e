package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamma-omg/policy-helper/ingest"
)

func Test_SystemPrompt(t *testing.T) {
	p := systemPrompt("")
	assert.True(t, strings.HasPrefix(p, systemPromptBase))
	assert.Contains(t, p, requiredOutputFormat)
	assert.NotContains(t, p, "Internal SOP for agents:")

	p = systemPrompt("Escalate refunds over 500 EUR.")
	assert.Contains(t, p, "Internal SOP for agents:\nEscalate refunds over 500 EUR.")
	assert.Contains(t, p, requiredOutputFormat)
}

func Test_UserPrompt_TruncatesContexts(t *testing.T) {
	long := strings.Repeat("w", 1000)
	p := userPrompt("what is the refund window?", []ingest.Chunk{
		{Title: "returns.md", Section: "Refund Policy", Text: long},
	})

	assert.Contains(t, p, "Question: what is the refund window?")
	assert.Contains(t, p, "- returns.md | Refund Policy")
	assert.Contains(t, p, strings.Repeat("w", 600))
	assert.NotContains(t, p, strings.Repeat("w", 601))
}

func Test_StubGenerator_OutputContract(t *testing.T) {
	g := &StubGenerator{}

	answer, err := g.Generate(context.Background(), "refund window?", []ingest.Chunk{
		{Title: "returns.md", Section: "Refund Policy", Text: "Refunds within 14 days."},
		{Title: "shipping.md", Section: "", Text: "Delivery takes 3-5 days."},
	})
	require.NoError(t, err)

	assert.Contains(t, answer, "Answer")
	assert.Contains(t, answer, "Sources:")
	assert.Contains(t, answer, "- returns.md — Refund Policy")
	assert.Contains(t, answer, "- shipping.md — Section")
	assert.Contains(t, answer, "Details:")
	assert.Contains(t, answer, "Refunds within 14 days.")
}

func Test_StubGenerator_TruncatesDetails(t *testing.T) {
	g := &StubGenerator{}

	answer, err := g.Generate(context.Background(), "q", []ingest.Chunk{
		{Title: "a.md", Section: "S", Text: strings.Repeat("x", 700)},
	})
	require.NoError(t, err)

	assert.Contains(t, answer, strings.Repeat("x", 600)+"...")
	assert.NotContains(t, answer, strings.Repeat("x", 601))
}

func Test_StubGenerator_Deterministic(t *testing.T) {
	g := &StubGenerator{}
	contexts := []ingest.Chunk{{Title: "a.md", Section: "S", Text: "policy text"}}

	a, err := g.Generate(context.Background(), "q", contexts)
	require.NoError(t, err)
	b, err := g.Generate(context.Background(), "q", contexts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "stub", g.Model())
}
