package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/gamma-omg/policy-helper/ingest"
)

// Generator produces the final answer text from a query and the selected
// context chunks. Networked implementations must surface transport and
// authentication failures as errors, never as an empty answer.
type Generator interface {
	Generate(ctx context.Context, query string, contexts []ingest.Chunk) (string, error)
	Model() string
}

const systemPromptBase = "You are a helpful company policy assistant. Cite sources by title and section when relevant."

const requiredOutputFormat = "You MUST respond in the following format:\n\n" +
	"Answer:\n" +
	"<2-4 sentence direct answer for the user>\n\n" +
	"Sources:\n" +
	"- <Document_Title.md> — <Section>\n" +
	"- <Document_Title.md> — <Section>\n\n" +
	"Details:\n" +
	"<Any additional explanation or important policy notes>"

// contextTextLimit caps how much of each chunk goes into the prompt.
const contextTextLimit = 600

// systemPrompt builds the instruction block shared by every provider: base
// role, the operator guidance document verbatim when present, and the
// mandated output template.
func systemPrompt(guide string) string {
	var b strings.Builder
	b.WriteString(systemPromptBase)
	if guide != "" {
		b.WriteString("\n\nInternal SOP for agents:\n")
		b.WriteString(guide)
	}
	b.WriteString("\n\n")
	b.WriteString(requiredOutputFormat)

	return b.String()
}

// userPrompt builds the user-visible block: the question plus each context's
// title, section and truncated text.
func userPrompt(query string, contexts []ingest.Chunk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\nSources:\n", query)
	for _, c := range contexts {
		fmt.Fprintf(&b, "- %s | %s\n%s\n---\n", c.Title, c.Section, truncate(c.Text, contextTextLimit))
	}
	b.WriteString("Write a concise, accurate answer grounded in the sources. If unsure, say so.")

	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}

// StubGenerator is the deterministic offline default. It satisfies the output
// contract by echoing sources and truncated context text, with zero network
// dependency.
type StubGenerator struct{}

func (g *StubGenerator) Generate(_ context.Context, _ string, contexts []ingest.Chunk) (string, error) {
	var sources []string
	var texts []string
	for _, c := range contexts {
		section := c.Section
		if section == "" {
			section = "Section"
		}
		sources = append(sources, fmt.Sprintf("- %s — %s", c.Title, section))
		texts = append(texts, c.Text)
	}

	details := strings.Join(texts, " ")
	if len([]rune(details)) > contextTextLimit {
		details = truncate(details, contextTextLimit) + "..."
	}

	lines := []string{
		"Answer (stub):",
		"Based on the policy documents below, here is a summary answer",
		"",
		"Sources:",
	}
	lines = append(lines, sources...)
	lines = append(lines, "", "Details:", details)

	return strings.Join(lines, "\n"), nil
}

func (g *StubGenerator) Model() string {
	return "stub"
}
