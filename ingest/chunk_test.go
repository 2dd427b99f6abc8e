package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Fingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("same text"), Fingerprint("same text"))
	assert.NotEqual(t, Fingerprint("same text"), Fingerprint("same text!"))
	assert.Len(t, Fingerprint("x"), 64)
}

func Test_BuildChunks_CarriesMetadata(t *testing.T) {
	sections := []Section{
		{
			Title:        "returns.md",
			Heading:      "Refund Policy",
			Body:         "one two three four five",
			HeadingLevel: 2,
			Priority:     PriorityHigh,
		},
	}

	chunks := BuildChunks(sections, NewChunkifier(3, 1))
	require.Len(t, chunks, 2)

	for _, ch := range chunks {
		assert.Equal(t, "returns.md", ch.Title)
		assert.Equal(t, "Refund Policy", ch.Section)
		assert.Equal(t, 2, ch.HeadingLevel)
		assert.Equal(t, PriorityHigh, ch.Priority)
	}

	assert.Equal(t, "one two three", chunks[0].Text)
	assert.Equal(t, "three four five", chunks[1].Text)
}
