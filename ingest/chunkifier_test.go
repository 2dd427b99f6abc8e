package ingest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Chunkify(t *testing.T) {
	var cases = []struct {
		input   string
		size    int
		overlap int
		output  []string
	}{
		{
			input: "one two three four five six seven eight", size: 3, overlap: 1,
			output: []string{"one two three", "three four five", "five six seven", "seven eight"},
		},
		{
			input: "a b c d", size: 2, overlap: 0,
			output: []string{"a b", "c d"},
		},
		{
			input: "a b c", size: 9, overlap: 5,
			output: []string{"a b c"},
		},
		{
			input: "", size: 9, overlap: 5,
			output: []string{},
		},
		{
			input: "  spaced    out\ttokens\n", size: 2, overlap: 1,
			output: []string{"spaced out", "out tokens"},
		},
	}

	for i, c := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			out := NewChunkifier(c.size, c.overlap).Chunkify(c.input)
			assert.Equal(t, c.output, out)
		})
	}
}

func Test_Chunkify_CoversEveryWord(t *testing.T) {
	words := []string{"w0", "w1", "w2", "w3", "w4", "w5", "w6", "w7", "w8", "w9", "w10"}
	chunks := NewChunkifier(4, 2).Chunkify(strings.Join(words, " "))

	covered := make(map[string]bool)
	for _, ch := range chunks {
		for _, w := range strings.Fields(ch) {
			covered[w] = true
		}
	}

	assert.Len(t, covered, len(words))
}
