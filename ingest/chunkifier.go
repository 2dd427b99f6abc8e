package ingest

import "strings"

// Chunkifier slices section text into overlapping word windows.
type Chunkifier struct {
	chunkSize    int
	chunkOverlap int
}

func NewChunkifier(size, overlap int) *Chunkifier {
	return &Chunkifier{chunkSize: size, chunkOverlap: overlap}
}

// Chunkify splits text into windows of chunkSize words, each window starting
// chunkSize-chunkOverlap words after the previous one. The last window may be
// shorter; every word lands in at least one chunk.
func (c *Chunkifier) Chunkify(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}
	}

	step := c.chunkSize - c.chunkOverlap
	res := make([]string, 0, len(words)/step+1)

	pos := 0
	for {
		end := min(pos+c.chunkSize, len(words))
		res = append(res, strings.Join(words[pos:end], " "))
		if end >= len(words) {
			break
		}

		pos += step
	}

	return res
}
