// Package readers extracts plain text from the supported corpus file types.
package readers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MarkdownFileReader reads UTF-8 markdown and plain text files, the native
// corpus format. Invalid byte sequences are dropped rather than failing the
// whole file.
type MarkdownFileReader struct{}

func (r *MarkdownFileReader) CanRead(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".txt" || ext == ".markdown"
}

func (r *MarkdownFileReader) ReadText(path string) (string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}

	return strings.ToValidUTF8(string(buf), ""), nil
}
