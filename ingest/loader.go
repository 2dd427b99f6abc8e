// Package ingest turns a directory of policy documents into embeddable
// chunks: heading-delimited sections, priority classification, overlapping
// word windows and content fingerprints.
package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// GuideFile is the reserved operator guidance document. It is injected into
// generator instructions at engine construction and must never show up among
// retrieved chunks or citations.
const GuideFile = "Internal_SOP_Agent_Guide.md"

// ErrCorpusNotFound reports a missing corpus directory at ingest time.
var ErrCorpusNotFound = errors.New("corpus directory not found")

// FileReader extracts plain text from one class of corpus files.
type FileReader interface {
	CanRead(path string) bool
	ReadText(path string) (string, error)
}

// Loader reads the corpus directory and produces chunks ready for ingestion.
type Loader struct {
	log        *slog.Logger
	root       string
	chunkifier *Chunkifier
	readers    []FileReader
}

func NewLoader(log *slog.Logger, root string, chunkifier *Chunkifier, readers ...FileReader) *Loader {
	return &Loader{
		log:        log,
		root:       root,
		chunkifier: chunkifier,
		readers:    readers,
	}
}

// Load walks the corpus directory and returns chunks for every readable
// document. The guide file and files no reader supports are skipped; a file
// that fails to read is logged and skipped so one bad document cannot sink
// the whole ingest.
func (l *Loader) Load() ([]Chunk, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, l.root)
		}
		return nil, fmt.Errorf("failed to read corpus directory: %w", err)
	}

	var chunks []Chunk
	for _, e := range entries {
		if e.IsDir() || e.Name() == GuideFile {
			continue
		}

		path := filepath.Join(l.root, e.Name())
		reader, err := l.findReader(path)
		if err != nil {
			l.log.Warn("unsupported corpus file", "path", path)
			continue
		}

		text, err := reader.ReadText(path)
		if err != nil {
			l.log.Warn("failed to read corpus file", "path", path, "error", err)
			continue
		}

		sections := SplitSections(text)
		for i := range sections {
			sections[i].Title = e.Name()
		}

		chunks = append(chunks, BuildChunks(sections, l.chunkifier)...)
	}

	return chunks, nil
}

// LoadGuide reads the operator guidance document, returning "" when the
// corpus has none.
func LoadGuide(root string) string {
	buf, err := os.ReadFile(filepath.Join(root, GuideFile))
	if err != nil {
		return ""
	}

	return string(buf)
}

func (l *Loader) findReader(path string) (FileReader, error) {
	for _, r := range l.readers {
		if r.CanRead(path) {
			return r, nil
		}
	}

	return nil, fmt.Errorf("unable to find reader for file type: %s", filepath.Ext(path))
}
