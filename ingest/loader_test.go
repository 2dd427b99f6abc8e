package ingest

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTextReader struct{}

func (r *fakeTextReader) CanRead(path string) bool {
	return filepath.Ext(path) == ".md" || filepath.Ext(path) == ".txt"
}

func (r *fakeTextReader) ReadText(path string) (string, error) {
	buf, err := os.ReadFile(path)
	return string(buf), err
}

type failingReader struct{}

func (r *failingReader) CanRead(path string) bool { return filepath.Ext(path) == ".bad" }

func (r *failingReader) ReadText(string) (string, error) {
	return "", errors.New("corrupted file")
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_Load(t *testing.T) {
	tmp := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(tmp, name), []byte(content), 0o644))
	}

	write("returns.md", "# Refund Policy\nRefunds are processed within 14 days of receipt.")
	write("shipping.md", "# Shipping guide\nStandard delivery takes 3-5 business days.")
	write(GuideFile, "# Agent instructions\nAlways escalate refunds over 500 EUR.")
	write("image.png", "not a document")

	loader := NewLoader(discard(), tmp, NewChunkifier(50, 5), &fakeTextReader{})
	chunks, err := loader.Load()
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	titles := make(map[string]bool)
	for _, ch := range chunks {
		titles[ch.Title] = true
	}

	assert.True(t, titles["returns.md"])
	assert.True(t, titles["shipping.md"])
	assert.False(t, titles[GuideFile], "guide file must not produce chunks")
	assert.False(t, titles["image.png"])
}

func Test_Load_SkipsUnreadableFiles(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "good.md"), []byte("# Policy\nok"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "broken.bad"), []byte{0xff}, 0o644))

	loader := NewLoader(discard(), tmp, NewChunkifier(50, 5), &fakeTextReader{}, &failingReader{})
	chunks, err := loader.Load()
	require.NoError(t, err)

	for _, ch := range chunks {
		assert.Equal(t, "good.md", ch.Title)
	}
	assert.NotEmpty(t, chunks)
}

func Test_Load_MissingCorpusDir(t *testing.T) {
	loader := NewLoader(discard(), "/does/not/exist", NewChunkifier(50, 5), &fakeTextReader{})
	_, err := loader.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorpusNotFound)
}

func Test_LoadGuide(t *testing.T) {
	tmp := t.TempDir()
	assert.Empty(t, LoadGuide(tmp))

	require.NoError(t, os.WriteFile(filepath.Join(tmp, GuideFile), []byte("guide text"), 0o644))
	assert.Equal(t, "guide text", LoadGuide(tmp))
}
