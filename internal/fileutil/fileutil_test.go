package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Old Town Noodle House", "Old Town Noodle House"},
		{"Noodles: the sequel", "Noodles - the sequel"},
		{"a/b\\c", "a-b-c"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.input))
	}
}

func TestMarkdownFilePath(t *testing.T) {
	got := MarkdownFilePath("Chez: Nous", "notes")
	assert.Equal(t, filepath.Join("notes", "Chez - Nous.md"), got)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")

	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(dir), "directories are not files")
}

func TestWriteFileWithOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "f.txt")

	written, err := WriteFileWithOverwrite(path, []byte("one"), 0644, false)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteFileWithOverwrite(path, []byte("two"), 0644, false)
	require.NoError(t, err)
	assert.False(t, written, "existing file should be skipped without overwrite")

	written, err = WriteFileWithOverwrite(path, []byte("two"), 0644, true)
	require.NoError(t, err)
	assert.True(t, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(content))
}
