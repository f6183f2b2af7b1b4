package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/gameshelf/internal/testutil"
)

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"Halo: Reach":                  "Halo - Reach",
		"Ratchet & Clank":              "Ratchet & Clank",
		"AC/DC Live":                   "AC-DC Live",
		"What Remains of Edith Finch?": "What Remains of Edith Finch",
		`"Quoted" <Title> | Part*`:     "'Quoted' Title - Part",
	}
	for input, want := range tests {
		assert.Equal(t, want, SanitizeFilename(input), "input %q", input)
	}
}

func TestGetMarkdownFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("notes", "games", "Halo - Reach.md"), GetMarkdownFilePath("Halo: Reach", filepath.Join("notes", "games")))
}

func TestFileExists(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("a.txt", "x")
	env.MkdirAll("dir")

	assert.True(t, FileExists(env.Path("a.txt")))
	assert.False(t, FileExists(env.Path("dir")))
	assert.False(t, FileExists(env.Path("missing.txt")))
}

func TestWriteFileWithOverwrite(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("nested", "dir", "note.md")

	written, err := WriteFileWithOverwrite(path, []byte("first"), 0o644, false)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteFileWithOverwrite(path, []byte("second"), 0o644, false)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, "first", env.ReadFileString("nested/dir/note.md"))

	written, err = WriteFileWithOverwrite(path, []byte("third"), 0o644, true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "third", env.ReadFileString("nested/dir/note.md"))
}

func TestWriteJSONFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("out", "games.json")

	data := []map[string]any{{"title": "Halo", "year": 2001}}
	written, err := WriteJSONFile(data, path, false)
	require.NoError(t, err)
	assert.True(t, written)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Halo", decoded[0]["title"])

	written, err = WriteJSONFile([]string{"ignored"}, path, false)
	require.NoError(t, err)
	assert.False(t, written)
}

func TestWriteJSONFile_InvalidData(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, err := WriteJSONFile(map[string]any{"ch": make(chan int)}, env.Path("bad.json"), true)
	require.Error(t, err)
	assert.False(t, env.FileExists("bad.json"))
}
