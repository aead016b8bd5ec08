package images

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

func TestIsImage(t *testing.T) {
	for _, p := range []string{"a.png", "/x/y/B.JPG", "c.jpeg", "d.gif", "e.bmp"} {
		assert.True(t, IsImage(p), p)
	}
	for _, p := range []string{"a.txt", "png", "run.sh", ""} {
		assert.False(t, IsImage(p), p)
	}
}

func TestImport(t *testing.T) {
	src := writeFile(t, t.TempDir(), "cat.png", "PNGDATA")
	s, err := Open(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)

	first, err := s.Import(src)
	require.NoError(t, err)
	second, err := s.Import(src)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each import gets a fresh name")
	assert.True(t, strings.HasSuffix(first, ".png"))
	assert.True(t, s.Has(first))

	data, err := os.ReadFile(s.Path(first))
	require.NoError(t, err)
	assert.Equal(t, "PNGDATA", string(data))
}

func TestImport_Rejects(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "images"))
	require.NoError(t, err)

	_, err = s.Import(writeFile(t, dir, "notes.txt", "x"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = s.Import(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestHasRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "images"))
	require.NoError(t, err)

	assert.False(t, s.Has("abc.png"))
	assert.False(t, s.Has("../escape.png"))

	name, err := s.Import(writeFile(t, dir, "a.gif", "GIF"))
	require.NoError(t, err)
	require.NoError(t, s.Remove(name))
	assert.False(t, s.Has(name))

	assert.ErrorIs(t, s.Remove("a/b.png"), ErrInvalidName)
}
