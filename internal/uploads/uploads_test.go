package uploads

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes es un PNG de 1x1 válido (magic + chunks mínimos).
var pngBytes = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
	0x89, 0x00, 0x00, 0x00, 0x0A, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
	0x42, 0x60, 0x82,
}

// memFile adapta un bytes.Reader a multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newMemFile(data []byte) memFile {
	return memFile{bytes.NewReader(data)}
}

func TestStore_StagePromote(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	staged, err := store.Stage(newMemFile(pngBytes), "rex photo.png")
	require.NoError(t, err)
	assert.Contains(t, staged.URL, "rex_photo.png")
	assert.Contains(t, staged.URL, "/uploads/")

	// antes de Promote solo existe el temporal
	_, statErr := os.Stat(staged.finalPath)
	assert.True(t, os.IsNotExist(statErr))

	require.NoError(t, staged.Promote())

	data, err := os.ReadFile(staged.finalPath)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestStore_StageDiscard(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	staged, err := store.Stage(newMemFile(pngBytes), "rex.png")
	require.NoError(t, err)
	staged.Discard()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_Stage_RejectsExtension(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Stage(newMemFile(pngBytes), "script.sh")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestStore_Stage_RejectsMismatchedContent(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	// extensión de imagen pero contenido de texto
	_, err = store.Stage(newMemFile([]byte("#!/bin/sh\nrm -rf /\n")), "photo.png")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	staged, err := store.Stage(newMemFile(pngBytes), "rex.png")
	require.NoError(t, err)
	require.NoError(t, staged.Promote())

	store.Remove(staged.URL)

	_, statErr := os.Stat(staged.finalPath)
	assert.True(t, os.IsNotExist(statErr))

	// URLs que no son del store se ignoran
	store.Remove("https://cdn.example.com/x.png")
	store.Remove("")
}

func TestStore_Remove_IgnoresTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	outside := filepath.Join(filepath.Dir(dir), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))
	defer os.Remove(outside)

	store.Remove("/uploads/../victim.txt")

	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr)
}
