package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lanshare/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*BlobStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewBlobStore(config.StorageConfig{
		UploadDir:  dir,
		CreateDirs: true,
	}), dir
}

func TestSaveAndOpen(t *testing.T) {
	store, dir := newTestStore(t)

	path, size, err := store.Save(strings.NewReader("content"), "abc_demo.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(7), size)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, dir, filepath.Dir(path))

	file, stat, err := store.Open(path, "abc_demo.txt")
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, int64(7), stat.Size())

	data := make([]byte, 7)
	_, err = file.Read(data)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestResolveFallsBackToCurrentRoot(t *testing.T) {
	store, _ := newTestStore(t)

	_, _, err := store.Save(strings.NewReader("moved"), "abc_moved.txt")
	require.NoError(t, err)

	// Simulate a record whose persisted path predates a root move.
	stale := filepath.Join("/old/root", "abc_moved.txt")
	path, err := store.Resolve(stale, "abc_moved.txt")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "moved", string(data))
}

func TestResolveNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Resolve("/nowhere/at/all", "missing.bin")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = store.Open("", "missing.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	store, _ := newTestStore(t)

	path, _, err := store.Save(strings.NewReader("bye"), "abc_bye.txt")
	require.NoError(t, err)

	store.Remove(path, "abc_bye.txt")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Removing again must be a silent no-op.
	store.Remove(path, "abc_bye.txt")
}

func TestParseFileMode(t *testing.T) {
	mode, err := parseFileMode("0600")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), mode)

	_, err = parseFileMode("rw-r--r--")
	assert.Error(t, err)
}
