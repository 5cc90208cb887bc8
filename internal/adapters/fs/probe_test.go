package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/expressx/internal/adapters/fs"
	"go.trai.ch/expressx/internal/core/domain"
)

func TestProbe_Stat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))
	mtime := time.Date(2026, 1, 2, 3, 4, 5, 678_900_000, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	probe := fs.NewProbe()
	meta, err := probe.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), meta.Size)
	assert.InDelta(t, domain.MTime(mtime), meta.ModTime, 0.001)

	_, err = probe.Stat(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is a directory")

	_, err = probe.Stat(filepath.Join(dir, "missing.ts"))
	require.Error(t, err)
}

func TestProbe_ReadFileAndExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	probe := fs.NewProbe()
	data, err := probe.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	ok, err := probe.Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = probe.Exists(filepath.Join(dir, "missing.ts"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = probe.ReadFile(filepath.Join(dir, "missing.ts"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
