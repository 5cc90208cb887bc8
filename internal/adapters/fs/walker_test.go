package fs_test

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/expressx/internal/adapters/fs"
	"go.trai.ch/expressx/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("// "+f), 0o600))
	}
}

func newWalker(t *testing.T) *fs.Walker {
	t.Helper()
	ex, err := fs.NewExclusions()
	require.NoError(t, err)
	return fs.NewWalker(ex, nil)
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"main.ts",
		"user/user.controller.ts",
		"user/user.controller.spec.ts",
		"user/user.dto.d.ts",
		"user/readme.md",
		"node_modules/lib/index.ts",
		".expressx/cache.ts",
	)

	var walkErr error
	got := slices.Collect(newWalker(t).WalkFiles(root, ".ts", &walkErr))
	require.NoError(t, walkErr)
	slices.Sort(got)

	assert.Equal(t, []string{
		filepath.Join(root, "main.ts"),
		filepath.Join(root, "user", "user.controller.ts"),
	}, got)
}

func TestWalker_Extension(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "main.js", "main.js.map", "main.ts", "user/user.service.js")

	got := slices.Collect(newWalker(t).WalkFiles(root, ".js", nil))
	slices.Sort(got)

	assert.Equal(t, []string{
		filepath.Join(root, "main.js"),
		filepath.Join(root, "user", "user.service.js"),
	}, got)
}

func TestWalker_StopEarly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.ts", "b.ts", "c.ts")

	var walkErr error
	count := 0
	for range newWalker(t).WalkFiles(root, ".ts", &walkErr) {
		count++
		break
	}
	require.NoError(t, walkErr)
	assert.Equal(t, 1, count)
}

func TestWalker_MissingRoot(t *testing.T) {
	var walkErr error
	got := slices.Collect(newWalker(t).WalkFiles(filepath.Join(t.TempDir(), "missing"), ".ts", &walkErr))
	require.Error(t, walkErr)
	assert.Empty(t, got)
}

func TestWalker_SkipsUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for this user")
	}

	root := t.TempDir()
	writeTree(t, root, "main.ts", "locked/secret.controller.ts", "users/user.controller.ts")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	var warning string
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) { warning = msg }).Times(1)

	ex, err := fs.NewExclusions()
	require.NoError(t, err)

	var walkErr error
	got := slices.Collect(fs.NewWalker(ex, log).WalkFiles(root, ".ts", &walkErr))
	require.NoError(t, walkErr)
	slices.Sort(got)

	assert.Equal(t, []string{
		filepath.Join(root, "main.ts"),
		filepath.Join(root, "users", "user.controller.ts"),
	}, got)
	assert.Contains(t, warning, locked)
}
