package scanner_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/expressx/internal/adapters/decorator"
	"go.trai.ch/expressx/internal/adapters/fs"
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/engine/scanner"
)

func newProject(t *testing.T, files map[string]string) *domain.ProjectConfig {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return &domain.ProjectConfig{Root: root, SourceDir: "src", OutDir: "dist"}
}

func newScanner(t *testing.T, tracking domain.TrackingConfig, opts ...scanner.Option) *scanner.Scanner {
	t.Helper()
	ex, err := fs.NewExclusions()
	require.NoError(t, err)
	return scanner.NewScanner(fs.NewWalker(ex, nil), fs.NewProbe(), decorator.New(tracking), fs.NewHasher(), tracking, opts...)
}

type recordingProgress struct {
	mu       sync.Mutex
	advances [][2]int
	done     int
}

func (p *recordingProgress) Advance(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advances = append(p.advances, [2]int{done, total})
}

func (p *recordingProgress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
}

func TestScan_ThreeFileTree(t *testing.T) {
	cfg := newProject(t, map[string]string{
		"src/user.service.ts":    "@Service()\nexport class UserService {}\n",
		"src/user.controller.ts": "@Controller('/a')\nexport class UserController {}\n",
		"src/util.ts":            "export const add = (a: number, b: number) => a + b\n",
	})

	cache, stats, err := newScanner(t, domain.DefaultTrackingConfig()).Scan(context.Background(), cfg, domain.EnvDevelopment)
	require.NoError(t, err)

	assert.Equal(t, domain.CacheFormatVersion, cache.Version)
	assert.Equal(t, domain.EnvDevelopment, cache.Environment)
	assert.Equal(t, 3, cache.TotalScanned)
	assert.ElementsMatch(t, []string{"src/user.service.ts", "src/user.controller.ts"}, cache.Paths())
	assert.False(t, cache.GeneratedAt.IsZero())

	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, 2, stats.DecoratorFiles)
	assert.Equal(t, "src", stats.Root)
	assert.Equal(t, ".ts", stats.Extension)

	entry, ok := cache.Lookup("src/user.service.ts")
	require.True(t, ok)
	info, err := os.Stat(filepath.Join(cfg.Root, "src", "user.service.ts"))
	require.NoError(t, err)
	assert.Equal(t, info.Size(), entry.Size)
	assert.InDelta(t, domain.MTime(info.ModTime()), entry.ModTime, 0.001)
	assert.Empty(t, entry.Hash)
}

func TestScan_Idempotent(t *testing.T) {
	cfg := newProject(t, map[string]string{
		"src/a.controller.ts":    "@Controller('/a')\nexport class A {}\n",
		"src/nested/b.guard.ts":  "@Guard()\nexport class B {}\n",
		"src/nested/c.helper.ts": "export const c = 1\n",
	})
	s := newScanner(t, domain.DefaultTrackingConfig())

	first, _, err := s.Scan(context.Background(), cfg, domain.EnvDevelopment)
	require.NoError(t, err)
	second, _, err := s.Scan(context.Background(), cfg, domain.EnvDevelopment)
	require.NoError(t, err)

	assert.ElementsMatch(t, first.Paths(), second.Paths())
	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, first.TotalScanned, second.TotalScanned)
}

func TestScan_BatchSizeHasNoEffect(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		files["src/"+name+".service.ts"] = "@Service()\nexport class S {}\n"
		files["src/"+name+".util.ts"] = "export const x = 1\n"
	}
	cfg := newProject(t, files)

	progress := &recordingProgress{}
	small, _, err := newScanner(t, domain.DefaultTrackingConfig(),
		scanner.WithBatchSize(3), scanner.WithParallelism(2), scanner.WithProgress(progress),
	).Scan(context.Background(), cfg, domain.EnvDevelopment)
	require.NoError(t, err)

	large, _, err := newScanner(t, domain.DefaultTrackingConfig(), scanner.WithBatchSize(1000)).
		Scan(context.Background(), cfg, domain.EnvDevelopment)
	require.NoError(t, err)

	assert.Equal(t, large.Entries, small.Entries)
	assert.Equal(t, 10, small.TotalScanned)
	assert.Equal(t, [][2]int{{3, 10}, {6, 10}, {9, 10}, {10, 10}}, progress.advances)
	assert.Equal(t, 1, progress.done)
}

func TestScan_Exclusions(t *testing.T) {
	cfg := newProject(t, map[string]string{
		"src/app.ts":                         "@Application()\nexport class App {}\n",
		"src/app.spec.ts":                    "@Controller()\nclass Fake {}\n",
		"src/types.d.ts":                     "@Service()\n",
		"src/node_modules/lib/index.ts":      "@Service()\n",
		"src/.expressx/leftover.ts":          "@Service()\n",
		"src/modules/dist/compiled.ts":       "@Service()\n",
		"src/modules/users/users.service.ts": "export const notDecorated = true\n",
	})

	cache, _, err := newScanner(t, domain.DefaultTrackingConfig()).Scan(context.Background(), cfg, domain.EnvDevelopment)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/app.ts"}, cache.Paths())
	assert.Equal(t, 2, cache.TotalScanned)
}

func TestScan_Production(t *testing.T) {
	cfg := newProject(t, map[string]string{
		"dist/user.controller.js": "let UserController = class {};\nUserController = __decorate([\n  (0, core_1.Controller)('/users')\n], UserController);\n@Controller('/users')\n",
		"dist/user.controller.ts": "@Controller('/users')\n",
		"dist/main.js":            "require('./user.controller')\n",
	})

	cache, stats, err := newScanner(t, domain.DefaultTrackingConfig()).Scan(context.Background(), cfg, domain.EnvProduction)
	require.NoError(t, err)

	assert.Equal(t, domain.EnvProduction, cache.Environment)
	assert.Equal(t, []string{"dist/user.controller.js"}, cache.Paths())
	assert.Equal(t, 2, cache.TotalScanned)
	assert.Equal(t, ".js", stats.Extension)
}

func TestScan_ContentHash(t *testing.T) {
	cfg := newProject(t, map[string]string{
		"src/user.service.ts": "@Service()\nexport class UserService {}\n",
	})
	tracking := domain.NewTrackingConfig(domain.DefaultDecorators, "", domain.CacheFormatVersion, true)

	cache, _, err := newScanner(t, tracking).Scan(context.Background(), cfg, domain.EnvDevelopment)
	require.NoError(t, err)

	require.Len(t, cache.Entries, 1)
	assert.Equal(t, fs.NewHasher().HashDecorators([]byte("@Service()\nexport class UserService {}\n")), cache.Entries[0].Hash)
}

func TestScan_MissingRoot(t *testing.T) {
	cfg := newProject(t, nil)

	_, _, err := newScanner(t, domain.DefaultTrackingConfig()).Scan(context.Background(), cfg, domain.EnvProduction)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrDirectoryNotFound)
	assert.Contains(t, err.Error(), "cannot scan production tree")
}

func TestScan_EmptyTree(t *testing.T) {
	cfg := newProject(t, map[string]string{"src/README.md": "# docs\n"})

	cache, stats, err := newScanner(t, domain.DefaultTrackingConfig()).Scan(context.Background(), cfg, domain.EnvDevelopment)
	require.NoError(t, err)
	assert.Empty(t, cache.Entries)
	assert.NotNil(t, cache.Entries)
	assert.Zero(t, cache.TotalScanned)
	assert.Zero(t, stats.Efficiency())
}

func TestScan_Cancelled(t *testing.T) {
	cfg := newProject(t, map[string]string{"src/a.service.ts": "@Service()\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newScanner(t, domain.DefaultTrackingConfig()).Scan(ctx, cfg, domain.EnvDevelopment)
	require.ErrorIs(t, err, context.Canceled)
}
