package cachestore_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/expressx/internal/adapters/cachestore"
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newProject(t *testing.T) *domain.ProjectConfig {
	t.Helper()
	return &domain.ProjectConfig{Root: t.TempDir(), SourceDir: "src", OutDir: "dist"}
}

func sampleCache(env domain.Environment) *domain.DecoratorCache {
	c := domain.NewDecoratorCache(domain.CacheFormatVersion, env)
	c.GeneratedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.TotalScanned = 3
	c.Entries = append(c.Entries,
		domain.CacheEntry{Path: "src/user.controller.ts", ModTime: 1700000000123.456, Size: 512},
		domain.CacheEntry{Path: "src/user.service.ts", ModTime: 1700000000999.5, Size: 256, Hash: "00000000deadbeef"},
	)
	return c
}

func TestStore_ResolvePath(t *testing.T) {
	cfg := newProject(t)
	store := cachestore.NewStore(nil, domain.CacheFormatVersion)

	assert.Equal(t, filepath.Join(cfg.Root, "src", ".expressx", "cache.json"), store.ResolvePath(cfg, domain.EnvDevelopment))
	assert.Equal(t, filepath.Join(cfg.Root, "dist", ".expressx", "cache.json"), store.ResolvePath(cfg, domain.EnvProduction))
}

func TestStore_SaveLoad(t *testing.T) {
	cfg := newProject(t)
	store := cachestore.NewStore(nil, domain.CacheFormatVersion)

	for _, env := range []domain.Environment{domain.EnvDevelopment, domain.EnvProduction} {
		t.Run(env.String(), func(t *testing.T) {
			want := sampleCache(env)
			require.NoError(t, store.Save(cfg, want))

			got, err := store.Load(cfg, env)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, want, got)
		})
	}
}

func TestStore_FileShape(t *testing.T) {
	cfg := newProject(t)
	store := cachestore.NewStore(nil, domain.CacheFormatVersion)
	require.NoError(t, store.Save(cfg, sampleCache(domain.EnvDevelopment)))

	data, err := os.ReadFile(store.ResolvePath(cfg, domain.EnvDevelopment))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "1.0.0", raw["version"])
	assert.Equal(t, "development", raw["environment"])
	assert.Equal(t, "2026-03-01T12:00:00Z", raw["generatedAt"])
	assert.InDelta(t, 3, raw["totalScanned"], 0)

	files, ok := raw["decoratorFiles"].([]any)
	require.True(t, ok)
	require.Len(t, files, 2)
	first := files[0].(map[string]any)
	assert.Equal(t, "src/user.controller.ts", first["path"])
	assert.InDelta(t, 1700000000123.456, first["mtime"], 0.0001)
	assert.NotContains(t, first, "hash")
	assert.Contains(t, files[1].(map[string]any), "hash")

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(store.ResolvePath(cfg, domain.EnvDevelopment)), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestStore_LoadMissing(t *testing.T) {
	cfg := newProject(t)
	store := cachestore.NewStore(nil, domain.CacheFormatVersion)

	got, err := store.Load(cfg, domain.EnvDevelopment)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_LoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "version mismatch", content: `{"version":"0.9.0","decoratorFiles":[{"path":"src/a.ts","mtime":1,"size":1}],"totalScanned":1,"generatedAt":"2026-01-01T00:00:00Z","environment":"development"}`},
		{name: "corrupt", content: `{"version":"1.0.0","decoratorFiles":[`},
		{name: "foreign environment", content: `{"version":"1.0.0","decoratorFiles":[{"path":"dist/a.js","mtime":1,"size":1}],"totalScanned":1,"generatedAt":"2026-01-01T00:00:00Z","environment":"production"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			log := mocks.NewMockLogger(ctrl)
			log.EXPECT().Warn(gomock.Any()).Times(1)

			cfg := newProject(t)
			store := cachestore.NewStore(log, domain.CacheFormatVersion)
			path := store.ResolvePath(cfg, domain.EnvDevelopment)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			got, err := store.Load(cfg, domain.EnvDevelopment)
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	cfg := newProject(t)
	store := cachestore.NewStore(nil, domain.CacheFormatVersion)

	first := sampleCache(domain.EnvDevelopment)
	require.NoError(t, store.Save(cfg, first))

	second := first.Clone()
	second.Entries = second.Entries[:1]
	require.NoError(t, store.Save(cfg, second))

	got, err := store.Load(cfg, domain.EnvDevelopment)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/user.controller.ts"}, got.Paths())
}

func TestStore_LoadFillsMissingEnvironment(t *testing.T) {
	cfg := newProject(t)
	store := cachestore.NewStore(nil, domain.CacheFormatVersion)
	path := store.ResolvePath(cfg, domain.EnvProduction)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	content := `{"version":"1.0.0","decoratorFiles":null,"totalScanned":0,"generatedAt":"2026-01-01T00:00:00Z"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := store.Load(cfg, domain.EnvProduction)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.EnvProduction, got.Environment)
	assert.Empty(t, got.Entries)
}
