// Package cachestore persists decorator caches as JSON files under the
// hidden cache directory of each environment root.
package cachestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore.
type Store struct {
	logger  ports.Logger
	version string
}

// NewStore creates a Store accepting only caches stamped with version.
func NewStore(logger ports.Logger, version string) *Store {
	return &Store{logger: logger, version: version}
}

// ResolvePath returns <root>/<sourceDir|outDir>/.expressx/cache.json.
func (s *Store) ResolvePath(cfg *domain.ProjectConfig, env domain.Environment) string {
	return cfg.CacheFile(env)
}

// Load reads the cache for env. A missing file yields nil, nil, as do an
// unparsable file and a foreign version or environment tag, which are logged
// as warnings.
func (s *Store) Load(cfg *domain.ProjectConfig, env domain.Environment) (*domain.DecoratorCache, error) {
	path := s.ResolvePath(cfg, env)

	//nolint:gosec // Path is derived from the project configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path)
	}

	var cache domain.DecoratorCache
	if err := json.Unmarshal(data, &cache); err != nil {
		s.logger.Warn(fmt.Sprintf("Failed to read cache %s, will regenerate: %v", domain.CacheSlashPath(cfg.EnvDir(env)), err))
		return nil, nil
	}

	if cache.Version != s.version {
		s.logger.Warn(fmt.Sprintf("Cache version mismatch (found %q, expected %q), will regenerate", cache.Version, s.version))
		return nil, nil
	}

	if cache.Environment != "" && cache.Environment != env {
		s.logger.Warn(fmt.Sprintf("Cache environment mismatch (found %q, expected %q), will regenerate", cache.Environment, env))
		return nil, nil
	}

	if cache.Entries == nil {
		cache.Entries = []domain.CacheEntry{}
	}
	cache.Environment = env

	return &cache, nil
}

// Save writes the whole cache to the location of its environment. The file is
// written to a temporary sibling first and renamed into place, so readers
// never observe a partial document.
func (s *Store) Save(cfg *domain.ProjectConfig, cache *domain.DecoratorCache) error {
	path := s.ResolvePath(cfg, cache.Environment)

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "dir", dir)
	}

	tmp, err := os.CreateTemp(dir, domain.CacheFileName+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}

	return nil
}
