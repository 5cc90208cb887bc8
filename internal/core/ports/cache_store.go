package ports

import "go.trai.ch/expressx/internal/core/domain"

// CacheStore persists decorator caches, one file per environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache_store.go -destination=mocks/mock_cache_store.go -package=mocks
type CacheStore interface {
	// ResolvePath returns the absolute cache file location for env.
	ResolvePath(cfg *domain.ProjectConfig, env domain.Environment) string

	// Load reads the cache for env.
	// Returns nil, nil if the file is absent, unparsable or carries a foreign version tag.
	Load(cfg *domain.ProjectConfig, env domain.Environment) (*domain.DecoratorCache, error)

	// Save writes the full cache to the location of its environment, creating
	// the containing directory when needed.
	Save(cfg *domain.ProjectConfig, cache *domain.DecoratorCache) error
}
