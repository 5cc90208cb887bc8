// Package domain contains the core types of the expressx developer tooling.
package domain

import (
	"slices"
	"time"
)

// CacheFormatVersion is the cache layout understood by this build. Caches
// carrying any other tag are discarded and regenerated.
const CacheFormatVersion = "1.0.0"

// CacheEntry is one tracked source file.
type CacheEntry struct {
	// Path is project-root-relative with forward slashes. Unique within a cache.
	Path string `json:"path"`
	// ModTime is the last observed modification time in milliseconds since
	// the Unix epoch, with sub-millisecond precision in the fraction.
	ModTime float64 `json:"mtime"`
	// Size is the byte length of the file at last observation.
	Size int64 `json:"size"`
	// Hash is a digest of the decorator-relevant lines, when enabled.
	Hash string `json:"hash,omitempty"`
}

// DecoratorCache is the persisted index of files declaring framework decorators.
type DecoratorCache struct {
	Version      string       `json:"version"`
	Entries      []CacheEntry `json:"decoratorFiles"`
	TotalScanned int          `json:"totalScanned"`
	GeneratedAt  time.Time    `json:"generatedAt"`
	Environment  Environment  `json:"environment"`
}

// NewDecoratorCache returns an empty cache stamped with the given version.
func NewDecoratorCache(version string, env Environment) *DecoratorCache {
	return &DecoratorCache{
		Version:     version,
		Entries:     []CacheEntry{},
		GeneratedAt: time.Now().UTC(),
		Environment: env,
	}
}

// MTime converts a file modification time to the cache representation.
func MTime(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Millisecond)
}

// Index returns the position of the entry with the given path, or -1.
func (c *DecoratorCache) Index(path string) int {
	return slices.IndexFunc(c.Entries, func(e CacheEntry) bool {
		return e.Path == path
	})
}

// Lookup returns the entry with the given path.
func (c *DecoratorCache) Lookup(path string) (CacheEntry, bool) {
	if i := c.Index(path); i >= 0 {
		return c.Entries[i], true
	}
	return CacheEntry{}, false
}

// Paths returns the tracked paths in entry order.
func (c *DecoratorCache) Paths() []string {
	paths := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		paths[i] = e.Path
	}
	return paths
}

// Clone returns a deep copy of the cache.
func (c *DecoratorCache) Clone() *DecoratorCache {
	clone := *c
	clone.Entries = slices.Clone(c.Entries)
	if clone.Entries == nil {
		clone.Entries = []CacheEntry{}
	}
	return &clone
}

// Replace overwrites c in place with the contents of other, keeping c's identity.
func (c *DecoratorCache) Replace(other *DecoratorCache) {
	*c = *other.Clone()
}

// Reset clears all entries and scan statistics while keeping the version
// and environment, so holders of the pointer observe an empty index.
func (c *DecoratorCache) Reset() {
	c.Entries = []CacheEntry{}
	c.TotalScanned = 0
	c.GeneratedAt = time.Now().UTC()
}

// Touch stamps a new generation time.
func (c *DecoratorCache) Touch() {
	c.GeneratedAt = time.Now().UTC()
}
