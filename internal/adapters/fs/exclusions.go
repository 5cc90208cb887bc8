package fs

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultExclusions are the glob patterns never scanned or watched. They are
// matched against slash paths relative to the scanned root.
var DefaultExclusions = []string{
	"**/node_modules/**",
	"**/*.spec.ts",
	"**/*.test.ts",
	"**/*.spec.js",
	"**/*.test.js",
	"**/*.d.ts",
	"**/dist/**",
	"**/build/**",
	"**/" + domain.CacheDirName + "/**",
	"**/.git/**",
}

// Exclusions matches paths against a fixed list of doublestar patterns.
type Exclusions struct {
	patterns []string
}

// NewExclusions validates patterns and returns a matcher. Without patterns the
// DefaultExclusions are used.
func NewExclusions(patterns ...string) (*Exclusions, error) {
	if len(patterns) == 0 {
		patterns = DefaultExclusions
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, zerr.With(zerr.New("invalid exclusion pattern"), "pattern", p)
		}
	}
	return &Exclusions{patterns: patterns}, nil
}

// File reports whether the file at rel is excluded.
func (e *Exclusions) File(rel string) bool {
	return e.match(filepath.ToSlash(rel))
}

// Dir reports whether everything beneath the directory at rel is excluded.
func (e *Exclusions) Dir(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return false
	}
	return e.match(strings.TrimSuffix(rel, "/") + "/")
}

func (e *Exclusions) match(rel string) bool {
	for _, p := range e.patterns {
		if doublestar.MatchUnvalidated(p, rel) {
			return true
		}
	}
	return false
}
