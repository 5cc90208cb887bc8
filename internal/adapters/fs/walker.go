// Package fs provides file system adapters for walking, probing and hashing source files.
package fs

import (
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"go.trai.ch/expressx/internal/core/ports"
)

var _ ports.FileWalker = (*Walker)(nil)

// Walker enumerates candidate source files beneath a root.
type Walker struct {
	exclusions *Exclusions
	logger     ports.Logger
}

// NewWalker creates a Walker pruning the given exclusions. Unreadable
// subtrees are reported to logger, which may be nil.
func NewWalker(exclusions *Exclusions, logger ports.Logger) *Walker {
	return &Walker{exclusions: exclusions, logger: logger}
}

// WalkFiles yields the absolute paths of files under root whose name ends in
// ext, skipping excluded directories and files. Entries below root that cannot
// be read are skipped with a warning. An unreadable root ends the iteration
// and its error is returned through errp when it is non-nil.
func (w *Walker) WalkFiles(root, ext string, errp *error) iter.Seq[string] {
	return func(yield func(string) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				w.warn(fmt.Sprintf("Skipping %s: %v", path, err))
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}

			if d.IsDir() {
				if w.exclusions.Dir(rel) {
					return filepath.SkipDir
				}
				return nil
			}

			if !strings.HasSuffix(d.Name(), ext) || w.exclusions.File(rel) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
		if errp != nil {
			*errp = err
		}
	}
}

func (w *Walker) warn(msg string) {
	if w.logger != nil {
		w.logger.Warn(msg)
	}
}
