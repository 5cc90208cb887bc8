package ports

import "iter"

// FileWalker enumerates candidate source files beneath a root, honoring the
// fixed exclusion list.
type FileWalker interface {
	// WalkFiles yields absolute paths of files under root ending in ext.
	// A walk error ends the iteration and is stored in errp when non-nil.
	WalkFiles(root, ext string, errp *error) iter.Seq[string]
}
