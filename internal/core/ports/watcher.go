package ports

import (
	"context"
	"iter"
	"time"

	"go.trai.ch/expressx/internal/core/domain"
)

// WatchSpec describes what a Watcher observes.
type WatchSpec struct {
	// Root is the directory watched recursively.
	Root string
	// Extension restricts events to files with this suffix. Empty accepts all files.
	Extension string
	// Files are individual paths watched in addition to the tree. Their
	// events bypass the extension filter and the exclusion list.
	Files []string
}

// Watcher defines the interface for watching file system changes.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching according to spec.
	// It returns an error if the watcher fails to start.
	Start(ctx context.Context, spec WatchSpec) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of settled file events.
	Events() iter.Seq[domain.FileEvent]
}

// WatcherFactory creates watchers with a per-session write-settle window.
type WatcherFactory interface {
	NewWatcher(settle time.Duration) (Watcher, error)
}
