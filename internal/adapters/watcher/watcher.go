// Package watcher implements recursive file system watching of a source tree
// with per-path write settling.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	xfs "go.trai.ch/expressx/internal/adapters/fs"
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	logger     ports.Logger
	exclusions *xfs.Exclusions
	settler    *Settler

	spec  ports.WatchSpec
	files map[string]struct{}
	dirs  map[string]struct{}

	// watched and known are owned by the event loop once Start returns.
	watched map[string]struct{}
	known   map[string]struct{}

	settled  chan domain.FileEvent
	events   chan domain.FileEvent
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher that filters paths through exclusions and
// holds back add and change events until they have been quiet for settle.
func NewWatcher(logger ports.Logger, exclusions *xfs.Exclusions, settle time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	w := &Watcher{
		fsWatcher:  watcher,
		logger:     logger,
		exclusions: exclusions,
		files:      make(map[string]struct{}),
		dirs:       make(map[string]struct{}),
		watched:    make(map[string]struct{}),
		known:      make(map[string]struct{}),
		settled:    make(chan domain.FileEvent),
		events:     make(chan domain.FileEvent, eventChannelBuffer),
		done:       make(chan struct{}),
	}
	w.settler = NewSettler(settle, w.deliver)
	return w, nil
}

// Start watches spec.Root recursively and the parent directories of spec.Files.
func (w *Watcher) Start(ctx context.Context, spec ports.WatchSpec) error {
	w.spec = spec

	dirs, files := w.walkTree(spec.Root)
	for _, dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "dir", dir)
		}
		w.watched[dir] = struct{}{}
	}
	for _, file := range files {
		w.known[file] = struct{}{}
	}

	for _, file := range spec.Files {
		w.files[file] = struct{}{}
		w.dirs[filepath.Dir(file)] = struct{}{}
		if err := w.fsWatcher.Add(filepath.Dir(file)); err != nil {
			w.logger.Warn(fmt.Sprintf("Cannot watch %s: %v", filepath.Dir(file), err))
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.settler.Stop()
		err = w.fsWatcher.Close()
	})
	return err
}

// Events returns an iterator of settled file events. It ends when the
// watcher is stopped or its context is cancelled.
func (w *Watcher) Events() iter.Seq[domain.FileEvent] {
	return func(yield func(domain.FileEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// walkTree returns root and every directory beneath it that is not excluded,
// together with the source files found in them.
func (w *Watcher) walkTree(root string) (dirs, files []string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Unreadable directories are not watched
		}
		if !d.IsDir() {
			if w.sourceFile(path) {
				files = append(files, path)
			}
			return nil
		}
		if path != w.spec.Root {
			if rel, relErr := filepath.Rel(w.spec.Root, path); relErr == nil && w.exclusions.Dir(rel) {
				return fs.SkipDir
			}
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, files
}

// sourceFile reports whether path lies under the root, carries the watched
// extension and is not excluded.
func (w *Watcher) sourceFile(path string) bool {
	rel, err := filepath.Rel(w.spec.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	if w.spec.Extension != "" && !strings.HasSuffix(path, w.spec.Extension) {
		return false
	}
	return !w.exclusions.File(rel)
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return
		case <-w.done:
			return
		case ev := <-w.settled:
			select {
			case w.events <- ev:
			case <-ctx.Done():
				_ = w.Stop()
				return
			case <-w.done:
				return
			}
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(fmt.Sprintf("File watcher error: %v", err))
		}
	}
}

// deliver hands a settled event back to the event loop.
func (w *Watcher) deliver(ev domain.FileEvent) {
	select {
	case w.settled <- ev:
	case <-w.done:
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := event.Name

	if _, ok := w.files[path]; ok {
		if kind, ok := convertOp(event.Op); ok {
			w.emitNow(domain.FileEvent{Kind: kind, Path: path, Time: time.Now()})
		}
		return
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		if w.dropDir(path) {
			return
		}
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.addDir(path)
			return
		}
	}

	if !w.sourceFile(path) {
		return
	}

	kind, ok := convertOp(event.Op)
	if !ok {
		return
	}
	if kind == domain.EventDeleted {
		delete(w.known, path)
	} else {
		w.known[path] = struct{}{}
	}
	w.submit(domain.FileEvent{Kind: kind, Path: path, Time: time.Now()})
}

// submit passes ev through the settler, delivering it directly when the
// settler does not hold it back.
func (w *Watcher) submit(ev domain.FileEvent) {
	if w.settler.Add(ev) {
		w.emitNow(ev)
	}
}

// addDir starts watching a directory created or moved in after Start and
// reports every source file already inside it as added. Excluded trees are
// only watched when they hold one of the individually tracked files.
func (w *Watcher) addDir(path string) {
	if _, ok := w.dirs[path]; ok {
		if err := w.fsWatcher.Add(path); err != nil {
			w.logger.Warn(fmt.Sprintf("Cannot watch %s: %v", path, err))
		}
		return
	}
	rel, err := filepath.Rel(w.spec.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") || w.exclusions.Dir(rel) {
		return
	}

	dirs, files := w.walkTree(path)
	for _, dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			w.logger.Warn(fmt.Sprintf("Cannot watch %s: %v", dir, err))
			continue
		}
		w.watched[dir] = struct{}{}
	}

	now := time.Now()
	for _, file := range files {
		w.known[file] = struct{}{}
		w.submit(domain.FileEvent{Kind: domain.EventAdded, Path: file, Time: now})
	}
}

// dropDir handles the removal or move of a watched directory. Every known
// source file beneath it is reported as deleted. It reports false when path
// was not a watched directory.
func (w *Watcher) dropDir(path string) bool {
	if _, ok := w.watched[path]; !ok {
		return false
	}

	prefix := path + string(filepath.Separator)
	for dir := range w.watched {
		if dir == path || strings.HasPrefix(dir, prefix) {
			_ = w.fsWatcher.Remove(dir)
			delete(w.watched, dir)
		}
	}

	var gone []string
	for file := range w.known {
		if strings.HasPrefix(file, prefix) {
			gone = append(gone, file)
			delete(w.known, file)
		}
	}
	slices.Sort(gone)

	now := time.Now()
	for _, file := range gone {
		w.submit(domain.FileEvent{Kind: domain.EventDeleted, Path: file, Time: now})
	}
	return true
}

// emitNow delivers ev from the event loop itself, bypassing the settler.
func (w *Watcher) emitNow(ev domain.FileEvent) {
	select {
	case w.events <- ev:
	case <-w.done:
	}
}

func convertOp(op fsnotify.Op) (domain.EventKind, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return domain.EventAdded, true
	case op.Has(fsnotify.Write):
		return domain.EventChanged, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return domain.EventDeleted, true
	default:
		return 0, false
	}
}
