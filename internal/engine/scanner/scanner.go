// Package scanner builds a fresh decorator cache by inspecting every
// candidate file of an environment's tree.
package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.TreeScanner = (*Scanner)(nil)

// Scanner walks a tree and records every file that declares decorators.
type Scanner struct {
	walker   ports.FileWalker
	probe    ports.FileProbe
	detector ports.DecoratorDetector
	hasher   ports.Hasher
	tracking domain.TrackingConfig

	batchSize   int
	parallelism int
	progress    ports.ScanProgress
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithBatchSize sets the number of files inspected between progress reports.
func WithBatchSize(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithParallelism bounds the number of files inspected concurrently.
func WithParallelism(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithProgress reports progress after each batch.
func WithProgress(p ports.ScanProgress) Option {
	return func(s *Scanner) {
		if p != nil {
			s.progress = p
		}
	}
}

// NewScanner creates a new Scanner with the given dependencies.
func NewScanner(
	walker ports.FileWalker,
	probe ports.FileProbe,
	detector ports.DecoratorDetector,
	hasher ports.Hasher,
	tracking domain.TrackingConfig,
	opts ...Option,
) *Scanner {
	s := &Scanner{
		walker:      walker,
		probe:       probe,
		detector:    detector,
		hasher:      hasher,
		tracking:    tracking,
		batchSize:   domain.DefaultBatchSize,
		parallelism: runtime.NumCPU(),
		progress:    nopProgress{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan inspects every candidate file of env and returns a new cache holding
// the decorated ones. Entries are sorted by path, so scanning an unchanged
// tree twice yields identical caches apart from the timestamp.
func (s *Scanner) Scan(
	ctx context.Context,
	cfg *domain.ProjectConfig,
	env domain.Environment,
) (*domain.DecoratorCache, domain.ScanStats, error) {
	start := time.Now()
	root := cfg.EnvRoot(env)
	stats := domain.ScanStats{Root: cfg.EnvDir(env), Extension: env.Extension()}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, stats, zerr.With(zerr.Wrap(err, domain.ErrScanFailed.Error()), "path", root)
		}
		return nil, stats, zerr.With(
			zerr.Wrap(domain.ErrDirectoryNotFound, "cannot scan "+env.String()+" tree"),
			"path", root)
	}

	files, err := s.collect(root, env.Extension())
	if err != nil {
		return nil, stats, zerr.With(zerr.Wrap(err, domain.ErrScanFailed.Error()), "path", root)
	}

	entries, err := s.inspect(ctx, cfg, files)
	if err != nil {
		return nil, stats, err
	}

	cache := domain.NewDecoratorCache(s.tracking.Version(), env)
	cache.Entries = entries
	cache.TotalScanned = len(files)

	stats.TotalFiles = len(files)
	stats.DecoratorFiles = len(entries)
	stats.Duration = time.Since(start)

	return cache, stats, nil
}

func (s *Scanner) collect(root, ext string) ([]string, error) {
	var walkErr error
	files := slices.Collect(s.walker.WalkFiles(root, ext, &walkErr))
	if walkErr != nil {
		return nil, walkErr
	}
	return files, nil
}

// inspect runs detection over files in batches. Results are placed by index
// so the outcome does not depend on batch size or completion order.
func (s *Scanner) inspect(ctx context.Context, cfg *domain.ProjectConfig, files []string) ([]domain.CacheEntry, error) {
	results := make([]*domain.CacheEntry, len(files))
	defer s.progress.Done()

	for lo := 0; lo < len(files); lo += s.batchSize {
		hi := min(lo+s.batchSize, len(files))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.parallelism)
		for i := lo; i < hi; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = s.inspectFile(cfg, files[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		s.progress.Advance(hi, len(files))
	}

	entries := make([]domain.CacheEntry, 0, len(files))
	for _, e := range results {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	slices.SortFunc(entries, func(a, b domain.CacheEntry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries, nil
}

// inspectFile returns the entry for path, or nil when the file declares no
// decorators. Files that vanish or become unreadable mid-scan are skipped.
func (s *Scanner) inspectFile(cfg *domain.ProjectConfig, path string) *domain.CacheEntry {
	content, err := s.probe.ReadFile(path)
	if err != nil || !s.detector.HasDecorators(content) {
		return nil
	}

	meta, err := s.probe.Stat(path)
	if err != nil {
		return nil
	}

	rel, err := cfg.RelPath(path)
	if err != nil {
		return nil
	}

	entry := &domain.CacheEntry{Path: rel, ModTime: meta.ModTime, Size: meta.Size}
	if s.tracking.ContentHash() {
		entry.Hash = s.hasher.HashDecorators(content)
	}
	return entry
}

type nopProgress struct{}

func (nopProgress) Advance(int, int) {}
func (nopProgress) Done()            {}
