// Package pipeline prepares the decorator caches of a production build.
package pipeline

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/zerr"
)

// Result describes the caches written by a build.
type Result struct {
	Development *domain.DecoratorCache
	Production  *domain.DecoratorCache
	Stats       domain.ScanStats
	DevFile     string
	ProdFile    string
}

// Pipeline scans the source tree and derives the production cache from it.
type Pipeline struct {
	scanner ports.TreeScanner
	store   ports.CacheStore
	logger  ports.Logger
	now     func() time.Time
}

// NewPipeline creates a new Pipeline.
func NewPipeline(scanner ports.TreeScanner, store ports.CacheStore, logger ports.Logger) *Pipeline {
	return &Pipeline{
		scanner: scanner,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// Build scans the source tree, persists the development cache, rewrites it
// for the compiled output and persists the production cache. The first
// failure aborts the build.
func (p *Pipeline) Build(ctx context.Context, cfg *domain.ProjectConfig) (Result, error) {
	p.logger.Info("Step 1/2: Scanning source files...")
	dev, stats, err := p.scanner.Scan(ctx, cfg, domain.EnvDevelopment)
	if err != nil {
		return Result{}, zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "step", "scan")
	}

	if err := p.store.Save(cfg, dev); err != nil {
		return Result{}, zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "step", "save development cache")
	}
	devFile := p.store.ResolvePath(cfg, domain.EnvDevelopment)
	p.logger.Info("Development cache saved: " + relOrAbs(cfg, devFile))

	p.logger.Info("Step 2/2: Generating production cache...")
	prod := DeriveProduction(dev, cfg, p.now())
	if err := p.store.Save(cfg, prod); err != nil {
		return Result{}, zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "step", "save production cache")
	}
	prodFile := p.store.ResolvePath(cfg, domain.EnvProduction)
	p.logger.Info(fmt.Sprintf("Production cache generated: %s (%d files tracked)", relOrAbs(cfg, prodFile), len(prod.Entries)))

	return Result{
		Development: dev,
		Production:  prod,
		Stats:       stats,
		DevFile:     devFile,
		ProdFile:    prodFile,
	}, nil
}

// DeriveProduction maps a development cache onto the compiled tree. Every
// path has its source directory prefix replaced by the output directory and
// a trailing .ts replaced by .js. All other entry fields are kept. dev is not
// modified.
func DeriveProduction(dev *domain.DecoratorCache, cfg *domain.ProjectConfig, now time.Time) *domain.DecoratorCache {
	prod := dev.Clone()
	for i := range prod.Entries {
		prod.Entries[i].Path = CompiledPath(prod.Entries[i].Path, cfg.SourceDir, cfg.OutDir)
	}
	prod.GeneratedAt = now.UTC()
	prod.Environment = domain.EnvProduction
	return prod
}

// CompiledPath returns the output location of a root-relative source path.
// A source directory of "." maps every path below the output directory.
func CompiledPath(p, sourceDir, outDir string) string {
	sourceDir = domain.NormalizeDir(sourceDir)
	outDir = domain.NormalizeDir(outDir)

	switch {
	case sourceDir == ".":
		p = path.Join(outDir, p)
	case strings.HasPrefix(p, sourceDir+"/"):
		p = path.Join(outDir, strings.TrimPrefix(p, sourceDir+"/"))
	}

	if base, ok := strings.CutSuffix(p, domain.SourceExtension); ok {
		p = base + domain.CompiledExtension
	}
	return p
}

func relOrAbs(cfg *domain.ProjectConfig, abs string) string {
	if rel, err := cfg.RelPath(abs); err == nil {
		return rel
	}
	return abs
}
