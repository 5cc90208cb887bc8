package app

import (
	"context"
	"fmt"

	"go.trai.ch/expressx/internal/adapters/progress" //nolint:depguard // Wired in app layer
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/engine/pipeline"
	"go.trai.ch/expressx/internal/engine/scanner"
	"go.trai.ch/expressx/internal/ui/output"
	"go.trai.ch/expressx/internal/ui/style"
)

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// Output overrides the compiled output directory.
	Output string
	// Verbose lists every tracked file.
	Verbose bool
	// Progress selects the scan progress renderer.
	Progress string
}

// Build writes the development cache and derives the production cache
// for the compiled output tree.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	cfg, err := a.loadProject()
	if err != nil {
		return err
	}
	if opts.Output != "" {
		cfg.OutDir = domain.NormalizeDir(opts.Output)
	}

	tracking := cfg.Settings.Tracking()
	sc := scanner.NewScanner(a.walker, a.probe, a.detectors(tracking), a.hasher, tracking,
		scanner.WithBatchSize(cfg.Settings.BatchSize),
		scanner.WithProgress(progress.New(progressMode(opts.Progress), a.stderr)),
	)

	out := output.New(a.out)
	_, _ = fmt.Fprintln(out, style.Title.Render("ExpressX Build"))

	res, err := pipeline.NewPipeline(sc, a.store, a.logger).Build(ctx, cfg)
	if err != nil {
		return err
	}

	a.logger.Info(scanSummary(res.Stats))

	if opts.Verbose {
		for _, e := range res.Production.Entries {
			_, _ = fmt.Fprintf(out, "  %s %s\n", style.Muted.Render(style.Dot), e.Path)
		}
	}

	_, _ = fmt.Fprintf(out, "%s Build preparation complete (%d files tracked)\n",
		style.Success.Render(style.Check), len(res.Production.Entries))
	_, _ = fmt.Fprintf(out, "%s Next step: run the TypeScript compiler (%s)\n",
		style.Muted.Render(style.Arrow), style.Title.Render("tsc"))
	_, _ = fmt.Fprintf(out, "%s Include %s/%s/ in your deployment\n",
		style.Muted.Render(style.Arrow), cfg.OutDir, domain.CacheDirName)
	return nil
}
