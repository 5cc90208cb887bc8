package app

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/expressx/internal/adapters/progress" //nolint:depguard // Wired in app layer
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/expressx/internal/engine/reconciler"
	"go.trai.ch/expressx/internal/engine/scanner"
	"go.trai.ch/expressx/internal/engine/supervisor"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DevOptions configuration for the Dev method.
type DevOptions struct {
	// Args are the raw arguments after the command name. Interpreter flags
	// are separated from application arguments.
	Args []string
	// Progress selects the scan progress renderer.
	Progress string
}

// devSession holds the per-run components of the dev loop.
type devSession struct {
	cfg        *domain.ProjectConfig
	tracking   domain.TrackingConfig
	detector   ports.DecoratorDetector
	supervisor *supervisor.Supervisor
	reconciler *reconciler.Reconciler
	watcher    ports.Watcher
	cacheFile  string
}

// Dev runs the watch-and-restart loop until ctx is cancelled. On
// cancellation the watcher is stopped and the application is shut down;
// Dev then returns nil.
func (a *App) Dev(ctx context.Context, opts DevOptions) error {
	cfg, err := a.loadProject()
	if err != nil {
		return err
	}
	if err := cfg.VerifyFramework(); err != nil {
		return err
	}

	s, err := a.newDevSession(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer s.reconciler.Close()

	if err := s.watcher.Start(ctx, ports.WatchSpec{
		Root:      cfg.EnvRoot(domain.EnvDevelopment),
		Extension: domain.EnvDevelopment.Extension(),
		Files:     []string{s.cacheFile},
	}); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", cfg.EnvRoot(domain.EnvDevelopment))
	}

	if err := s.supervisor.Start(ctx); err != nil {
		_ = s.watcher.Stop()
		return err
	}
	a.logger.Info(fmt.Sprintf("Watching %s/ for changes", cfg.SourceDir))

	g, gctx := errgroup.WithContext(ctx)

	// Event loop
	g.Go(func() error {
		for ev := range s.watcher.Events() {
			if ev.Path == s.cacheFile {
				s.reconciler.HandleCacheFileEvent(ev)
				continue
			}
			s.reconciler.HandleEvent(ev)
		}
		return nil
	})

	// Shutdown routine
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down...")
		if err := s.watcher.Stop(); err != nil {
			a.logger.Warn("Failed to stop watcher: " + err.Error())
		}
		return s.supervisor.Shutdown(context.WithoutCancel(gctx))
	})

	return g.Wait()
}

func (a *App) newDevSession(ctx context.Context, cfg *domain.ProjectConfig, opts DevOptions) (*devSession, error) {
	settings := cfg.Settings
	s := &devSession{
		cfg:       cfg,
		tracking:  settings.Tracking(),
		cacheFile: a.store.ResolvePath(cfg, domain.EnvDevelopment),
	}
	s.detector = a.detectors(s.tracking)

	interpreterFlags, appFlags := domain.SplitRuntimeFlags(opts.Args)
	spec := supervisor.BuildLaunchSpec(supervisor.LaunchOptions{
		Interpreter:      settings.Interpreter,
		RuntimeBootstrap: settings.RuntimeBootstrap,
		InterpreterFlags: interpreterFlags,
		AppFlags:         appFlags,
		Entry:            cfg.Entry,
		Dir:              cfg.Root,
		Environ:          a.environ(),
		DotEnv:           cfg.DotEnv,
	})
	s.supervisor = supervisor.NewSupervisor(a.starter, a.logger, spec,
		supervisor.WithRestartDebounce(settings.RestartDebounce),
		supervisor.WithShutdownGrace(settings.ShutdownGrace),
		supervisor.WithPreflight(func() error {
			return supervisor.Preflight(cfg, settings.RuntimeBootstrap)
		}),
	)

	cache, validate, err := a.initialCache(ctx, cfg, s, opts.Progress)
	if err != nil {
		return nil, err
	}

	s.reconciler = reconciler.NewReconciler(
		a.store, a.probe, s.detector, a.hasher, s.supervisor, a.logger,
		s.tracking, cfg, cache,
		reconciler.WithCacheSettle(settings.CacheSettle),
	)

	if validate {
		res, err := s.reconciler.Validate()
		if err != nil {
			a.logger.Error(err)
		}
		a.logger.Info(fmt.Sprintf("Decorator cache validated: %d valid, %d updated, %d removed",
			res.Valid, res.Updated, res.Removed))
	}

	if s.watcher, err = a.watchers.NewWatcher(settings.WriteSettle); err != nil {
		s.reconciler.Close()
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	return s, nil
}

// initialCache loads the persisted development cache. Without one, a full
// scan builds and persists a fresh cache. The boolean reports whether the
// loaded cache still needs validation.
func (a *App) initialCache(
	ctx context.Context,
	cfg *domain.ProjectConfig,
	s *devSession,
	progressFlag string,
) (*domain.DecoratorCache, bool, error) {
	cache, err := a.store.Load(cfg, domain.EnvDevelopment)
	if err != nil {
		a.logger.Error(err)
	}
	if cache != nil {
		return cache, true, nil
	}

	a.logger.Info("No decorator cache found, scanning " + cfg.SourceDir + "/")
	sc := scanner.NewScanner(a.walker, a.probe, s.detector, a.hasher, s.tracking,
		scanner.WithBatchSize(cfg.Settings.BatchSize),
		scanner.WithProgress(progress.New(progressMode(progressFlag), a.stderr)),
	)
	cache, stats, err := sc.Scan(ctx, cfg, domain.EnvDevelopment)
	if err != nil {
		return nil, false, err
	}
	a.logger.Info(scanSummary(stats))

	if err := a.store.Save(cfg, cache); err != nil {
		a.logger.Error(err)
	}
	return cache, false, nil
}

func scanSummary(stats domain.ScanStats) string {
	return fmt.Sprintf("Scanned %d files in %s, found %d decorator files (%.1f%%)",
		stats.TotalFiles, stats.Duration.Round(time.Millisecond), stats.DecoratorFiles, stats.Efficiency())
}
