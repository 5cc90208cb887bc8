// Package app implements the application layer for expressx.
package app

import (
	"io"
	"os"

	"go.trai.ch/expressx/internal/adapters/detector" //nolint:depguard // Wired in app layer
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	store        ports.CacheStore
	walker       ports.FileWalker
	probe        ports.FileProbe
	hasher       ports.Hasher
	detectors    ports.DetectorFactory
	watchers     ports.WatcherFactory
	starter      ports.ProcessStarter
	runner       ports.CommandRunner
	scaffolder   ports.Scaffolder

	workDir string
	out     io.Writer
	stderr  io.Writer
	environ func() []string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	store ports.CacheStore,
	walker ports.FileWalker,
	probe ports.FileProbe,
	hasher ports.Hasher,
	detectors ports.DetectorFactory,
	watchers ports.WatcherFactory,
	starter ports.ProcessStarter,
	runner ports.CommandRunner,
	scaffolder ports.Scaffolder,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		store:        store,
		walker:       walker,
		probe:        probe,
		hasher:       hasher,
		detectors:    detectors,
		watchers:     watchers,
		starter:      starter,
		runner:       runner,
		scaffolder:   scaffolder,
		out:          os.Stdout,
		stderr:       os.Stderr,
		environ:      os.Environ,
	}
}

// WithWorkDir makes the App resolve projects from dir instead of the
// process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithOutput redirects command summaries and progress output.
// This is primarily used for testing.
func (a *App) WithOutput(out, stderr io.Writer) *App {
	a.out = out
	a.stderr = stderr
	return a
}

// WithEnviron replaces the environment inherited by the application process.
func (a *App) WithEnviron(environ func() []string) *App {
	a.environ = environ
	return a
}

func (a *App) cwd() (string, error) {
	if a.workDir != "" {
		return a.workDir, nil
	}
	return os.Getwd()
}

// loadProject resolves the project containing the working directory.
func (a *App) loadProject() (*domain.ProjectConfig, error) {
	cwd, err := a.cwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine working directory")
	}
	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// progressMode resolves the --progress flag against the terminal.
func progressMode(flag string) detector.OutputMode {
	return detector.ResolveMode(detector.DetectEnvironment(), flag)
}
