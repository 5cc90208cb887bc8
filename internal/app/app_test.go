package app_test

import (
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"syscall"
	"testing"

	"go.trai.ch/expressx/internal/adapters/cachestore"
	"go.trai.ch/expressx/internal/adapters/decorator"
	"go.trai.ch/expressx/internal/adapters/fs"
	"go.trai.ch/expressx/internal/app"
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/expressx/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// logRecorder collects the messages passed to a mock logger.
type logRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *logRecorder) add(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, msg)
}

func (r *logRecorder) Contains(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.ContainsFunc(r.lines, func(l string) bool { return strings.Contains(l, substr) })
}

func (r *logRecorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}

// fakeProcess exits as soon as it receives any signal.
type fakeProcess struct {
	exit chan domain.ExitStatus
	once sync.Once

	mu       sync.Mutex
	signaled bool
}

func newFakeProcess() *fakeProcess {
	return &fakeProcess{exit: make(chan domain.ExitStatus, 1)}
}

func (p *fakeProcess) Pid() int { return 1 }

func (p *fakeProcess) Signal(os.Signal) error {
	p.mu.Lock()
	p.signaled = true
	p.mu.Unlock()
	p.once.Do(func() { p.exit <- domain.ExitStatus{Code: -1, Signal: syscall.SIGTERM.String()} })
	return nil
}

func (p *fakeProcess) Kill() error { return p.Signal(syscall.SIGKILL) }

func (p *fakeProcess) Wait() domain.ExitStatus { return <-p.exit }

func (p *fakeProcess) Signaled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signaled
}

// fakeWatcher delivers events pushed by the test until stopped.
type fakeWatcher struct {
	events chan domain.FileEvent
	once   sync.Once

	mu   sync.Mutex
	spec ports.WatchSpec
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan domain.FileEvent)}
}

func (w *fakeWatcher) Start(_ context.Context, spec ports.WatchSpec) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.spec = spec
	return nil
}

func (w *fakeWatcher) Stop() error {
	w.once.Do(func() { close(w.events) })
	return nil
}

func (w *fakeWatcher) Events() iter.Seq[domain.FileEvent] {
	return func(yield func(domain.FileEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func (w *fakeWatcher) Spec() ports.WatchSpec {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.spec
}

// testEnv bundles the mocks of an App whose file system adapters are real.
type testEnv struct {
	loader     *mocks.MockConfigLoader
	logger     *mocks.MockLogger
	watchers   *mocks.MockWatcherFactory
	starter    *mocks.MockProcessStarter
	runner     *mocks.MockCommandRunner
	scaffolder *mocks.MockScaffolder
	store      *cachestore.Store
	logs       *logRecorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	env := &testEnv{
		loader:     mocks.NewMockConfigLoader(ctrl),
		logger:     mocks.NewMockLogger(ctrl),
		watchers:   mocks.NewMockWatcherFactory(ctrl),
		starter:    mocks.NewMockProcessStarter(ctrl),
		runner:     mocks.NewMockCommandRunner(ctrl),
		scaffolder: mocks.NewMockScaffolder(ctrl),
		logs:       &logRecorder{},
	}
	env.store = cachestore.NewStore(env.logger, domain.CacheFormatVersion)
	env.logger.EXPECT().Info(gomock.Any()).Do(env.logs.add).AnyTimes()
	env.logger.EXPECT().Warn(gomock.Any()).Do(env.logs.add).AnyTimes()
	env.logger.EXPECT().Error(gomock.Any()).Do(func(err error) { env.logs.add(err.Error()) }).AnyTimes()
	return env
}

func (e *testEnv) app(t *testing.T, workDir string) *app.App {
	t.Helper()
	exclusions, err := fs.NewExclusions()
	if err != nil {
		t.Fatalf("exclusions: %v", err)
	}
	detectors := ports.DetectorFactory(func(cfg domain.TrackingConfig) ports.DecoratorDetector {
		return decorator.New(cfg)
	})
	return app.New(
		e.loader, e.logger, e.store,
		fs.NewWalker(exclusions, e.logger), fs.NewProbe(), fs.NewHasher(),
		detectors, e.watchers, e.starter, e.runner, e.scaffolder,
	).
		WithWorkDir(workDir).
		WithOutput(io.Discard, io.Discard).
		WithEnviron(func() []string { return []string{"PATH=/usr/bin"} })
}

// newProject writes a minimal project with one controller and returns its config.
func newProject(t *testing.T) *domain.ProjectConfig {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "import './app.controller';\n")
	writeFile(t, root, "src/app.controller.ts", "@Controller('/')\nexport class AppController {}\n")
	writeFile(t, root, "src/util.ts", "export const add = (a: number, b: number) => a + b;\n")
	writeFile(t, root, "node_modules/@expressx/core/runtime.js", "")

	return &domain.ProjectConfig{
		Root:         root,
		SourceDir:    "src",
		OutDir:       "dist",
		Entry:        filepath.Join(root, "src", "main.ts"),
		Dependencies: map[string]string{domain.FrameworkPackage: "^1.0.0"},
		Settings:     domain.DefaultSettings(),
	}
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}
