package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/expressx/internal/app"
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.uber.org/mock/gomock"
)

func TestApp_Dev_RestartsOnNewDecoratorFile(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		env := newTestEnv(t)
		cfg := newProject(t)
		a := env.app(t, cfg.Root)

		w := newFakeWatcher()
		env.loader.EXPECT().Load(cfg.Root).Return(cfg, nil)
		env.watchers.EXPECT().NewWatcher(domain.DefaultWriteSettle).Return(w, nil)

		first, second := newFakeProcess(), newFakeProcess()
		var specs []domain.LaunchSpec
		gomock.InOrder(
			env.starter.EXPECT().Start(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, spec domain.LaunchSpec) (ports.Process, error) {
					specs = append(specs, spec)
					return first, nil
				}),
			env.starter.EXPECT().Start(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, spec domain.LaunchSpec) (ports.Process, error) {
					specs = append(specs, spec)
					return second, nil
				}),
		)

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() {
			done <- a.Dev(ctx, app.DevOptions{Args: []string{"--inspect", "--port", "3000"}, Progress: "linear"})
		}()
		synctest.Wait()

		require.Len(t, specs, 1)
		assert.Equal(t, []string{
			"--inspect", "--require", domain.RuntimeBootstrap, "--enable-source-maps", cfg.Entry, "--port", "3000",
		}, specs[0].Args)
		assert.Equal(t, filepath.Join(cfg.Root, "src"), w.Spec().Root)
		assert.Equal(t, []string{env.store.ResolvePath(cfg, domain.EnvDevelopment)}, w.Spec().Files)
		assert.True(t, env.logs.Contains("found 1 decorator files"), env.logs.String())

		added := writeFile(t, cfg.Root, "src/users.controller.ts", "@Controller('/users')\nexport class UsersController {}\n")
		w.events <- domain.FileEvent{Kind: domain.EventAdded, Path: added, Time: time.Now()}
		time.Sleep(time.Second)
		synctest.Wait()

		require.Len(t, specs, 2)
		assert.True(t, first.Signaled())
		assert.True(t, env.logs.Contains("Restarting..."), env.logs.String())

		cancel()
		require.NoError(t, <-done)
		assert.True(t, second.Signaled())

		saved, err := env.store.Load(cfg, domain.EnvDevelopment)
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.ElementsMatch(t, []string{"src/app.controller.ts", "src/users.controller.ts"}, saved.Paths())
	})
}

func TestApp_Dev_PlainFileChangeRestartsWithoutTracking(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		env := newTestEnv(t)
		cfg := newProject(t)
		a := env.app(t, cfg.Root)

		w := newFakeWatcher()
		env.loader.EXPECT().Load(cfg.Root).Return(cfg, nil)
		env.watchers.EXPECT().NewWatcher(gomock.Any()).Return(w, nil)
		env.starter.EXPECT().Start(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, domain.LaunchSpec) (ports.Process, error) {
				return newFakeProcess(), nil
			}).Times(2)

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() { done <- a.Dev(ctx, app.DevOptions{Progress: "linear"}) }()
		synctest.Wait()

		changed := writeFile(t, cfg.Root, "src/util.ts", "export const sub = (a: number, b: number) => a - b;\n")
		w.events <- domain.FileEvent{Kind: domain.EventChanged, Path: changed, Time: time.Now()}
		time.Sleep(time.Second)
		synctest.Wait()

		assert.True(t, env.logs.Contains("File changed: src/util.ts changed"), env.logs.String())
		assert.False(t, env.logs.Contains("Decorator file"), env.logs.String())

		cancel()
		require.NoError(t, <-done)

		saved, err := env.store.Load(cfg, domain.EnvDevelopment)
		require.NoError(t, err)
		assert.Equal(t, []string{"src/app.controller.ts"}, saved.Paths())
	})
}

func TestApp_Dev_ValidatesPersistedCache(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		env := newTestEnv(t)
		cfg := newProject(t)
		a := env.app(t, cfg.Root)

		persisted := domain.NewDecoratorCache(domain.CacheFormatVersion, domain.EnvDevelopment)
		persisted.Entries = []domain.CacheEntry{
			{Path: "src/app.controller.ts", ModTime: 1, Size: 1},
			{Path: "src/gone.controller.ts", ModTime: 1, Size: 1},
		}
		require.NoError(t, env.store.Save(cfg, persisted))

		env.loader.EXPECT().Load(cfg.Root).Return(cfg, nil)
		env.watchers.EXPECT().NewWatcher(gomock.Any()).Return(newFakeWatcher(), nil)
		env.starter.EXPECT().Start(gomock.Any(), gomock.Any()).Return(newFakeProcess(), nil)

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() { done <- a.Dev(ctx, app.DevOptions{Progress: "linear"}) }()
		synctest.Wait()

		assert.True(t, env.logs.Contains("Decorator cache validated: 0 valid, 1 updated, 1 removed"), env.logs.String())
		assert.False(t, env.logs.Contains("No decorator cache found"))

		cancel()
		require.NoError(t, <-done)

		saved, err := env.store.Load(cfg, domain.EnvDevelopment)
		require.NoError(t, err)
		assert.Equal(t, []string{"src/app.controller.ts"}, saved.Paths())
	})
}

func TestApp_Dev_FrameworkMissing(t *testing.T) {
	env := newTestEnv(t)
	cfg := newProject(t)
	cfg.Dependencies = map[string]string{"express": "^4.0.0"}

	env.loader.EXPECT().Load(cfg.Root).Return(cfg, nil)

	err := env.app(t, cfg.Root).Dev(t.Context(), app.DevOptions{})
	require.ErrorIs(t, err, domain.ErrFrameworkNotInstalled)
}

func TestApp_Dev_PreflightFailureStopsWatcher(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		env := newTestEnv(t)
		cfg := newProject(t)
		cfg.Entry = filepath.Join(cfg.Root, "src", "missing.ts")

		w := newFakeWatcher()
		env.loader.EXPECT().Load(cfg.Root).Return(cfg, nil)
		env.watchers.EXPECT().NewWatcher(gomock.Any()).Return(w, nil)

		err := env.app(t, cfg.Root).Dev(t.Context(), app.DevOptions{Progress: "linear"})
		require.ErrorIs(t, err, domain.ErrPreflightFailed)
		require.ErrorIs(t, err, domain.ErrEntryFileMissing)

		_, open := <-w.events
		assert.False(t, open)
	})
}

func TestApp_Dev_LoadFailure(t *testing.T) {
	env := newTestEnv(t)
	root := t.TempDir()
	env.loader.EXPECT().Load(root).Return(nil, domain.ErrManifestNotFound)

	err := env.app(t, root).Dev(t.Context(), app.DevOptions{})
	require.ErrorIs(t, err, domain.ErrManifestNotFound)
	assert.NotErrorIs(t, err, domain.ErrFrameworkNotInstalled)
}

func TestApp_Dev_DirectoryMoveRetracksFiles(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		env := newTestEnv(t)
		cfg := newProject(t)
		oldPath := writeFile(t, cfg.Root, "src/users/user.controller.ts", "@Controller('/users')\nexport class UserController {}\n")
		a := env.app(t, cfg.Root)

		w := newFakeWatcher()
		env.loader.EXPECT().Load(cfg.Root).Return(cfg, nil)
		env.watchers.EXPECT().NewWatcher(gomock.Any()).Return(w, nil)
		env.starter.EXPECT().Start(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, domain.LaunchSpec) (ports.Process, error) {
				return newFakeProcess(), nil
			}).Times(2)

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() { done <- a.Dev(ctx, app.DevOptions{Progress: "linear"}) }()
		synctest.Wait()

		newDir := filepath.Join(cfg.Root, "src", "accounts")
		require.NoError(t, os.Rename(filepath.Dir(oldPath), newDir))
		now := time.Now()
		w.events <- domain.FileEvent{Kind: domain.EventDeleted, Path: oldPath, Time: now}
		w.events <- domain.FileEvent{Kind: domain.EventAdded, Path: filepath.Join(newDir, "user.controller.ts"), Time: now}
		time.Sleep(time.Second)
		synctest.Wait()

		assert.True(t, env.logs.Contains("Restarting (2 changes)..."), env.logs.String())

		cancel()
		require.NoError(t, <-done)

		saved, err := env.store.Load(cfg, domain.EnvDevelopment)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"src/app.controller.ts", "src/accounts/user.controller.ts"}, saved.Paths())
	})
}
