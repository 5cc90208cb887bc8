package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/expressx/internal/app"
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newApp(ctrl *gomock.Controller, loader *mocks.MockConfigLoader, logger *mocks.MockLogger) *app.App {
	return app.New(
		loader,
		logger,
		mocks.NewMockCacheStore(ctrl),
		nil,
		mocks.NewMockFileProbe(ctrl),
		mocks.NewMockHasher(ctrl),
		nil,
		mocks.NewMockWatcherFactory(ctrl),
		mocks.NewMockProcessStarter(ctrl),
		mocks.NewMockCommandRunner(ctrl),
		mocks.NewMockScaffolder(ctrl),
	)
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	application := newApp(ctrl, mocks.NewMockConfigLoader(ctrl), mockLogger)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, io.Discard, provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "expressx version dev")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, io.Discard, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	dir := t.TempDir()
	mockLoader.EXPECT().Load(dir).Return(nil, domain.ErrManifestNotFound)

	var logged error
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = err })

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: newApp(ctrl, mockLoader, mockLogger), Logger: mockLogger}, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"build"}, io.Discard, io.Discard, provider, func(a *app.App) {
		a.WithWorkDir(dir)
	})

	assert.Equal(t, 1, exitCode)
	assert.ErrorIs(t, logged, domain.ErrManifestNotFound)
}

// TestRun_UnknownCommand verifies that cobra usage errors are reported through the logger.
func TestRun_UnknownCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any())

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: newApp(ctrl, mocks.NewMockConfigLoader(ctrl), mockLogger), Logger: mockLogger}, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"deploy"}, io.Discard, io.Discard, provider)
	assert.Equal(t, 1, exitCode)
}
