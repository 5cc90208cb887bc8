package app_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/expressx/internal/app"
	"go.trai.ch/expressx/internal/core/domain"
)

func TestApp_Build(t *testing.T) {
	tests := []struct {
		name      string
		opts      app.BuildOptions
		outDir    string
		wantPaths []string
		wantOut   []string
	}{
		{
			name:      "default output",
			opts:      app.BuildOptions{Progress: "linear"},
			outDir:    "dist",
			wantPaths: []string{"dist/app.controller.js"},
			wantOut:   []string{"Build preparation complete (1 files tracked)", "Include dist/.expressx/ in your deployment"},
		},
		{
			name:      "output override and verbose",
			opts:      app.BuildOptions{Output: "./out/", Verbose: true, Progress: "linear"},
			outDir:    "out",
			wantPaths: []string{"out/app.controller.js"},
			wantOut:   []string{"out/app.controller.js", "Include out/.expressx/ in your deployment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			cfg := newProject(t)
			env.loader.EXPECT().Load(cfg.Root).Return(cfg, nil)

			var out bytes.Buffer
			a := env.app(t, cfg.Root).WithOutput(&out, io.Discard)

			require.NoError(t, a.Build(t.Context(), tt.opts))

			dev, err := env.store.Load(cfg, domain.EnvDevelopment)
			require.NoError(t, err)
			require.NotNil(t, dev)
			assert.Equal(t, []string{"src/app.controller.ts"}, dev.Paths())

			assert.Equal(t, tt.outDir, cfg.OutDir)
			prod, err := env.store.Load(cfg, domain.EnvProduction)
			require.NoError(t, err)
			require.NotNil(t, prod)
			assert.Equal(t, tt.wantPaths, prod.Paths())
			assert.Equal(t, domain.EnvProduction, prod.Environment)

			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
			assert.True(t, env.logs.Contains("Production cache generated"), env.logs.String())
		})
	}
}

func TestApp_Build_LoadFailure(t *testing.T) {
	env := newTestEnv(t)
	root := t.TempDir()
	env.loader.EXPECT().Load(root).Return(nil, domain.ErrMissingSourceDir)

	err := env.app(t, root).Build(t.Context(), app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrMissingSourceDir)
}
