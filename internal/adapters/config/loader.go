// Package config resolves project metadata from package.json, tsconfig.json,
// expressx.yaml and .env.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	iofs "io/fs"
	"maps"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

var validDecoratorRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Loader implements ports.ConfigLoader.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader reading from the local file system.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// Load finds the nearest package.json at or above cwd and resolves the project.
func (l *Loader) Load(cwd string) (*domain.ProjectConfig, error) {
	manifestPath, err := l.findManifest(cwd)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := l.readJSON(manifestPath, &manifest, false); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", manifestPath)
	}

	if manifest.ExpressX == nil || strings.TrimSpace(manifest.ExpressX.SourceDir) == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingSourceDir, "invalid package.json"), "path", manifestPath)
	}

	root := filepath.Dir(manifestPath)
	cfg := &domain.ProjectConfig{
		Root:         root,
		SourceDir:    domain.NormalizeDir(manifest.ExpressX.SourceDir),
		OutDir:       l.resolveOutDir(root, &manifest),
		Main:         firstNonEmpty(manifest.ExpressX.Main, manifest.Main),
		Dependencies: make(map[string]string, len(manifest.Dependencies)+len(manifest.DevDependencies)),
	}
	maps.Copy(cfg.Dependencies, manifest.Dependencies)
	maps.Copy(cfg.Dependencies, manifest.DevDependencies)

	if cfg.Settings, err = l.loadSettings(root); err != nil {
		return nil, err
	}
	if cfg.DotEnv, err = l.loadDotEnv(root); err != nil {
		return nil, err
	}
	cfg.Entry = l.ResolveEntry(root, cfg.Main)

	return cfg, nil
}

func (l *Loader) findManifest(cwd string) (string, error) {
	current := cwd
	for {
		candidate := filepath.Join(current, domain.ManifestFileName)
		if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "no project"), "cwd", cwd)
		}
		current = parent
	}
}

// resolveOutDir prefers expressx.outDir, then compilerOptions.outDir of
// tsconfig.json, then the default output directory.
func (l *Loader) resolveOutDir(root string, manifest *Manifest) string {
	if out := strings.TrimSpace(manifest.ExpressX.OutDir); out != "" {
		return domain.NormalizeDir(out)
	}

	tsconfigPath := filepath.Join(root, domain.TSConfigFileName)
	var tsconfig TSConfig
	switch err := l.readJSON(tsconfigPath, &tsconfig, true); {
	case errors.Is(err, iofs.ErrNotExist):
	case err != nil:
		l.Logger.Warn(zerr.With(zerr.Wrap(err, domain.ErrTSConfigParseFailed.Error()), "path", tsconfigPath).Error())
	case tsconfig.CompilerOptions.OutDir != "":
		return domain.NormalizeDir(tsconfig.CompilerOptions.OutDir)
	}

	return domain.DefaultOutDir
}

// ResolveEntry returns the absolute entry file for the project, or "" when
// none exists. A declared .js entry prefers its .ts sibling.
func (l *Loader) ResolveEntry(root, declared string) string {
	if declared != "" {
		abs := declared
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(root, filepath.FromSlash(declared))
		}
		if strings.HasSuffix(abs, domain.CompiledExtension) {
			ts := strings.TrimSuffix(abs, domain.CompiledExtension) + domain.SourceExtension
			if l.isFile(ts) {
				return ts
			}
		}
		if l.isFile(abs) {
			return abs
		}
	}

	for _, candidate := range domain.FallbackEntries {
		abs := filepath.Join(root, filepath.FromSlash(candidate))
		if l.isFile(abs) {
			return abs
		}
	}

	return ""
}

func (l *Loader) loadSettings(root string) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	path := filepath.Join(root, domain.SettingsFileName)

	data, err := l.FS.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, zerr.With(zerr.Wrap(err, domain.ErrSettingsReadFailed.Error()), "path", path)
	}

	var file SettingsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return settings, zerr.With(zerr.Wrap(err, domain.ErrSettingsParseFailed.Error()), "path", path)
	}

	if err := applySettings(&settings, &file); err != nil {
		return settings, zerr.With(err, "path", path)
	}
	return settings, nil
}

func applySettings(s *domain.Settings, f *SettingsFile) error {
	if len(f.Decorators) > 0 {
		for _, name := range f.Decorators {
			if !validDecoratorRegex.MatchString(name) {
				return zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, "decorators"), "decorator", name)
			}
		}
		s.Decorators = f.Decorators
	}
	s.ImportGate = f.ImportGate
	s.ContentHash = f.ContentHash

	durations := []struct {
		key   string
		raw   string
		field *time.Duration
	}{
		{"restartDebounce", f.RestartDebounce, &s.RestartDebounce},
		{"writeSettle", f.WriteSettle, &s.WriteSettle},
		{"cacheSettle", f.CacheSettle, &s.CacheSettle},
		{"shutdownGrace", f.ShutdownGrace, &s.ShutdownGrace},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil || v <= 0 {
			return zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, d.key), "value", d.raw)
		}
		*d.field = v
	}

	if f.BatchSize < 0 {
		return zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, "batchSize"), "value", f.BatchSize)
	}
	if f.BatchSize > 0 {
		s.BatchSize = f.BatchSize
	}
	if f.Interpreter != "" {
		s.Interpreter = f.Interpreter
	}
	if f.RuntimeBootstrap != "" {
		s.RuntimeBootstrap = f.RuntimeBootstrap
	}
	return nil
}

func (l *Loader) loadDotEnv(root string) (map[string]string, error) {
	path := filepath.Join(root, domain.DotEnvFileName)
	data, err := l.FS.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDotEnvParseFailed.Error()), "path", path)
	}

	env, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDotEnvParseFailed.Error()), "path", path)
	}
	return env, nil
}

// readJSON decodes path into v. With comments set, the file may contain
// comments and trailing commas.
func (l *Loader) readJSON(path string, v any, comments bool) error {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		return err
	}
	if comments {
		data = jsonc.ToJSON(data)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return zerr.With(zerr.Wrap(err, "invalid JSON"), "file", filepath.Base(path))
	}
	return nil
}

func (l *Loader) isFile(path string) bool {
	info, err := l.FS.Stat(path)
	return err == nil && !info.IsDir()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
