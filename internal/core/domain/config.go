package domain

import (
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// DefaultDecorators is the closed set of structural decorators recognized by the framework.
var DefaultDecorators = []string{
	"Application",
	"Controller",
	"Service",
	"Middleware",
	"Interceptor",
	"Guard",
}

const (
	// DefaultRestartDebounce is the quiet window collapsing file events into one restart.
	DefaultRestartDebounce = 300 * time.Millisecond
	// DefaultWriteSettle is how long a path must stay quiet before its event is delivered.
	DefaultWriteSettle = 100 * time.Millisecond
	// DefaultCacheSettle is the delay before an externally modified cache file is reloaded.
	DefaultCacheSettle = 100 * time.Millisecond
	// DefaultShutdownGrace is how long the application gets to exit before it is killed.
	DefaultShutdownGrace = 5 * time.Second
	// DefaultBatchSize is the number of files detected per progress step.
	DefaultBatchSize = 1000
	// DefaultInterpreter is the program used to run the application.
	DefaultInterpreter = "node"
)

// TrackingConfig is the immutable description of what the tooling tracks.
// It is handed to the detector, scanner and reconciler at construction.
type TrackingConfig struct {
	decorators  []string
	importGate  string
	version     string
	contentHash bool
}

// NewTrackingConfig builds a TrackingConfig. The decorator list is copied.
func NewTrackingConfig(decorators []string, importGate, version string, contentHash bool) TrackingConfig {
	return TrackingConfig{
		decorators:  slices.Clone(decorators),
		importGate:  importGate,
		version:     version,
		contentHash: contentHash,
	}
}

// DefaultTrackingConfig tracks the framework decorators with pattern-only detection.
func DefaultTrackingConfig() TrackingConfig {
	return NewTrackingConfig(DefaultDecorators, "", CacheFormatVersion, false)
}

// Decorators returns a copy of the tracked decorator names.
func (c TrackingConfig) Decorators() []string { return slices.Clone(c.decorators) }

// ImportGate is the substring a file must contain before decorator patterns are
// considered. Empty disables gating.
func (c TrackingConfig) ImportGate() string { return c.importGate }

// Version is the cache format tag.
func (c TrackingConfig) Version() string { return c.version }

// ContentHash reports whether entries carry a digest of decorator lines.
func (c TrackingConfig) ContentHash() bool { return c.contentHash }

// Settings are the dev-tool knobs read from expressx.yaml.
type Settings struct {
	Decorators       []string
	ImportGate       string
	ContentHash      bool
	RestartDebounce  time.Duration
	WriteSettle      time.Duration
	CacheSettle      time.Duration
	ShutdownGrace    time.Duration
	Interpreter      string
	RuntimeBootstrap string
	BatchSize        int
}

// DefaultSettings returns the settings used when expressx.yaml is absent.
func DefaultSettings() Settings {
	return Settings{
		Decorators:       slices.Clone(DefaultDecorators),
		RestartDebounce:  DefaultRestartDebounce,
		WriteSettle:      DefaultWriteSettle,
		CacheSettle:      DefaultCacheSettle,
		ShutdownGrace:    DefaultShutdownGrace,
		Interpreter:      DefaultInterpreter,
		RuntimeBootstrap: RuntimeBootstrap,
		BatchSize:        DefaultBatchSize,
	}
}

// Tracking derives the tracking configuration from the settings.
func (s Settings) Tracking() TrackingConfig {
	return NewTrackingConfig(s.Decorators, s.ImportGate, CacheFormatVersion, s.ContentHash)
}

// ProjectConfig is the resolved project metadata.
type ProjectConfig struct {
	// Root is the absolute project directory containing package.json.
	Root string
	// SourceDir is the source directory relative to Root, forward slashes.
	SourceDir string
	// OutDir is the compiled output directory relative to Root, forward slashes.
	OutDir string
	// Main is the entry point declared in the manifest, if any.
	Main string
	// Entry is the absolute path of the resolved application entry file.
	// Empty when neither the manifest nor the fallbacks name an existing file.
	Entry string
	// Dependencies merges dependencies and devDependencies.
	Dependencies map[string]string
	// DotEnv holds the variables of the project's .env file, if present.
	DotEnv   map[string]string
	Settings Settings
}

// EnvDir returns the root-relative directory scanned for env.
func (c *ProjectConfig) EnvDir(env Environment) string {
	if env == EnvProduction {
		return c.OutDir
	}
	return c.SourceDir
}

// EnvRoot returns the absolute directory scanned for env.
func (c *ProjectConfig) EnvRoot(env Environment) string {
	return filepath.Join(c.Root, filepath.FromSlash(c.EnvDir(env)))
}

// CacheFile returns the absolute cache file path for env.
func (c *ProjectConfig) CacheFile(env Environment) string {
	return filepath.Join(c.Root, CachePath(c.EnvDir(env)))
}

// RelPath converts an absolute path to the project-relative, forward-slash form used as cache key.
func (c *ProjectConfig) RelPath(abs string) (string, error) {
	rel, err := filepath.Rel(c.Root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// AbsPath converts a cache key back to an absolute path.
func (c *ProjectConfig) AbsPath(rel string) string {
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}

// HasDependency reports whether the manifest declares pkg.
func (c *ProjectConfig) HasDependency(pkg string) bool {
	_, ok := c.Dependencies[pkg]
	return ok
}

// NormalizeDir strips a leading "./" and trailing slashes and converts to forward slashes.
func NormalizeDir(dir string) string {
	dir = filepath.ToSlash(strings.TrimSpace(dir))
	dir = strings.TrimPrefix(dir, "./")
	dir = strings.TrimRight(dir, "/")
	if dir == "" {
		return "."
	}
	return dir
}

// VerifyFramework checks that the project depends on the framework runtime.
func (c *ProjectConfig) VerifyFramework() error {
	if !c.HasDependency(FrameworkPackage) {
		return ErrFrameworkNotInstalled
	}
	return nil
}
