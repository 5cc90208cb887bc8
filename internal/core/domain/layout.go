package domain

import (
	"path"
	"path/filepath"
)

const (
	// CacheDirName is the hidden directory holding the decorator cache inside
	// the source tree (development) or the output tree (production).
	CacheDirName = ".expressx"

	// CacheFileName is the name of the decorator cache file.
	CacheFileName = "cache.json"

	// ManifestFileName is the name of the project manifest.
	ManifestFileName = "package.json"

	// TSConfigFileName is the name of the TypeScript compiler configuration.
	TSConfigFileName = "tsconfig.json"

	// SettingsFileName is the name of the optional dev-tool settings file.
	SettingsFileName = "expressx.yaml"

	// DotEnvFileName is the name of the optional environment file merged into
	// the application process environment.
	DotEnvFileName = ".env"

	// FrameworkPackage is the npm package name of the framework runtime.
	FrameworkPackage = "@expressx/core"

	// RuntimeBootstrap is the module preloaded into the application process.
	RuntimeBootstrap = FrameworkPackage + "/runtime"

	// NodeModulesDirName is the name of the npm dependency directory.
	NodeModulesDirName = "node_modules"

	// DefaultSourceDir is the source directory used by scaffolded projects.
	DefaultSourceDir = "src"

	// DefaultOutDir is the output directory used when neither the manifest nor
	// tsconfig.json declare one.
	DefaultOutDir = "dist"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// FallbackEntries are tried in order when the manifest declares no entry point.
var FallbackEntries = []string{
	"src/main.ts",
	"src/index.ts",
	"main.ts",
	"index.ts",
}

// CachePath returns the cache file location relative to the project root for
// the given environment directory (source or output directory).
func CachePath(envDir string) string {
	return filepath.Join(filepath.FromSlash(envDir), CacheDirName, CacheFileName)
}

// CacheSlashPath is CachePath in forward-slash form, used in user-facing messages.
func CacheSlashPath(envDir string) string {
	return path.Join(envDir, CacheDirName, CacheFileName)
}
