package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when package.json is missing from the working directory.
	ErrManifestNotFound = zerr.New("package.json not found in current directory")

	// ErrManifestParseFailed is returned when package.json cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse package.json")

	// ErrMissingSourceDir is returned when the manifest has no expressx.sourceDir key.
	ErrMissingSourceDir = zerr.New(`missing "expressx.sourceDir" in package.json

Add this configuration:
{
  "expressx": {
    "sourceDir": "src"
  }
}`)

	// ErrTSConfigParseFailed is returned when tsconfig.json exists but cannot be parsed.
	ErrTSConfigParseFailed = zerr.New("failed to parse tsconfig.json")

	// ErrSettingsReadFailed is returned when expressx.yaml cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read expressx.yaml")

	// ErrSettingsParseFailed is returned when expressx.yaml cannot be parsed.
	ErrSettingsParseFailed = zerr.New("failed to parse expressx.yaml")

	// ErrSettingsInvalid is returned when a value in expressx.yaml is out of range.
	ErrSettingsInvalid = zerr.New("invalid value in expressx.yaml")

	// ErrDotEnvParseFailed is returned when the project .env file cannot be parsed.
	ErrDotEnvParseFailed = zerr.New("failed to parse .env file")

	// ErrFrameworkNotInstalled is returned when the project does not depend on the framework.
	ErrFrameworkNotInstalled = zerr.New(FrameworkPackage + " is not installed in this project")

	// ErrEntryNotFound is returned when no application entry point can be located.
	ErrEntryNotFound = zerr.New(`could not find an entrypoint, define "main" in package.json or create src/main.ts`)

	// ErrDirectoryNotFound is returned when the scan root of an environment does not exist.
	ErrDirectoryNotFound = zerr.New("directory not found")

	// ErrScanFailed is returned when walking the scan root fails.
	ErrScanFailed = zerr.New("failed to scan directory")

	// ErrCacheReadFailed is returned when the cache file cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read decorator cache")

	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create decorator cache directory")

	// ErrCacheMarshalFailed is returned when the cache cannot be encoded.
	ErrCacheMarshalFailed = zerr.New("failed to marshal decorator cache")

	// ErrCacheWriteFailed is returned when the cache file cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write decorator cache")

	// ErrPreflightFailed is returned when the environment checks before spawning the application fail.
	ErrPreflightFailed = zerr.New("environment checks failed")

	// ErrEntryFileMissing is returned by preflight when the entry file does not exist.
	ErrEntryFileMissing = zerr.New("entry file does not exist")

	// ErrRuntimeNotResolvable is returned by preflight when the runtime bootstrap module cannot be resolved.
	ErrRuntimeNotResolvable = zerr.New("runtime bootstrap module is not resolvable, run npm install")

	// ErrSpawnFailed is returned when the application process cannot be started.
	ErrSpawnFailed = zerr.New("failed to start process")

	// ErrInvalidTransition is returned when the supervisor is asked to move between incompatible states.
	ErrInvalidTransition = zerr.New("invalid supervisor state transition")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to start file watcher")

	// ErrBuildFailed is returned when the build pipeline aborts.
	ErrBuildFailed = zerr.New("build failed")

	// ErrUnknownComponentType is returned when generate is asked for an unsupported component type.
	ErrUnknownComponentType = zerr.New("unknown component type")

	// ErrUnknownTemplate is returned when new is asked for an unsupported project template.
	ErrUnknownTemplate = zerr.New("unknown project template")

	// ErrInvalidName is returned when a project or component name is empty after normalization.
	ErrInvalidName = zerr.New("invalid name")

	// ErrProjectExists is returned when the target directory of a new project already exists.
	ErrProjectExists = zerr.New("directory already exists")

	// ErrScaffoldWriteFailed is returned when a scaffolded file cannot be written.
	ErrScaffoldWriteFailed = zerr.New("failed to write scaffolded file")

	// ErrCommandFailed is returned when an auxiliary command (npm, git) exits with an error.
	ErrCommandFailed = zerr.New("command failed")
)
