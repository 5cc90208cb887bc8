package supervisor

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/zerr"
)

// Preflight checks that the application can be started: the entry file must
// exist and the runtime bootstrap module must be resolvable from the project
// root. All failures are reported together, joined under
// domain.ErrPreflightFailed.
func Preflight(cfg *domain.ProjectConfig, bootstrap string) error {
	var failures []error

	switch {
	case cfg.Entry == "":
		failures = append(failures, domain.ErrEntryNotFound)
	default:
		if info, err := os.Stat(cfg.Entry); err != nil || info.IsDir() {
			failures = append(failures, zerr.Wrap(domain.ErrEntryFileMissing, cfg.Entry))
		}
	}

	if !ResolveModule(cfg.Root, bootstrap) {
		failures = append(failures, zerr.Wrap(domain.ErrRuntimeNotResolvable, bootstrap))
	}

	if len(failures) == 0 {
		return nil
	}
	return errors.Join(append([]error{domain.ErrPreflightFailed}, failures...)...)
}

// ResolveModule reports whether the module specifier can be found in a
// node_modules directory of root or one of its ancestors. Relative and
// absolute specifiers are resolved against root.
func ResolveModule(root, specifier string) bool {
	if strings.HasPrefix(specifier, ".") || filepath.IsAbs(specifier) {
		path := specifier
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		return resolveFile(path)
	}

	pkg, subpath := splitSpecifier(specifier)

	for dir := root; ; dir = filepath.Dir(dir) {
		pkgDir := filepath.Join(dir, domain.NodeModulesDirName, filepath.FromSlash(pkg))
		if info, err := os.Stat(pkgDir); err == nil && info.IsDir() {
			if resolveInPackage(pkgDir, subpath) {
				return true
			}
		}
		if filepath.Dir(dir) == dir {
			return false
		}
	}
}

// splitSpecifier separates "@scope/name/sub/path" into the package name and
// the subpath below it.
func splitSpecifier(specifier string) (string, string) {
	parts := strings.Split(specifier, "/")
	n := 1
	if strings.HasPrefix(specifier, "@") && len(parts) > 1 {
		n = 2
	}
	if len(parts) <= n {
		return specifier, ""
	}
	return strings.Join(parts[:n], "/"), strings.Join(parts[n:], "/")
}

func resolveInPackage(pkgDir, subpath string) bool {
	if subpath == "" {
		return true
	}
	if exportsSubpath(pkgDir, subpath) {
		return true
	}
	return resolveFile(filepath.Join(pkgDir, filepath.FromSlash(subpath)))
}

// exportsSubpath reports whether the package manifest exports "./<subpath>".
func exportsSubpath(pkgDir, subpath string) bool {
	data, err := os.ReadFile(filepath.Join(pkgDir, domain.ManifestFileName)) //nolint:gosec // Path inside node_modules
	if err != nil {
		return false
	}
	var manifest struct {
		Exports json.RawMessage `json:"exports"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil || len(manifest.Exports) == 0 {
		return false
	}
	var exports map[string]json.RawMessage
	if err := json.Unmarshal(manifest.Exports, &exports); err != nil {
		return false
	}
	_, ok := exports["./"+subpath]
	return ok
}

func resolveFile(path string) bool {
	for _, candidate := range []string{path, path + ".js", path + ".cjs", filepath.Join(path, "index.js")} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}
