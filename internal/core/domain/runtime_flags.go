package domain

import "strings"

// interpreterFlags are the Node.js options recognized on the dev command line.
var interpreterFlags = map[string]struct{}{
	"--inspect": {}, "--inspect-brk": {}, "--inspect-port": {}, "--inspect-publish-uid": {},
	"--debug": {}, "--debug-brk": {}, "--debug-port": {},
	"--max-old-space-size": {}, "--max-new-space-size": {}, "--max-semi-space-size": {},
	"--max-http-header-size": {}, "--max-string-length": {},
	"--expose-gc": {}, "--gc-global": {}, "--gc-interval": {},
	"--trace-warnings": {}, "--trace-deprecation": {}, "--trace-sync-io": {},
	"--trace-events-enabled": {}, "--trace-event-categories": {}, "--trace-event-file-pattern": {},
	"--trace-exit": {}, "--trace-sigint": {}, "--trace-uncaught": {},
	"--no-warnings": {}, "--no-deprecation": {}, "--throw-deprecation": {},
	"--pending-deprecation": {}, "--no-force-async-hooks-checks": {},
	"--require": {}, "--import": {}, "--loader": {}, "--experimental-loader": {},
	"--input-type": {}, "--experimental-modules": {},
	"--es-module-specifier-resolution": {}, "--experimental-specifier-resolution": {},
	"--experimental-json-modules": {}, "--experimental-wasm-modules": {},
	"--experimental-top-level-await": {}, "--experimental-vm-modules": {},
	"--experimental-worker": {}, "--experimental-report": {},
	"--experimental-import-meta-resolve": {},
	"--cpu-prof": {}, "--cpu-prof-name": {}, "--cpu-prof-interval": {}, "--cpu-prof-dir": {},
	"--heap-prof": {}, "--heap-prof-name": {}, "--heap-prof-interval": {}, "--heap-prof-dir": {},
	"--perf-prof": {}, "--perf-basic-prof": {}, "--perf-basic-prof-only-functions": {},
	"--prof": {}, "--prof-process": {}, "--stack-trace-limit": {},
	"--heapsnapshot-signal": {}, "--heapsnapshot-near-heap-limit": {},
	"--v8-pool-size": {}, "--zero-fill-buffers": {}, "--track-heap-objects": {},
	"--interpreted-frames-native-stack": {}, "--jitless": {},
	"--experimental-policy": {}, "--policy-integrity": {},
	"--secure-heap": {}, "--secure-heap-min": {},
	"--disable-proto": {}, "--disallow-code-generation-from-strings": {},
	"--frozen-intrinsics": {},
	"--tls-cipher-list": {}, "--tls-min-v1.0": {}, "--tls-min-v1.1": {},
	"--tls-min-v1.2": {}, "--tls-min-v1.3": {}, "--tls-max-v1.2": {}, "--tls-max-v1.3": {},
	"--use-openssl-ca": {}, "--use-bundled-ca": {}, "--openssl-config": {},
	"--icu-data-dir": {}, "--experimental-global-webcrypto": {},
	"--enable-source-maps": {},
	"--report-compact": {}, "--report-dir": {}, "--report-filename": {},
	"--report-on-fatalerror": {}, "--report-on-signal": {}, "--report-signal": {},
	"--report-uncaught-exception": {}, "--report-directory": {},
	"--async-stack-traces": {},
	"--snapshot-blob": {}, "--build-snapshot": {},
	"--diagnostic-dir": {}, "--redirect-warnings": {},
	"--abort-on-uncaught-exception": {}, "--abort-signal-uncaught": {},
	"--dns-result-order": {},
	"--unhandled-rejections": {},
	"--title": {},
	"--preserve-symlinks": {}, "--preserve-symlinks-main": {},
	"--conditions": {}, "--experimental-network-imports": {},
	"--experimental-repl-await": {},
	"--watch": {}, "--watch-path": {}, "--watch-preserve-output": {},
	"--test": {}, "--test-only": {}, "--test-name-pattern": {}, "--test-reporter": {},
	"--test-reporter-destination": {},
	"--force-context-aware": {}, "--force-fips": {},
	"--no-addons": {}, "--no-global-search-paths": {}, "--node-memory-debug": {},
	"--openssl-legacy-provider": {}, "--openssl-shared-config": {},
	"--huge-max-old-generation-size": {}, "--security-revert": {},
}

// interpreterValueFlags take their value as the following token when not written as --flag=value.
var interpreterValueFlags = map[string]struct{}{
	"--require": {}, "--import": {}, "--loader": {}, "--experimental-loader": {},
	"--conditions": {}, "--title": {}, "--redirect-warnings": {}, "--report-dir": {},
	"--report-filename": {}, "--diagnostic-dir": {}, "--cpu-prof-dir": {}, "--heap-prof-dir": {},
	"--openssl-config": {}, "--icu-data-dir": {}, "--dns-result-order": {}, "--unhandled-rejections": {},
}

var interpreterPrefixes = []string{
	"--v8-",
	"--harmony",
	"--trace-",
	"--max-",
	"--experimental-",
	"--diagnostic-",
}

var interpreterFragments = []string{
	"-prof",
	"heap",
	"snapshot",
}

// IsInterpreterFlag reports whether arg is an option for the interpreter
// rather than for the application.
func IsInterpreterFlag(arg string) bool {
	name, _, _ := strings.Cut(arg, "=")
	if _, ok := interpreterFlags[name]; ok {
		return true
	}
	for _, p := range interpreterPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	for _, f := range interpreterFragments {
		if strings.Contains(name, f) {
			return true
		}
	}
	return false
}

// SplitRuntimeFlags separates interpreter flags from application arguments.
// Value-taking interpreter flags consume the next token; unknown flags do the
// same when the next token is not itself a flag.
func SplitRuntimeFlags(args []string) (interpreter, app []string) {
	interpreter = []string{}
	app = []string{}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		hasNext := i+1 < len(args) && !strings.HasPrefix(args[i+1], "-")

		if !strings.HasPrefix(arg, "-") {
			app = append(app, arg)
			continue
		}

		if IsInterpreterFlag(arg) {
			interpreter = append(interpreter, arg)
			if _, takesValue := interpreterValueFlags[arg]; takesValue && hasNext {
				interpreter = append(interpreter, args[i+1])
				i++
			}
			continue
		}

		app = append(app, arg)
		if !strings.Contains(arg, "=") && hasNext {
			app = append(app, args[i+1])
			i++
		}
	}

	return interpreter, app
}
