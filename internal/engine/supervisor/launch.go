package supervisor

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/expressx/internal/core/domain"
)

const (
	// RuntimeModeVar marks the child as running from TypeScript sources.
	RuntimeModeVar = "EXPRESSX_RUNTIME"
	// RuntimeModeSource is the value of RuntimeModeVar in the dev loop.
	RuntimeModeSource = "ts"
	// ExecutionModeVar is the conventional execution-mode variable.
	ExecutionModeVar = "NODE_ENV"
	// DefaultExecutionMode is used when ExecutionModeVar is unset.
	DefaultExecutionMode = "development"
)

// LaunchOptions are the inputs of the child command line.
type LaunchOptions struct {
	Interpreter      string
	RuntimeBootstrap string
	InterpreterFlags []string
	AppFlags         []string
	Entry            string
	Dir              string
	// Environ is the environment of this process in KEY=VALUE form.
	Environ []string
	// DotEnv holds project variables that fill in unset keys.
	DotEnv map[string]string
}

// BuildLaunchSpec composes the command line
//
//	<interpreter> [interpreter flags] --require <bootstrap> --enable-source-maps <entry> [app flags]
//
// and the child environment.
func BuildLaunchSpec(opts LaunchOptions) domain.LaunchSpec {
	args := make([]string, 0, len(opts.InterpreterFlags)+len(opts.AppFlags)+4)
	args = append(args, opts.InterpreterFlags...)
	args = append(args, "--require", opts.RuntimeBootstrap, "--enable-source-maps", opts.Entry)
	args = append(args, opts.AppFlags...)

	return domain.LaunchSpec{
		Program: opts.Interpreter,
		Args:    args,
		Env:     resolveEnvironment(opts.Environ, opts.DotEnv),
		Dir:     opts.Dir,
	}
}

// resolveEnvironment merges, from low to high priority: project .env values,
// the process environment, and the runtime mode marker. The execution mode
// defaults to development when neither source sets it.
func resolveEnvironment(sysEnv []string, dotEnv map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(dotEnv)+2)

	maps.Copy(envMap, dotEnv)

	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	envMap[RuntimeModeVar] = RuntimeModeSource
	if envMap[ExecutionModeVar] == "" {
		envMap[ExecutionModeVar] = DefaultExecutionMode
	}

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}
