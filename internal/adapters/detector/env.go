// Package detector provides environment detection for progress output selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how scan progress is rendered.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeInteractive redraws a single progress line in place.
	ModeInteractive
	// ModeLinear prints summaries only, for CI logs and pipes.
	ModeLinear
)

// String implements fmt.Stringer.
func (m OutputMode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stdout is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // File descriptors fit in int

	if !isTTY || IsCI() {
		return ModeLinear
	}
	return ModeInteractive
}

// IsCI reports whether the CI variable marks a continuous integration run.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// ResolveMode applies the --progress flag to auto-detection.
// userFlag should be one of: "auto", "interactive", "tty", "linear", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "interactive", "tty":
		return ModeInteractive
	case "linear", "ci":
		return ModeLinear
	default:
		return autoDetected
	}
}
