// Package decorator decides whether TypeScript or compiled JavaScript source
// declares framework decorators.
//
// Detection runs in three tiers of increasing cost, each short-circuiting:
// ContainsMarker rejects content without any '@', Candidates keeps the
// decorator names that occur as raw substrings, and Matches confirms a name
// with a precise pattern.
package decorator

import (
	"bytes"
	"regexp"

	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
)

var _ ports.DecoratorDetector = (*Detector)(nil)

// Detector implements ports.DecoratorDetector for a fixed set of decorator names.
type Detector struct {
	names    []string
	patterns map[string]*regexp.Regexp
	gate     []byte
}

// New builds a Detector for the decorators and import gate of cfg.
func New(cfg domain.TrackingConfig) *Detector {
	names := cfg.Decorators()
	patterns := make(map[string]*regexp.Regexp, len(names))
	for _, name := range names {
		patterns[name] = Pattern(name)
	}

	var gate []byte
	if g := cfg.ImportGate(); g != "" {
		gate = []byte(g)
	}

	return &Detector{names: names, patterns: patterns, gate: gate}
}

// HasDecorators reports whether content declares any tracked decorator.
func (d *Detector) HasDecorators(content []byte) bool {
	if !ContainsMarker(content) {
		return false
	}
	if d.gate != nil && !bytes.Contains(content, d.gate) {
		return false
	}
	for _, name := range Candidates(content, d.names) {
		if d.patterns[name].Match(content) {
			return true
		}
	}
	return false
}

// ContainsMarker reports whether content contains the decorator marker '@'.
func ContainsMarker(content []byte) bool {
	return bytes.IndexByte(content, '@') >= 0
}

// Candidates returns the names occurring anywhere in content, in the order given.
func Candidates(content []byte, names []string) []string {
	var out []string
	for _, name := range names {
		if bytes.Contains(content, []byte(name)) {
			out = append(out, name)
		}
	}
	return out
}

// Matches reports whether content contains '@' immediately followed by name
// and then whitespace, an opening parenthesis or the end of input.
func Matches(content []byte, name string) bool {
	return Pattern(name).Match(content)
}

// Pattern compiles the precise match used for name.
func Pattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`@` + regexp.QuoteMeta(name) + `(?:\s|\(|$)`)
}
