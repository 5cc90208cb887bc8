// Package progress renders full-scan progress on the terminal.
package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/expressx/internal/adapters/detector"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/expressx/internal/ui/output"
	"go.trai.ch/expressx/internal/ui/style"
)

var (
	_ ports.ScanProgress = (*Line)(nil)
	_ ports.ScanProgress = Nop{}
)

// New returns the progress renderer for mode. Linear mode reports nothing
// while scanning; the caller prints the summary.
func New(mode detector.OutputMode, w io.Writer) ports.ScanProgress {
	if mode == detector.ModeInteractive {
		return NewLine(output.New(w))
	}
	return Nop{}
}

// Line redraws a single status line in place.
type Line struct {
	mu     sync.Mutex
	out    *termenv.Output
	active bool
}

// NewLine creates a Line writing to out.
func NewLine(out *termenv.Output) *Line {
	return &Line{out: out}
}

// Advance redraws the line with the current counts.
func (l *Line) Advance(done, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	percent := 0
	if total > 0 {
		percent = done * 100 / total
	}

	label := l.out.String("Scanning").Foreground(l.out.Color(string(style.Accent))).Bold()
	counts := l.out.String(fmt.Sprintf("%d/%d files (%d%%)", done, total, percent)).Foreground(l.out.Color(string(style.Slate)))

	_, _ = fmt.Fprint(l.out, "\r")
	l.out.ClearLine()
	_, _ = fmt.Fprintf(l.out, "%s %s", label, counts)
	l.active = true
}

// Done clears the line.
func (l *Line) Done() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.active {
		return
	}
	_, _ = fmt.Fprint(l.out, "\r")
	l.out.ClearLine()
	l.active = false
}

// Nop discards progress.
type Nop struct{}

// Advance implements ports.ScanProgress.
func (Nop) Advance(int, int) {}

// Done implements ports.ScanProgress.
func (Nop) Done() {}
