// Package shell runs auxiliary command line tools with their output routed to the logger.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"

	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes name with args in dir. Standard output is logged line by
// line at info level, standard error at warn level.
func (r *Runner) Run(ctx context.Context, dir, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // Fixed tool names with generated arguments
	cmd.Dir = dir

	stdout := &logWriter{emit: r.logger.Info}
	stderr := &logWriter{emit: r.logger.Warn}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	stdout.Flush()
	stderr.Flush()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()),
			"command", strings.Join(append([]string{name}, args...), " "))
		return zerr.With(wrapped, "exit_code", exitCode)
	}

	return nil
}

// logWriter buffers partial writes and emits complete lines.
type logWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	emit func(string)
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line, keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emitLine(line)
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emitLine(w.buf.String())
		w.buf.Reset()
	}
}

func (w *logWriter) emitLine(line string) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}
	w.emit(line)
}
