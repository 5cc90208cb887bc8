// Package process starts the application child process with inherited standard I/O.
package process

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.ProcessStarter = (*Starter)(nil)
	_ ports.Process        = (*Process)(nil)
)

// Starter implements ports.ProcessStarter using os/exec.
type Starter struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewStarter creates a Starter wired to the standard streams of this process.
func NewStarter() *Starter {
	return &Starter{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// NewStarterWithIO creates a Starter wired to the given streams.
func NewStarterWithIO(stdin io.Reader, stdout, stderr io.Writer) *Starter {
	return &Starter{stdin: stdin, stdout: stdout, stderr: stderr}
}

// Start spawns spec.Program. The child is not bound to ctx; its lifetime is
// managed through Signal and Kill.
func (s *Starter) Start(ctx context.Context, spec domain.LaunchSpec) (ports.Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := exec.Command(spec.Program, spec.Args...) //nolint:gosec // Program and args come from project settings
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdin = s.stdin
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr

	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSpawnFailed.Error()), "program", spec.Program)
	}

	return &Process{cmd: cmd}, nil
}

// Process is a started child process.
type Process struct {
	cmd    *exec.Cmd
	once   sync.Once
	status domain.ExitStatus
}

// Pid returns the operating system process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Signal sends sig to the process.
func (p *Process) Signal(sig os.Signal) error {
	if err := p.cmd.Process.Signal(sig); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to signal process"), "pid", p.Pid())
	}
	return nil
}

// Kill forcefully terminates the process.
func (p *Process) Kill() error {
	if err := p.cmd.Process.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to kill process"), "pid", p.Pid())
	}
	return nil
}

// Wait blocks until the process exits. It may be called any number of times.
func (p *Process) Wait() domain.ExitStatus {
	p.once.Do(func() {
		p.status = exitStatus(p.cmd.Wait(), p.cmd.ProcessState)
	})
	return p.status
}

func exitStatus(err error, state *os.ProcessState) domain.ExitStatus {
	if state == nil {
		return domain.ExitStatus{Code: -1, Err: err}
	}

	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return domain.ExitStatus{Code: -1, Signal: ws.Signal().String()}
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return domain.ExitStatus{Code: state.ExitCode(), Err: err}
	}

	return domain.ExitStatus{Code: state.ExitCode()}
}
