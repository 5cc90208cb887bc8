package supervisor

import (
	"context"
	"fmt"
	"sync"
	"syscall"
	"time"

	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RestartScheduler = (*Supervisor)(nil)

// Supervisor owns the lifecycle of the application child process.
type Supervisor struct {
	starter   ports.ProcessStarter
	logger    ports.Logger
	spec      domain.LaunchSpec
	preflight func() error
	grace     time.Duration
	debouncer *Debouncer

	mu     sync.Mutex
	state  State
	closed bool
	proc   ports.Process
	done   chan struct{}
	ctx    context.Context //nolint:containedctx // Restarts triggered by the debouncer outlive the caller.
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithRestartDebounce sets the quiet window collapsing restart requests.
func WithRestartDebounce(d time.Duration) Option {
	return func(s *Supervisor) {
		s.debouncer = NewDebouncer(d, s.onDebounced)
	}
}

// WithShutdownGrace sets how long the child gets to exit after the
// termination signal before it is killed.
func WithShutdownGrace(d time.Duration) Option {
	return func(s *Supervisor) {
		s.grace = d
	}
}

// WithPreflight installs a check run before every spawn. A failing check
// leaves the supervisor stopped.
func WithPreflight(check func() error) Option {
	return func(s *Supervisor) {
		s.preflight = check
	}
}

// NewSupervisor creates a Supervisor launching spec through starter.
func NewSupervisor(starter ports.ProcessStarter, logger ports.Logger, spec domain.LaunchSpec, opts ...Option) *Supervisor {
	s := &Supervisor{
		starter: starter,
		logger:  logger,
		spec:    spec,
		grace:   domain.DefaultShutdownGrace,
		state:   StateStopped,
		ctx:     context.Background(),
	}
	s.debouncer = NewDebouncer(domain.DefaultRestartDebounce, s.onDebounced)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start spawns the application. A running child is terminated first and
// replaced; a restart already in progress makes this a no-op.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateRestarting:
		return nil
	case StateRunning:
		if !s.stopCurrentLocked(ctx) {
			return nil
		}
	default:
		if err := transition(s.state, StateStarting); err != nil {
			return err
		}
	}
	s.ctx = context.WithoutCancel(ctx)
	s.state = StateStarting
	return s.launchLocked(ctx)
}

// stopCurrentLocked moves the machine to StateRestarting and terminates the
// running child. The caller holds mu, which is released while the child
// exits. It reports whether the replacement should still be spawned.
func (s *Supervisor) stopCurrentLocked(ctx context.Context) bool {
	s.state = StateRestarting
	proc, done := s.proc, s.done
	s.mu.Unlock()

	s.terminate(ctx, proc, done)

	s.mu.Lock()
	// Shutdown took over while the old child was exiting.
	return s.state == StateRestarting
}

// launchLocked runs preflight and spawns the child. The caller holds mu and
// has moved the machine to StateStarting.
func (s *Supervisor) launchLocked(ctx context.Context) error {
	if s.preflight != nil {
		if err := s.preflight(); err != nil {
			s.state = StateStopped
			return err
		}
	}

	proc, err := s.starter.Start(ctx, s.spec)
	if err != nil {
		s.state = StateStopped
		s.proc = nil
		return err
	}

	done := make(chan struct{})
	s.proc = proc
	s.done = done
	s.state = StateRunning
	go s.watch(proc, done)
	return nil
}

// watch observes the exit of proc. Exits during a restart or a shutdown are
// silent, as are those caused by a termination or interrupt signal.
func (s *Supervisor) watch(proc ports.Process, done chan struct{}) {
	status := proc.Wait()

	s.mu.Lock()
	expected := s.closed || s.state == StateRestarting || s.state == StateShuttingDown ||
		status.Signal == syscall.SIGTERM.String() || status.Signal == syscall.SIGINT.String()
	if s.proc == proc {
		s.proc = nil
		s.done = nil
		if s.state == StateRunning {
			s.state = StateStopped
		}
	}
	s.mu.Unlock()
	close(done)

	if expected || status.Success() {
		return
	}

	switch {
	case status.Err != nil:
		s.logger.Error(zerr.Wrap(status.Err, "process wait failed"))
	case status.Signal != "":
		s.logger.Warn("Process terminated by signal " + status.Signal)
	default:
		s.logger.Warn(fmt.Sprintf("Process exited with code %d", status.Code))
	}
	s.logger.Info("Waiting for file changes to restart...")
}

// ScheduleRestart requests a debounced restart. Requests arriving after
// Shutdown are dropped.
func (s *Supervisor) ScheduleRestart(reason string) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	s.logger.Info("File changed: " + reason)
	s.debouncer.Add(reason)
}

func (s *Supervisor) onDebounced(reasons []string) {
	if len(reasons) > 1 {
		s.logger.Info(fmt.Sprintf("Restarting (%d changes)...", len(reasons)))
	} else {
		s.logger.Info("Restarting...")
	}

	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if err := s.Restart(ctx); err != nil {
		s.logger.Error(err)
	}
}

// Restart replaces the running child. A restart already in progress makes
// this a no-op. Without a live child the application starts immediately.
func (s *Supervisor) Restart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	switch s.state {
	case StateRestarting, StateStarting, StateShuttingDown:
		return nil
	case StateRunning:
		if !s.stopCurrentLocked(ctx) {
			return nil
		}
	}
	s.state = StateStarting
	return s.launchLocked(ctx)
}

// Shutdown stops the debouncer, asks the child to exit and kills it when the
// grace period passes. The supervisor ends in StateStopped and ignores
// further restart requests.
func (s *Supervisor) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.debouncer.Stop()

	s.mu.Lock()
	if s.state == StateShuttingDown {
		s.mu.Unlock()
		return nil
	}
	if err := transition(s.state, StateShuttingDown); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = StateShuttingDown
	proc, done := s.proc, s.done
	s.mu.Unlock()

	if proc != nil {
		s.terminate(ctx, proc, done)
	}

	s.mu.Lock()
	s.state = StateStopped
	s.proc = nil
	s.done = nil
	s.mu.Unlock()
	return nil
}

// terminate sends the termination signal and waits for done, escalating to
// a kill after the grace period or when ctx ends.
func (s *Supervisor) terminate(ctx context.Context, proc ports.Process, done <-chan struct{}) {
	if proc == nil {
		return
	}

	if err := proc.Signal(syscall.SIGTERM); err != nil {
		s.logger.Warn("Failed to signal process: " + err.Error())
	}

	timer := time.NewTimer(s.grace)
	defer timer.Stop()

	select {
	case <-done:
		return
	case <-timer.C:
		s.logger.Warn(fmt.Sprintf("Process did not exit within %s, killing it", s.grace))
	case <-ctx.Done():
	}

	if err := proc.Kill(); err != nil {
		s.logger.Warn("Failed to kill process: " + err.Error())
	}
	<-done
}
