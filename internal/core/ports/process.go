package ports

import (
	"context"
	"os"

	"go.trai.ch/expressx/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks

// Process is a running child process.
type Process interface {
	// Pid returns the operating system process id.
	Pid() int
	// Signal sends sig to the process.
	Signal(sig os.Signal) error
	// Kill forcefully terminates the process.
	Kill() error
	// Wait blocks until the process exits and reports how it ended.
	Wait() domain.ExitStatus
}

// ProcessStarter spawns child processes with inherited standard I/O.
type ProcessStarter interface {
	Start(ctx context.Context, spec domain.LaunchSpec) (Process, error)
}
