package ports

import "context"

// CommandRunner runs auxiliary tools such as the package manager or git.
//
//go:generate go run go.uber.org/mock/mockgen -source=command.go -destination=mocks/mock_command.go -package=mocks
type CommandRunner interface {
	// Run executes name with args in dir and waits for it to finish.
	Run(ctx context.Context, dir, name string, args []string) error
}
