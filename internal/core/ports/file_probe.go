package ports

import "go.trai.ch/expressx/internal/core/domain"

// FileProbe reads file metadata and content for reconciliation.
//
//go:generate go run go.uber.org/mock/mockgen -source=file_probe.go -destination=mocks/mock_file_probe.go -package=mocks
type FileProbe interface {
	// Stat returns the change-detection metadata of path.
	Stat(path string) (domain.FileMeta, error)
	// ReadFile returns the content of path.
	ReadFile(path string) ([]byte, error)
}
