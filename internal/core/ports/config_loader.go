package ports

import "go.trai.ch/expressx/internal/core/domain"

// ConfigLoader defines the interface for resolving project metadata.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load locates package.json in cwd and returns the resolved project configuration.
	Load(cwd string) (*domain.ProjectConfig, error)
}
