package ports

import (
	"context"

	"go.trai.ch/expressx/internal/core/domain"
)

// TreeScanner builds a fresh decorator cache for one environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type TreeScanner interface {
	Scan(ctx context.Context, cfg *domain.ProjectConfig, env domain.Environment) (*domain.DecoratorCache, domain.ScanStats, error)
}
