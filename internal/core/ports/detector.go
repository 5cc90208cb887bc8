package ports

import "go.trai.ch/expressx/internal/core/domain"

// DecoratorDetector decides whether source text declares framework decorators.
//
//go:generate go run go.uber.org/mock/mockgen -source=detector.go -destination=mocks/mock_detector.go -package=mocks
type DecoratorDetector interface {
	HasDecorators(content []byte) bool
}

// DetectorFactory builds a detector for the tracking configuration of a project.
type DetectorFactory func(cfg domain.TrackingConfig) DecoratorDetector
