package decorator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
)

// NodeID is the unique identifier for the detector factory Graft node.
// Detectors depend on project settings, so one is built per command.
const NodeID graft.ID = "adapter.decorator"

func init() {
	graft.Register(graft.Node[ports.DetectorFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DetectorFactory, error) {
			return func(cfg domain.TrackingConfig) ports.DecoratorDetector {
				return New(cfg)
			}, nil
		},
	})
}
