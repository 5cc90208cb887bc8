package process

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/expressx/internal/core/ports"
)

// NodeID is the unique identifier for the process starter Graft node.
const NodeID graft.ID = "adapter.process"

func init() {
	graft.Register(graft.Node[ports.ProcessStarter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProcessStarter, error) {
			return NewStarter(), nil
		},
	})
}
