package scaffold

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/expressx/internal/core/ports"
)

// NodeID is the unique identifier for the scaffolder Graft node.
const NodeID graft.ID = "adapter.scaffolder"

func init() {
	graft.Register(graft.Node[ports.Scaffolder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.Scaffolder, error) {
			s, err := NewScaffolder()
			if err != nil {
				return nil, err
			}
			return s, nil
		},
	})
}
