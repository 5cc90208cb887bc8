package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/expressx/internal/adapters/logger"
	"go.trai.ch/expressx/internal/core/ports"
)

const (
	// ExclusionsNodeID is the unique identifier for the exclusion matcher Graft node.
	ExclusionsNodeID graft.ID = "adapter.fs.exclusions"
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// ProbeNodeID is the unique identifier for the file probe Graft node.
	ProbeNodeID graft.ID = "adapter.fs.probe"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[*Exclusions]{
		ID:        ExclusionsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Exclusions, error) {
			return NewExclusions()
		},
	})

	graft.Register(graft.Node[ports.FileWalker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ExclusionsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.FileWalker, error) {
			exclusions, err := graft.Dep[*Exclusions](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWalker(exclusions, log), nil
		},
	})

	graft.Register(graft.Node[ports.FileProbe]{
		ID:        ProbeNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileProbe, error) {
			return NewProbe(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
