package cachestore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/expressx/internal/adapters/logger"
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
)

// NodeID is the unique identifier for the cache store Graft node.
const NodeID graft.ID = "adapter.cache_store"

func init() {
	graft.Register(graft.Node[ports.CacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CacheStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(log, domain.CacheFormatVersion), nil
		},
	})
}
