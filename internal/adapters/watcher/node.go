package watcher

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/expressx/internal/adapters/fs"
	"go.trai.ch/expressx/internal/adapters/logger"
	"go.trai.ch/expressx/internal/core/ports"
)

// FactoryNodeID is the unique identifier for the watcher factory Graft node.
const FactoryNodeID graft.ID = "adapter.watcher_factory"

var _ ports.WatcherFactory = (*Factory)(nil)

// Factory creates watchers sharing one logger and exclusion list. The settle
// window is a project setting, so a watcher is built per dev session.
type Factory struct {
	logger     ports.Logger
	exclusions *fs.Exclusions
}

// NewFactory creates a new Factory.
func NewFactory(logger ports.Logger, exclusions *fs.Exclusions) *Factory {
	return &Factory{logger: logger, exclusions: exclusions}
}

// NewWatcher creates a watcher with the given write-settle window.
func (f *Factory) NewWatcher(settle time.Duration) (ports.Watcher, error) {
	w, err := NewWatcher(f.logger, f.exclusions, settle)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func init() {
	graft.Register(graft.Node[ports.WatcherFactory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.ExclusionsNodeID},
		Run: func(ctx context.Context) (ports.WatcherFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			exclusions, err := graft.Dep[*fs.Exclusions](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log, exclusions), nil
		},
	})
}
