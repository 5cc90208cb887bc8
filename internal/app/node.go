package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/expressx/internal/adapters/cachestore" //nolint:depguard // Wired in app layer
	"go.trai.ch/expressx/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/expressx/internal/adapters/decorator"  //nolint:depguard // Wired in app layer
	"go.trai.ch/expressx/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/expressx/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/expressx/internal/adapters/process"    //nolint:depguard // Wired in app layer
	"go.trai.ch/expressx/internal/adapters/scaffold"   //nolint:depguard // Wired in app layer
	"go.trai.ch/expressx/internal/adapters/shell"      //nolint:depguard // Wired in app layer
	"go.trai.ch/expressx/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/expressx/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			cachestore.NodeID,
			fs.WalkerNodeID,
			fs.ProbeNodeID,
			fs.HasherNodeID,
			decorator.NodeID,
			watcher.FactoryNodeID,
			process.NodeID,
			shell.NodeID,
			scaffold.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}

	walker, err := graft.Dep[ports.FileWalker](ctx)
	if err != nil {
		return nil, err
	}

	probe, err := graft.Dep[ports.FileProbe](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	detectors, err := graft.Dep[ports.DetectorFactory](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	starter, err := graft.Dep[ports.ProcessStarter](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.CommandRunner](ctx)
	if err != nil {
		return nil, err
	}

	scaffolder, err := graft.Dep[ports.Scaffolder](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, store, walker, probe, hasher, detectors, watchers, starter, runner, scaffolder), nil
}
