// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/expressx/internal/adapters/cachestore"
	_ "go.trai.ch/expressx/internal/adapters/config"
	_ "go.trai.ch/expressx/internal/adapters/decorator"
	_ "go.trai.ch/expressx/internal/adapters/fs"
	_ "go.trai.ch/expressx/internal/adapters/logger"
	_ "go.trai.ch/expressx/internal/adapters/process"
	_ "go.trai.ch/expressx/internal/adapters/scaffold"
	_ "go.trai.ch/expressx/internal/adapters/shell"
	_ "go.trai.ch/expressx/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/expressx/internal/app"
)
