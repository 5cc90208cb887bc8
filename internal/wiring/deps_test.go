package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/expressx/internal/app"
	_ "go.trai.ch/expressx/internal/wiring"
)

// TestGraftDependencies checks that every registered node resolves and the
// application components can be built from the graph.
func TestGraftDependencies(t *testing.T) {
	components, _, err := graft.ExecuteFor[*app.Components](t.Context())
	require.NoError(t, err)
	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}
