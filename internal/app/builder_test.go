package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/expressx/internal/app"
	"go.trai.ch/expressx/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestNewComponents(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	a := &app.App{}

	components := app.NewComponents(a, log)

	require.NotNil(t, components)
	require.Same(t, a, components.App)
	require.Equal(t, log, components.Logger)
}
