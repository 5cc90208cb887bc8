package ports

// RestartScheduler receives restart requests from the reconciler.
//
//go:generate go run go.uber.org/mock/mockgen -source=restart.go -destination=mocks/mock_restart.go -package=mocks
type RestartScheduler interface {
	// ScheduleRestart requests a debounced restart of the application.
	ScheduleRestart(reason string)
}
