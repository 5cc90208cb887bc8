package supervisor

import (
	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/zerr"
)

// State is the lifecycle state of the supervised application.
type State uint8

const (
	// StateStopped means no child is running.
	StateStopped State = iota
	// StateStarting means preflight checks run and the child is being spawned.
	StateStarting
	// StateRunning means a child is alive.
	StateRunning
	// StateRestarting means the child was asked to exit and a replacement will follow.
	StateRestarting
	// StateShuttingDown means the supervisor is terminating for good.
	StateShuttingDown
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateRestarting:
		return "restarting"
	case StateShuttingDown:
		return "shutting down"
	default:
		return "unknown"
	}
}

var transitions = map[State][]State{
	StateStopped:      {StateStarting, StateShuttingDown},
	StateStarting:     {StateRunning, StateStopped, StateShuttingDown},
	StateRunning:      {StateRestarting, StateStopped, StateShuttingDown},
	StateRestarting:   {StateStarting, StateShuttingDown},
	StateShuttingDown: {StateStopped},
}

// CanTransition reports whether the machine may move from one state to another.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func transition(from, to State) error {
	if !CanTransition(from, to) {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidTransition, "supervisor"), "from", from.String()), "to", to.String())
	}
	return nil
}
