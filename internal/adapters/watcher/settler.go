package watcher

import (
	"sync"
	"time"

	"go.trai.ch/expressx/internal/core/domain"
)

// Settler holds back add and change events until their path has been quiet
// for the settle window, so an editor writing a file in several chunks
// produces a single event. Deletions are never held back and cancel any
// pending event for the same path.
type Settler struct {
	mu      sync.Mutex
	window  time.Duration
	pending map[string]*pendingEvent
	emit    func(domain.FileEvent)
}

type pendingEvent struct {
	event domain.FileEvent
	timer *time.Timer
}

// NewSettler creates a Settler delivering settled events to emit.
func NewSettler(window time.Duration, emit func(domain.FileEvent)) *Settler {
	return &Settler{
		window:  window,
		pending: make(map[string]*pendingEvent),
		emit:    emit,
	}
}

// Add records ev. An add followed by changes within the window is delivered
// as an add. Add reports true when ev is not held back and the caller must
// deliver it itself; this is the case for deletions and a zero window.
func (s *Settler) Add(ev domain.FileEvent) bool {
	if ev.Kind == domain.EventDeleted {
		s.cancel(ev.Path)
		return true
	}

	if s.window <= 0 {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[ev.Path]; ok {
		p.timer.Stop()
		if p.event.Kind == domain.EventAdded {
			ev.Kind = domain.EventAdded
		}
	}

	path := ev.Path
	p := &pendingEvent{event: ev}
	p.timer = time.AfterFunc(s.window, func() { s.fire(path, p) })
	s.pending[path] = p
	return false
}

// Pending returns the number of events waiting for their path to settle.
func (s *Settler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop drops all pending events.
func (s *Settler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for path, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, path)
	}
}

func (s *Settler) cancel(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[path]; ok {
		p.timer.Stop()
		delete(s.pending, path)
	}
}

func (s *Settler) fire(path string, p *pendingEvent) {
	s.mu.Lock()
	// A newer event for the path replaced this one after its timer fired.
	if s.pending[path] != p {
		s.mu.Unlock()
		return
	}
	delete(s.pending, path)
	s.mu.Unlock()

	ev := p.event
	ev.Time = time.Now()
	s.emit(ev)
}
