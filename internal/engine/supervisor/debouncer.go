package supervisor

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of restart requests. Every request within the
// window cancels and reschedules the pending timer; the callback runs once
// the window passes without a further request.
type Debouncer struct {
	mu       sync.Mutex
	pending  []string
	timer    *time.Timer
	gen      uint64
	window   time.Duration
	callback func(reasons []string)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(reasons []string)) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Add records a request and restarts the quiet window.
func (d *Debouncer) Add(reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = append(d.pending, reason)

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// Stop cancels the pending timer and drops pending requests.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = nil
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()

	// A newer request or Stop superseded this timer after it fired.
	if gen != d.gen || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}

	reasons := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if d.callback != nil {
		d.callback(reasons)
	}
}
