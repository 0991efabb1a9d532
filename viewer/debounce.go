package viewer

import (
	"sync"
	"time"
)

// Debouncer runs only the last of a burst of calls, delay after it.
// dispatch moves the call onto the UI goroutine.
type Debouncer struct {
	delay    time.Duration
	dispatch func(func())

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration, dispatch func(func())) *Debouncer {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}

	return &Debouncer{delay: delay, dispatch: dispatch}
}

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.dispatch(fn)
	})
}

func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
