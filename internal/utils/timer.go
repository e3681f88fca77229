package utils

import "time"

// Timer measures elapsed wall-clock time between a start and stop event.
// Create one with [NewTimer], which starts measuring immediately. Call
// [Timer.Stop] to capture the elapsed duration; [Timer.Elapsed] returns the
// captured value.
type Timer struct {
	start   time.Time
	elapsed time.Duration
}

// NewTimer creates a Timer and starts it by recording the current time.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Restart resets the start instant to now, discarding any captured duration.
func (t *Timer) Restart() {
	t.start = time.Now()
	t.elapsed = 0
}

// Stop captures the time elapsed since construction (or the last Restart)
// and returns it. Subsequent calls to [Timer.Elapsed] return the same value.
func (t *Timer) Stop() time.Duration {
	t.elapsed = time.Since(t.start)
	return t.elapsed
}

// Elapsed returns the duration captured by the most recent Stop, or zero if
// Stop has not been called.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}
