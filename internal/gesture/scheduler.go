// internal/gesture/scheduler.go
package gesture

import "time"

// CancelFunc cancels a scheduled callback. Calling it after the callback
// has run is harmless.
type CancelFunc func()

// Scheduler provides the cancellable single-shot timers the classifier
// races against input events. Tests drive a manual scheduler; the host
// wires one that posts the callback back onto its event loop.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) CancelFunc
}

// TimerScheduler runs callbacks off time.AfterFunc, routed through post so
// they execute on the host's event-processing thread, not the timer
// goroutine.
type TimerScheduler struct {
	post func(func())
}

// NewTimerScheduler creates a scheduler delivering via post. A nil post
// runs callbacks directly on the timer goroutine; only tests should do that.
func NewTimerScheduler(post func(func())) *TimerScheduler {
	return &TimerScheduler{post: post}
}

func (s *TimerScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	deliver := fn
	if s.post != nil {
		deliver = func() { s.post(fn) }
	}
	t := time.AfterFunc(d, deliver)
	return func() { t.Stop() }
}
