package clock

import (
	"sync"
	"time"
)

// Cancel stops a scheduled callback. Calling it more than once is safe.
type Cancel func()

// Scheduler runs a callback repeatedly until cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Cancel
}

// TickerScheduler drives callbacks from a time.Ticker goroutine.
type TickerScheduler struct{}

// Every starts a goroutine that calls fn once per interval.
func (TickerScheduler) Every(interval time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(interval)
	stopCh := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stopCh)
		})
	}
}
