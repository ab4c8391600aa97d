package scheduler

import (
	"sync"
	"time"
)

// Task is a handle to a scheduled repeating task
type Task interface {
	// Cancel stops the task. After Cancel returns no further fires
	// are delivered. Safe to call multiple times and safe to call
	// from within the task's own callback.
	Cancel()
}

// Scheduler runs a callback repeatedly on a fixed interval until the
// returned Task is cancelled. Implementations can be mocked so tests
// drive fires manually.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// TickerScheduler implements Scheduler using time.Ticker
type TickerScheduler struct{}

// New creates a new TickerScheduler
func New() *TickerScheduler {
	return &TickerScheduler{}
}

// Every schedules fn to run every interval on a background goroutine
func (s *TickerScheduler) Every(interval time.Duration, fn func()) Task {
	t := &tickerTask{
		stop: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				// Re-check so a cancel that raced the tick wins
				select {
				case <-t.stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	return t
}

type tickerTask struct {
	stop chan struct{}
	once sync.Once
}

func (t *tickerTask) Cancel() {
	t.once.Do(func() {
		close(t.stop)
	})
}
