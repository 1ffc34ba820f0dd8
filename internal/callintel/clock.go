package callintel

import (
	"sync"
	"time"
)

// Clock abstracts current time and the periodic tick that drives the live
// elapsed counter, so tests can simulate time without real delays.
type Clock interface {
	Now() time.Time
	// Schedule invokes fn every interval until the returned cancel func runs.
	// Cancel is safe to call more than once.
	Schedule(interval time.Duration, fn func()) (cancel func())
}

type realClock struct{}

// NewRealClock returns a Clock backed by the wall clock and time.Ticker
func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Schedule(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
