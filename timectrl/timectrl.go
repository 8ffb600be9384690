package timectrl

import (
	"sync"
	"time"
)

// SimClock is an interface for reading simulation time. Components that
// only need the current elapsed time depend on this rather than the
// concrete controller, which keeps them testable.
type SimClock interface {
	// Now returns the elapsed simulation time in seconds.
	Now() float64
}

// Mode describes how the TimeController advances simulation time.
type Mode int

const (
	// RealTime advances one tick per wall-clock tick interval.
	RealTime Mode = iota
	// Accelerated advances as quickly as the loop can run while still
	// stepping by the tick interval in simulation time.
	Accelerated
)

// TimeController drives simulation time in fixed increments and notifies
// registered listeners after every step. It implements SimClock.
type TimeController struct {
	mu   sync.RWMutex
	Tick time.Duration
	Mode Mode

	// elapsed tracks accumulated simulation seconds.
	elapsed float64

	listeners []func(simSeconds float64)
}

// NewTimeController constructs a controller stepping by tick per advance.
func NewTimeController(tick time.Duration, mode Mode) *TimeController {
	return &TimeController{
		Tick: tick,
		Mode: mode,
	}
}

// Now returns the elapsed simulation time in seconds. Implements SimClock.
func (tc *TimeController) Now() float64 {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.elapsed
}

// TickSeconds returns the simulation step size in seconds.
func (tc *TimeController) TickSeconds() float64 {
	return tc.Tick.Seconds()
}

// AddListener registers a callback invoked with the new elapsed simulation
// time on every tick. Listeners must be registered before Start.
func (tc *TimeController) AddListener(fn func(simSeconds float64)) {
	tc.listeners = append(tc.listeners, fn)
}

// Reset rewinds simulation time to zero.
func (tc *TimeController) Reset() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.elapsed = 0
}

// Start runs the controller for the given simulation duration in a separate
// goroutine and returns a channel that is closed when it finishes. A zero
// or negative duration runs indefinitely.
func (tc *TimeController) Start(simDuration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		step := tc.Tick.Seconds()
		limit := simDuration.Seconds()

		var ticker *time.Ticker
		if tc.Mode == RealTime {
			ticker = time.NewTicker(tc.Tick)
			defer ticker.Stop()
		}

		for {
			tc.mu.RLock()
			elapsed := tc.elapsed
			tc.mu.RUnlock()
			if limit > 0 && elapsed >= limit {
				return
			}

			if ticker != nil {
				<-ticker.C
			}

			tc.mu.Lock()
			tc.elapsed += step
			now := tc.elapsed
			tc.mu.Unlock()

			for _, fn := range tc.listeners {
				fn(now)
			}
		}
	}()
	return done
}
