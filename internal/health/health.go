package health

import (
	"sync"
	"time"
)

// DefaultFailureThreshold is how many consecutive dependency failures flip
// the state to degraded.
const DefaultFailureThreshold = 3

// State tracks record-store availability. It replaces an ambient "we've seen
// N errors" flag: created once at startup, passed explicitly to the services
// that need fallback awareness, and reset when a call succeeds again.
type State struct {
	mu         sync.RWMutex
	failures   int
	threshold  int
	degraded   bool
	lastError  string
	lastChange time.Time
}

// Report is a point-in-time snapshot of the dependency health state.
type Report struct {
	Degraded   bool      `json:"degraded"`
	Failures   int       `json:"failures"`
	LastError  string    `json:"lastError,omitempty"`
	LastChange time.Time `json:"lastChange"`
}

// NewState creates a healthy state. threshold <= 0 uses the default.
func NewState(threshold int) *State {
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}
	return &State{threshold: threshold, lastChange: time.Now()}
}

// RecordFailure notes a dependency failure and flips to degraded mode once
// the consecutive-failure threshold is reached.
func (s *State) RecordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures++
	if err != nil {
		s.lastError = err.Error()
	}
	if !s.degraded && s.failures >= s.threshold {
		s.degraded = true
		s.lastChange = time.Now()
	}
}

// RecordSuccess resets the failure counter and leaves degraded mode.
func (s *State) RecordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.degraded || s.failures > 0 {
		s.lastChange = time.Now()
	}
	s.failures = 0
	s.degraded = false
	s.lastError = ""
}

// Degraded reports whether reads should prefer the fallback cache.
func (s *State) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// Snapshot returns the current state for the health endpoint.
func (s *State) Snapshot() Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Report{
		Degraded:   s.degraded,
		Failures:   s.failures,
		LastError:  s.lastError,
		LastChange: s.lastChange,
	}
}
