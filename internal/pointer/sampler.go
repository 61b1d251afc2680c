// Package pointer provides latest-value cursor sampling while a wheel is
// open. Samples are never queued: each new position supersedes the previous
// unconsumed one, so arbitrarily fast pointer streams cost one slot of
// storage and at rest (no open wheel) samples are discarded outright.
package pointer

import (
	"sync"

	"pinwheel/internal/geometry"
)

// Sampler is a single-slot mailbox for cursor positions. Offer may be
// called from the input hook side; Take from the consumer side.
type Sampler struct {
	mu     sync.Mutex
	active bool
	latest geometry.Point
	fresh  bool
}

// NewSampler returns an inactive sampler.
func NewSampler() *Sampler {
	return &Sampler{}
}

// SetActive enables or disables sampling. Disabling drops any pending
// sample.
func (s *Sampler) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
	if !active {
		s.fresh = false
	}
}

// Active reports whether sampling is enabled.
func (s *Sampler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Offer records p as the latest sample if sampling is active, replacing any
// unconsumed one. Reports whether the sample was kept.
func (s *Sampler) Offer(p geometry.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return false
	}
	s.latest = p
	s.fresh = true
	return true
}

// Take returns the latest unconsumed sample, if any, and marks it consumed.
func (s *Sampler) Take() (geometry.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fresh {
		return geometry.Point{}, false
	}
	s.fresh = false
	return s.latest, true
}
