package grid

import (
	"sync"
)

// Controlled lets the integrator own one slice of grid state. With Get set the grid reads the
// value from Get every time and never keeps a copy; changes are only reported through OnChange.
// With Get nil the grid owns the value and OnChange, when set, observes every change.
type Controlled[V any] struct {
	Get      func() V
	OnChange func(V)
}

// IsControlled reports whether the integrator owns the value.
func (c Controlled[V]) IsControlled() bool {
	return c.Get != nil
}

type slot[V any] struct {
	mu  sync.RWMutex
	ctl Controlled[V]
	v   V
}

func newSlot[V any](ctl Controlled[V], initial V) *slot[V] {
	return &slot[V]{ctl: ctl, v: initial}
}

func (s *slot[V]) get() V {
	if s.ctl.Get != nil {
		return s.ctl.Get()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

func (s *slot[V]) set(v V) {
	if s.ctl.Get == nil {
		s.mu.Lock()
		s.v = v
		s.mu.Unlock()
	}
	if s.ctl.OnChange != nil {
		s.ctl.OnChange(v)
	}
}
