package state

import "sync"

// Signal is a single reactive slot. Watchers are invoked synchronously,
// in registration order, whenever the value is replaced. Writes are
// expected to come from the owning component only.
type Signal[T any] struct {
	mu       sync.RWMutex
	value    T
	watchers []func(T)
}

// NewSignal creates a slot holding the initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies watchers.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	watchers := append([]func(T){}, s.watchers...)
	s.mu.Unlock()

	for _, watch := range watchers {
		watch(v)
	}
}

// Watch registers a callback for future value changes.
func (s *Signal[T]) Watch(fn func(T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}
