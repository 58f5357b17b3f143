package platform

import "sync"

// Listener wraps a callback so that it can be detached by reference.
type Listener[T any] struct {
	fn func(T)
}

// NewListener wraps fn. It returns nil when fn is nil.
func NewListener[T any](fn func(T)) *Listener[T] {
	if fn == nil {
		return nil
	}
	return &Listener[T]{fn: fn}
}

// Call invokes the wrapped callback.
func (l *Listener[T]) Call(v T) {
	if l != nil && l.fn != nil {
		l.fn(v)
	}
}

// ListenerSet is a set of listeners safe for concurrent use.
type ListenerSet[T any] struct {
	mu        sync.Mutex
	listeners []*Listener[T]
}

// Add attaches l. Adding the same listener twice is a no-op.
func (s *ListenerSet[T]) Add(l *Listener[T]) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.listeners {
		if existing == l {
			return
		}
	}
	s.listeners = append(s.listeners, l)
}

// Remove detaches l. Unknown listeners are ignored.
func (s *ListenerSet[T]) Remove(l *Listener[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.listeners {
		if existing == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of attached listeners.
func (s *ListenerSet[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Emit calls every attached listener with v, outside the lock.
func (s *ListenerSet[T]) Emit(v T) {
	s.mu.Lock()
	snapshot := make([]*Listener[T], len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		l.Call(v)
	}
}
