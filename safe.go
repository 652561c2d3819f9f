package arena

import (
	"sync"
)

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// Each call is serialized; a Snapshot/Rollback pair is not atomic with
// respect to other goroutines, so nested scopes still need one owner.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena with the given capacity.
func NewSafeArena(capacity int, opts ...Option) (*SafeArena, error) {
	a, err := New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &SafeArena{a: a}, nil
}

// AllocBytes thread-safely allocates n bytes.
func (s *SafeArena) AllocBytes(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// Reset thread-safely moves the cursor back to the start of the region.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Snapshot thread-safely captures the current cursor.
func (s *SafeArena) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Snapshot()
}

// Rollback thread-safely moves the cursor back to snap.
func (s *SafeArena) Rollback(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Rollback(snap)
}

// Scratch runs fn with the lock held and exclusive use of the underlying
// arena, then rolls back everything fn allocated.
func (s *SafeArena) Scratch(fn func(a *Arena) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Scratch(func() error { return fn(s.a) })
}

// Release thread-safely unmaps the region and makes the arena unusable.
func (s *SafeArena) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Release()
}

// Generic allocation functions for SafeArena

// SafeAlloc thread-safely returns a pointer to a zeroed T stored inside the arena.
func SafeAlloc[T any](s *SafeArena) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Alloc[T](s.a)
}

// SafeAllocSlice thread-safely allocates a slice of n elements of type T.
func SafeAllocSlice[T any](s *SafeArena, n int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSlice[T](s.a, n)
}

// SafeAllocSliceZeroed thread-safely allocates a slice of n zeroed elements.
func SafeAllocSliceZeroed[T any](s *SafeArena, n int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSliceZeroed[T](s.a, n)
}
