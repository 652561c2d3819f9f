package arena

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// SizeInUse returns the number of bytes between the start of the region and
// the cursor, alignment padding included.
func (a *Arena) SizeInUse() int {
	if a.buf == nil {
		return 0
	}
	return a.offset
}

// Capacity returns the fixed size of the region. It is 0 after Release.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Remaining returns the number of bytes still available.
func (a *Arena) Remaining() int {
	return a.Capacity() - a.SizeInUse()
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() Metrics {
	return Metrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		Remaining:   a.Remaining(),
		Peak:        a.peak,
		Allocs:      a.allocs,
		Rejected:    a.rejected,
		Utilization: a.Utilization(),
	}
}

// Metrics contains statistical information about an arena.
type Metrics struct {
	SizeInUse   int     // Bytes between base and cursor
	Capacity    int     // Fixed capacity in bytes
	Remaining   int     // Capacity - SizeInUse
	Peak        int     // Highest cursor position ever reached
	Allocs      uint64  // Successful allocations
	Rejected    uint64  // Allocations refused for lack of space
	Utilization float64 // SizeInUse / Capacity (0.0-1.0)
}

func (m Metrics) String() string {
	return fmt.Sprintf("%s / %s in use (%.1f%%), peak %s, %d allocs, %d rejected",
		humanize.IBytes(uint64(m.SizeInUse)),
		humanize.IBytes(uint64(m.Capacity)),
		m.Utilization*100,
		humanize.IBytes(uint64(m.Peak)),
		m.Allocs,
		m.Rejected,
	)
}

// Thread-safe metrics for SafeArena

// SizeInUse thread-safely returns the number of bytes in use.
func (s *SafeArena) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.SizeInUse()
}

// Capacity thread-safely returns the capacity of the arena.
func (s *SafeArena) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Capacity()
}

// Remaining thread-safely returns the number of bytes still available.
func (s *SafeArena) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Remaining()
}

// Utilization thread-safely returns the ratio of bytes in use to capacity.
func (s *SafeArena) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Utilization()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}
