package arena

import (
	"fmt"
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// DefaultCapacity is the capacity used by DefaultConfig (64 MiB).
const DefaultCapacity = 64 << 20

var (
	// ErrInvalidCapacity is returned by New when capacity is not positive.
	ErrInvalidCapacity = errors.New("arena: capacity must be positive")
	// ErrReservation wraps the OS error returned when the backing region cannot be reserved.
	ErrReservation = errors.New("arena: reservation failed")
	// ErrInvalidSize is returned when a negative size is requested.
	ErrInvalidSize = errors.New("arena: negative allocation size")
	// ErrExhausted is matched by every *ExhaustedError.
	ErrExhausted = errors.New("arena: exhausted")
)

// ExhaustedError reports an allocation that did not fit in the remaining capacity.
type ExhaustedError struct {
	Requested int
	Remaining int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("arena: rejected request for %d bytes, %d bytes left", e.Requested, e.Remaining)
}

// Is reports whether target is ErrExhausted.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// Arena is a fixed-capacity bump allocator over a single reserved region.
// It never grows. Not goroutine-safe; use SafeArena for concurrent access.
type Arena struct {
	buf     []byte // backing region, len == capacity
	offset  int    // cursor
	epoch   uint64 // bumped by Reset
	release func([]byte) error
	logger  log.Logger

	allocs   uint64
	rejected uint64
	peak     int
}

// Option configures an Arena.
type Option func(*Arena)

// WithLogger sets the logger used to report rejected allocations.
func WithLogger(logger log.Logger) Option {
	return func(a *Arena) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New reserves capacity bytes of address space and returns an empty arena.
// Pages are committed by the OS on first touch and read as zero.
// A returned error means the arena cannot be used at all.
func New(capacity int, opts ...Option) (*Arena, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	buf, release, err := reserve(capacity)
	if err != nil {
		return nil, errors.Wrapf(ErrReservation, "%d bytes: %v", capacity, err)
	}
	a := &Arena{
		buf:     buf,
		release: release,
		logger:  log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// MustNew is like New but panics on error.
func MustNew(capacity int, opts ...Option) *Arena {
	a, err := New(capacity, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// AllocBytes returns the next n bytes of the arena. The slice has len and
// cap n and stays valid until Reset, Release, or a Rollback to a snapshot
// taken before this call. A zero-length request succeeds.
//
// On exhaustion it returns an *ExhaustedError and leaves the arena untouched.
func (a *Arena) AllocBytes(n int) ([]byte, error) {
	a.panicIfReleased()
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%d", n)
	}
	if n > len(a.buf)-a.offset {
		return nil, a.reject(n)
	}
	start := a.offset
	a.offset += n
	a.allocs++
	if a.offset > a.peak {
		a.peak = a.offset
	}
	return a.buf[start:a.offset:a.offset], nil
}

// allocAligned is AllocBytes with the start offset rounded up to align.
// The padding is only consumed if the allocation succeeds.
func (a *Arena) allocAligned(n int, align uintptr) ([]byte, error) {
	a.panicIfReleased()
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%d", n)
	}
	cur := a.base() + uintptr(a.offset)
	start := a.offset + int(alignUp(cur, align)-cur)
	if start > len(a.buf) || n > len(a.buf)-start {
		return nil, a.reject(n)
	}
	a.offset = start
	return a.AllocBytes(n)
}

func (a *Arena) reject(n int) error {
	a.rejected++
	remaining := len(a.buf) - a.offset
	level.Warn(a.logger).Log("msg", "rejected arena allocation", "requested", n, "remaining", remaining)
	return &ExhaustedError{Requested: n, Remaining: remaining}
}

// Reset moves the cursor back to the start of the region. Every slice
// previously handed out must no longer be used. Snapshots taken before
// Reset become invalid.
func (a *Arena) Reset() {
	a.panicIfReleased()
	a.offset = 0
	a.epoch++
}

// Release unmaps the backing region and makes the arena unusable.
// Any subsequent allocation, Reset, Snapshot or Rollback panics;
// SizeInUse, Capacity and Remaining report zero. Releasing twice is a no-op.
func (a *Arena) Release() error {
	if a.buf == nil {
		return nil
	}
	buf := a.buf
	a.buf = nil
	a.offset = 0
	if a.release == nil {
		return nil
	}
	return errors.Wrap(a.release(buf), "arena: release")
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.buf == nil {
		panic("arena: use after Release()")
	}
}

// alignUp rounds off up to a multiple of align, which must be a power of two.
func alignUp(off, align uintptr) uintptr {
	mask := align - 1
	return (off + mask) &^ mask
}

// base returns the address of the first byte of the region.
func (a *Arena) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(a.buf)))
}
