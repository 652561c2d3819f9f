package arena_test

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scarletsang/arena"
)

// TestEdgeCases exercises the public API at its boundaries.
func TestEdgeCases(t *testing.T) {
	t.Run("ExactCapacityAllocation", func(t *testing.T) {
		a, err := arena.New(4096)
		require.NoError(t, err)
		defer a.Release()

		b, err := a.AllocBytes(4096)
		require.NoError(t, err)
		assert.Len(t, b, 4096)
		b[4095] = 1

		_, err = a.AllocBytes(1)
		assert.ErrorIs(t, err, arena.ErrExhausted)
		b, err = a.AllocBytes(0)
		require.NoError(t, err, "zero-length requests succeed on a full arena")
		assert.Empty(t, b)
	})

	t.Run("HugeRequests", func(t *testing.T) {
		a, err := arena.New(1024)
		require.NoError(t, err)
		defer a.Release()

		_, err = a.AllocBytes(math.MaxInt)
		assert.ErrorIs(t, err, arena.ErrExhausted)
		_, err = arena.AllocSlice[uint64](a, math.MaxInt/4)
		assert.ErrorIs(t, err, arena.ErrInvalidSize)
		assert.Equal(t, 0, a.SizeInUse())
	})

	t.Run("AlignmentEdgeCases", func(t *testing.T) {
		a, err := arena.New(1024)
		require.NoError(t, err)
		defer a.Release()

		type alignTest1 struct{ a int8 }
		type alignTest2 struct{ a int64 }
		type alignTest3 struct {
			a int8
			b int64
		}

		p1, err := arena.Alloc[alignTest1](a)
		require.NoError(t, err)
		p2, err := arena.Alloc[alignTest2](a)
		require.NoError(t, err)
		p3, err := arena.Alloc[alignTest3](a)
		require.NoError(t, err)

		assert.Zero(t, uintptr(unsafe.Pointer(p1))%unsafe.Alignof(*p1))
		assert.Zero(t, uintptr(unsafe.Pointer(p2))%unsafe.Alignof(*p2))
		assert.Zero(t, uintptr(unsafe.Pointer(p3))%unsafe.Alignof(*p3))
		assert.Equal(t, uintptr(unsafe.Pointer(p1))+8, uintptr(unsafe.Pointer(p2)), "int8 followed by padding up to 8")
	})

	t.Run("UseAfterRelease", func(t *testing.T) {
		a, err := arena.New(1024)
		require.NoError(t, err)
		snap := a.Snapshot()
		require.NoError(t, a.Release())

		assert.Panics(t, func() { _, _ = a.AllocBytes(100) }, "AllocBytes")
		assert.Panics(t, func() { a.Reset() }, "Reset")
		assert.Panics(t, func() { a.Rollback(snap) }, "Rollback")
		assert.Panics(t, func() { _ = a.Scratch(func() error { return nil }) }, "Scratch")
		assert.Panics(t, func() { _, _ = arena.Alloc[int](a) }, "Alloc")
		assert.Panics(t, func() { _, _ = arena.AllocSlice[int](a, 10) }, "AllocSlice")
		assert.Panics(t, func() { _, _ = arena.CloneBytes(a, []byte("x")) }, "CloneBytes")
	})

	t.Run("MultipleReleases", func(t *testing.T) {
		a, err := arena.New(1024)
		require.NoError(t, err)
		assert.NoError(t, a.Release())
		assert.NoError(t, a.Release())
		assert.NoError(t, a.Release())
	})

	t.Run("ClearThenFill", func(t *testing.T) {
		a, err := arena.New(512)
		require.NoError(t, err)
		defer a.Release()

		for round := 0; round < 3; round++ {
			for i := 0; i < 8; i++ {
				_, err := a.AllocBytes(64)
				require.NoError(t, err, "round %d alloc %d", round, i)
			}
			_, err := a.AllocBytes(1)
			require.ErrorIs(t, err, arena.ErrExhausted)
			a.Reset()
		}
	})

	t.Run("ReleasedMemoryIsReusedZeroedByOS", func(t *testing.T) {
		// A new arena never sees another arena's writes.
		a, err := arena.New(256)
		require.NoError(t, err)
		b, err := a.AllocBytes(256)
		require.NoError(t, err)
		for i := range b {
			b[i] = 0xFF
		}
		require.NoError(t, a.Release())

		fresh, err := arena.New(256)
		require.NoError(t, err)
		defer fresh.Release()
		c, err := fresh.AllocBytes(256)
		require.NoError(t, err)
		assert.Equal(t, make([]byte, 256), c)
	})
}
