// Package arena implements a fixed-capacity bump allocator (memory arena)
// for short-lived scratch buffers.
//
// # Overview
//
// An Arena reserves one contiguous region of address space up front and
// hands out consecutive slices of it. On unix systems the region is an
// anonymous private mapping, so pages are committed by the kernel only
// when first touched and always start out zeroed. The arena never grows:
// a request that does not fit is refused with an *ExhaustedError and the
// arena stays usable.
//
// Memory is reclaimed in bulk, either entirely with Reset or back to a
// saved position with Snapshot and Rollback. Nested scratch scopes are
// the intended pattern:
//
//	a, err := arena.New(16 << 20)
//	if err != nil {
//		return err // the arena cannot be used at all
//	}
//	defer a.Release()
//
//	err = a.Scratch(func() error {
//		msg, err := a.AllocBytes(logLength)
//		if err != nil {
//			return err
//		}
//		fillInfoLog(msg)
//		fmt.Printf("%s\n", msg)
//		return nil
//	})
//
// # Typed allocations
//
// Alloc, AllocSlice and friends place values of type T in the region,
// aligned for T. Arena memory lives outside the Go heap and is not
// scanned by the garbage collector, so T must not contain pointers,
// strings, slices, maps, channels, funcs or interfaces; these helpers
// panic if it does.
//
// # Thread Safety
//
// Arena is not safe for concurrent use. Either give each goroutine its
// own arena or use SafeArena, which serializes every call with a mutex.
//
// # Preconditions
//
// Rollback only accepts a snapshot taken from the same arena, since the
// last Reset, at or below the current cursor. Anything else is a
// programming error and panics, as does allocating after Release. A
// snapshot that an earlier Rollback moved the cursor below is stale as
// well; rolling back to it is a precondition violation that is not
// detected.
package arena
