package arena

// Snapshot is a saved cursor position. It is only meaningful to Rollback
// on the arena it was taken from.
type Snapshot struct {
	owner  *Arena
	offset int
	epoch  uint64
}

// Offset returns the cursor position captured by the snapshot.
func (s Snapshot) Offset() int {
	return s.offset
}

// Snapshot captures the current cursor.
func (a *Arena) Snapshot() Snapshot {
	a.panicIfReleased()
	return Snapshot{owner: a, offset: a.offset, epoch: a.epoch}
}

// Rollback moves the cursor back to s, reclaiming everything allocated
// since s was taken. s must come from this arena, must not predate the
// last Reset, and must not lie beyond the current cursor; Rollback panics
// otherwise. s must also not have been discarded by an earlier Rollback to
// a snapshot below it: once the cursor has moved back past s and grown
// again, s no longer describes a scope boundary. That case is not
// detected and leaves the cursor wherever s points.
func (a *Arena) Rollback(s Snapshot) {
	a.panicIfReleased()
	switch {
	case s.owner != a:
		panic("arena: rollback to a snapshot from another arena")
	case s.epoch != a.epoch:
		panic("arena: rollback to a snapshot taken before Reset()")
	case s.offset > a.offset:
		panic("arena: rollback to a snapshot beyond the cursor")
	}
	a.offset = s.offset
}

// Scratch runs fn and then rolls the arena back to where it was before
// fn ran. Slices allocated inside fn must not escape it.
func (a *Arena) Scratch(fn func() error) error {
	s := a.Snapshot()
	defer a.Rollback(s)
	return fn()
}
