package session

// Navigator is a cursor over n keys that wraps at both ends.
// When n is 0 every move is a no-op.
type Navigator struct {
	cursor int
	n      int
}

// Reset points the cursor at the first of n keys.
func (nav *Navigator) Reset(n int) {
	nav.n = n
	nav.cursor = 0
}

// Resize changes the key count, keeping the cursor unless it falls out of
// range, in which case it returns to 0.
func (nav *Navigator) Resize(n int) {
	nav.n = n
	if nav.cursor < 0 || nav.cursor >= n {
		nav.cursor = 0
	}
}

// Next advances by one with wraparound.
func (nav *Navigator) Next() bool {
	if nav.n == 0 {
		return false
	}
	nav.cursor = (nav.cursor + 1) % nav.n
	return true
}

// Prev steps back by one with wraparound.
func (nav *Navigator) Prev() bool {
	if nav.n == 0 {
		return false
	}
	nav.cursor = (nav.cursor - 1 + nav.n) % nav.n
	return true
}

// JumpTo moves to the 1-based position k. Positions outside [1, n] are
// ignored and JumpTo returns false.
func (nav *Navigator) JumpTo(k int) bool {
	i := k - 1
	if i < 0 || i >= nav.n {
		return false
	}
	nav.cursor = i
	return true
}

// Cursor returns the 0-based position, or -1 when there are no keys.
func (nav *Navigator) Cursor() int {
	if nav.n == 0 {
		return -1
	}
	return nav.cursor
}

// Len returns the number of keys the cursor ranges over.
func (nav *Navigator) Len() int {
	return nav.n
}
