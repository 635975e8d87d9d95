// Package navigator tracks the current slice within a series.
//
// All operations except Advance clamp to [0, n-1]; only playback wraps.
package navigator

// ChangeFunc is called after every effective index change.
type ChangeFunc func(index int)

// Navigator owns the current slice index of a series of fixed length.
type Navigator struct {
	index    int
	count    int
	onChange ChangeFunc
}

// New returns a navigator over count slices starting at start (clamped).
// count must be at least 1.
func New(count, start int) *Navigator {
	if count < 1 {
		count = 1
	}
	n := &Navigator{count: count}
	n.index = n.clamp(start)
	return n
}

// OnChange registers the hook invoked after each index change. It replaces any
// previous hook.
func (n *Navigator) OnChange(fn ChangeFunc) {
	n.onChange = fn
}

// Index returns the current slice index.
func (n *Navigator) Index() int { return n.index }

// Count returns the number of slices.
func (n *Navigator) Count() int { return n.count }

func (n *Navigator) clamp(k int) int {
	if k < 0 {
		return 0
	}
	if k > n.count-1 {
		return n.count - 1
	}
	return k
}

func (n *Navigator) set(k int) bool {
	if k == n.index {
		return false
	}
	n.index = k
	if n.onChange != nil {
		n.onChange(k)
	}
	return true
}

// Seek moves to slice k, clamped to the series. It reports whether the index
// changed.
func (n *Navigator) Seek(k int) bool { return n.set(n.clamp(k)) }

// First moves to slice 0.
func (n *Navigator) First() bool { return n.Seek(0) }

// Last moves to the final slice.
func (n *Navigator) Last() bool { return n.Seek(n.count - 1) }

// Prev moves back one slice, stopping at 0.
func (n *Navigator) Prev() bool { return n.Seek(n.index - 1) }

// Next moves forward one slice, stopping at the last slice.
func (n *Navigator) Next() bool { return n.Seek(n.index + 1) }

// StepByWheel moves one slice in the direction of the wheel delta: positive
// steps forward, negative steps back, zero does nothing.
func (n *Navigator) StepByWheel(deltaY float64) bool {
	switch {
	case deltaY > 0:
		return n.Next()
	case deltaY < 0:
		return n.Prev()
	}
	return false
}

// Advance moves forward one slice, wrapping from the last slice to 0.
func (n *Navigator) Advance() bool {
	return n.set((n.index + 1) % n.count)
}
