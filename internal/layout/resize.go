// Package layout tracks the pointer drag that resizes a side pane.
package layout

import "sync"

// Edge says which side of the pane the drag handle sits on. Dragging a
// left-edge handle to the left widens the pane.
type Edge int

const (
	RightEdge Edge = iota
	LeftEdge
)

type Resizer struct {
	mu sync.Mutex

	edge     Edge
	min, max int
	width    int

	dragging   bool
	startX     int
	startWidth int
	listeners  int
}

func NewResizer(width, min, max int, edge Edge) *Resizer {
	r := &Resizer{edge: edge, min: min, max: max}
	r.width = r.clamp(width)
	return r
}

// Press starts a drag at x and attaches the move/release listener pair. A
// press while a drag is live first tears the old pair down.
func (r *Resizer) Press(x int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.detach()
	r.dragging = true
	r.startX = x
	r.startWidth = r.width
	r.listeners = 2
}

// Move samples the pointer. Events outside a drag are ignored.
func (r *Resizer) Move(x int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.dragging {
		return r.width
	}
	delta := x - r.startX
	if r.edge == LeftEdge {
		delta = -delta
	}
	r.width = r.clamp(r.startWidth + delta)
	return r.width
}

// Release ends the drag wherever the pointer is and detaches both
// listeners. Calling it with no drag in progress is harmless.
func (r *Resizer) Release() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.detach()
	return r.width
}

func (r *Resizer) detach() {
	r.dragging = false
	r.listeners = 0
}

func (r *Resizer) Dragging() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dragging
}

// Listeners reports how many pointer listeners are attached: 2 during a
// drag, 0 otherwise.
func (r *Resizer) Listeners() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listeners
}

func (r *Resizer) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width
}

func (r *Resizer) clamp(w int) int {
	if w < r.min {
		return r.min
	}
	if r.max > 0 && w > r.max {
		return r.max
	}
	return w
}
