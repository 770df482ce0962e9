package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDragResizesWithinBounds(t *testing.T) {
	r := NewResizer(300, 200, 500, RightEdge)

	r.Press(100)
	assert.Equal(t, 2, r.Listeners())
	assert.Equal(t, 350, r.Move(150))
	assert.Equal(t, 500, r.Move(900))
	assert.Equal(t, 200, r.Move(-900))
	assert.Equal(t, 200, r.Release())

	assert.False(t, r.Dragging())
	assert.Equal(t, 0, r.Listeners())
}

func TestLeftEdgeInvertsDelta(t *testing.T) {
	r := NewResizer(300, 100, 600, LeftEdge)

	r.Press(500)
	assert.Equal(t, 400, r.Move(400))
	r.Release()
}

func TestMovesAfterReleaseIgnored(t *testing.T) {
	r := NewResizer(300, 100, 600, RightEdge)
	r.Press(0)
	r.Move(50)
	r.Release()

	assert.Equal(t, 350, r.Move(250))
	assert.Equal(t, 350, r.Release(), "double release is harmless")
	assert.Equal(t, 0, r.Listeners())
}

func TestPressWhileDraggingRestartsFromCurrentWidth(t *testing.T) {
	r := NewResizer(300, 100, 600, RightEdge)
	r.Press(0)
	r.Move(100)

	r.Press(1000)
	assert.Equal(t, 2, r.Listeners())
	assert.Equal(t, 410, r.Move(1010))
}

func TestInitialWidthClamped(t *testing.T) {
	assert.Equal(t, 100, NewResizer(10, 100, 600, RightEdge).Width())
}
