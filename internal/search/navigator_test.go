package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualScheduler struct {
	timers []*manualTimer
	last   time.Duration
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.last = d
	t := &manualTimer{f: f}
	s.timers = append(s.timers, t)
	return t
}

// fire runs timer i even if it was stopped, the way a callback already
// queued by the runtime can still run after Stop.
func (s *manualScheduler) fire(i int) { s.timers[i].f() }

func TestHighlightLifecycle(t *testing.T) {
	sched := &manualScheduler{}
	n := NewNavigator(sched, 0)
	var changes int32
	n.OnChange(func() { atomic.AddInt32(&changes, 1) })
	n.OpenPane()

	tok := n.SelectResult("m7")
	v := n.View()
	assert.Equal(t, "m7", v.ScrollTargetID)
	assert.Empty(t, v.HighlightID)
	assert.False(t, v.PaneOpen)

	require.True(t, n.Scrolled(tok))
	assert.Equal(t, "m7", n.PendingHighlightID())
	assert.Equal(t, DefaultHighlightDuration, sched.last)
	assert.False(t, n.Scrolled(tok), "highlight is applied once")

	sched.fire(0)
	v = n.View()
	assert.Empty(t, v.HighlightID)
	assert.Empty(t, v.ScrollTargetID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&changes))
}

func TestNewSelectionInvalidatesStaleTimer(t *testing.T) {
	sched := &manualScheduler{}
	n := NewNavigator(sched, 0)

	first := n.SelectResult("a")
	require.True(t, n.Scrolled(first))

	second := n.SelectResult("b")
	assert.True(t, sched.timers[0].stopped)
	assert.False(t, n.Scrolled(first), "stale token")
	require.True(t, n.Scrolled(second))

	sched.fire(0)
	assert.Equal(t, "b", n.PendingHighlightID(), "stale callback must not clear newer state")
	assert.Equal(t, "b", n.View().ScrollTargetID)

	sched.fire(1)
	assert.Empty(t, n.PendingHighlightID())
}

func TestResetCancelsAndClosesPane(t *testing.T) {
	sched := &manualScheduler{}
	n := NewNavigator(sched, 0)
	n.OpenPane()
	n.Search(history(), "report")
	tok := n.SelectResult("3")
	n.Scrolled(tok)
	n.OpenPane()

	n.Reset()

	v := n.View()
	assert.False(t, v.PaneOpen)
	assert.Empty(t, v.HighlightID)
	assert.Empty(t, v.ScrollTargetID)
	assert.Empty(t, v.Results)
	assert.True(t, sched.timers[0].stopped)

	sched.fire(0)
	assert.Empty(t, n.View().ScrollTargetID)
}

func TestSearchRecordsResults(t *testing.T) {
	n := NewNavigator(&manualScheduler{}, 0)

	found := n.Search(history(), "report")

	assert.Len(t, found, 2)
	assert.Equal(t, []string{"2", "3"}, n.View().Results)
	assert.Equal(t, "report", n.View().Query)
}

func TestWallClockClearsHighlight(t *testing.T) {
	n := NewNavigator(WallClock, 10*time.Millisecond)
	done := make(chan struct{})
	n.OnChange(func() { close(done) })

	require.True(t, n.Scrolled(n.SelectResult("x")))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("highlight was never cleared")
	}
	assert.Empty(t, n.PendingHighlightID())
}
