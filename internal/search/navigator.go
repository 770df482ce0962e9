package search

import (
	"sync"
	"time"

	"chat-engine/internal/models"
)

const DefaultHighlightDuration = 800 * time.Millisecond

// Token identifies one navigation. Any newer navigation or a reset makes
// older tokens stale.
type Token uint64

type Timer interface {
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// WallClock schedules on real timers.
var WallClock Scheduler = wallClock{}

type View struct {
	Query          string   `json:"query"`
	Results        []string `json:"results"`
	PaneOpen       bool     `json:"paneOpen"`
	ScrollTargetID string   `json:"scrollTargetId,omitempty"`
	HighlightID    string   `json:"highlightId,omitempty"`
	Token          Token    `json:"token"`
}

type Navigator struct {
	mu       sync.Mutex
	sched    Scheduler
	duration time.Duration
	onChange func()

	gen          Token
	timer        Timer
	query        string
	results      []string
	paneOpen     bool
	scrollTarget string
	highlight    string
}

func NewNavigator(sched Scheduler, duration time.Duration) *Navigator {
	if sched == nil {
		sched = WallClock
	}
	if duration <= 0 {
		duration = DefaultHighlightDuration
	}
	return &Navigator{sched: sched, duration: duration}
}

// OnChange registers f to run after a timer clears the highlight. It is not
// called for changes made through the navigator's own methods.
func (n *Navigator) OnChange(f func()) {
	n.mu.Lock()
	n.onChange = f
	n.mu.Unlock()
}

func (n *Navigator) OpenPane() {
	n.mu.Lock()
	n.paneOpen = true
	n.mu.Unlock()
}

func (n *Navigator) ClosePane() {
	n.mu.Lock()
	n.paneOpen = false
	n.mu.Unlock()
}

// Search records the query and its results for msgs.
func (n *Navigator) Search(msgs []models.Message, query string) []models.Message {
	found := Match(msgs, query)
	ids := make([]string, 0, len(found))
	for _, m := range found {
		ids = append(ids, m.ID)
	}

	n.mu.Lock()
	n.query = query
	n.results = ids
	n.mu.Unlock()
	return found
}

// SelectResult sets messageID as the pending scroll target. It supersedes
// any navigation in flight and closes the auxiliary pane.
func (n *Navigator) SelectResult(messageID string) Token {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.invalidate()
	n.scrollTarget = messageID
	n.paneOpen = false
	return n.gen
}

// Scrolled is called by the surface once the target is in view. It applies
// the highlight and schedules its removal. Stale tokens are ignored.
func (n *Navigator) Scrolled(tok Token) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if tok != n.gen || n.scrollTarget == "" || n.highlight != "" {
		return false
	}
	n.highlight = n.scrollTarget
	n.timer = n.sched.AfterFunc(n.duration, func() { n.expire(tok) })
	return true
}

func (n *Navigator) expire(tok Token) {
	n.mu.Lock()
	if tok != n.gen {
		n.mu.Unlock()
		return
	}
	// highlight goes before the scroll target, never the other way round
	n.highlight = ""
	n.scrollTarget = ""
	n.timer = nil
	notify := n.onChange
	n.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Reset cancels the navigation in flight, forgets the query and closes the
// pane. Used when the active chat changes.
func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.invalidate()
	n.query = ""
	n.results = nil
	n.paneOpen = false
}

func (n *Navigator) invalidate() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.scrollTarget = ""
	n.highlight = ""
}

func (n *Navigator) PendingHighlightID() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.highlight
}

func (n *Navigator) View() View {
	n.mu.Lock()
	defer n.mu.Unlock()

	results := make([]string, len(n.results))
	copy(results, n.results)
	return View{
		Query:          n.query,
		Results:        results,
		PaneOpen:       n.paneOpen,
		ScrollTargetID: n.scrollTarget,
		HighlightID:    n.highlight,
		Token:          n.gen,
	}
}
