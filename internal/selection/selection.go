// Package selection implements multi-select mode and the bulk copy, delete
// and forward actions built on top of it.
package selection

import (
	"fmt"
	"log"
	"strings"

	"chat-engine/internal/lifecycle"
	"chat-engine/internal/models"
)

// Clipboard receives the text produced by a bulk copy.
type Clipboard interface {
	Copy(text string) error
}

type State struct {
	Active     bool     `json:"active"`
	Selected   []string `json:"selected"`
	Forwarding bool     `json:"forwarding"`
}

type Coordinator struct {
	lifecycle *lifecycle.Manager
	clipboard Clipboard

	active     bool
	selected   map[string]struct{}
	forwarding []models.Message
}

func New(mgr *lifecycle.Manager, clipboard Clipboard) *Coordinator {
	return &Coordinator{
		lifecycle: mgr,
		clipboard: clipboard,
		selected:  make(map[string]struct{}),
	}
}

func (c *Coordinator) Active() bool { return c.active }

func (c *Coordinator) Enter() { c.active = true }

// Exit leaves select mode and drops the selection and any captured forward.
func (c *Coordinator) Exit() {
	c.active = false
	clear(c.selected)
	c.forwarding = nil
}

// Toggle flips membership of id, entering select mode if needed.
func (c *Coordinator) Toggle(id string) {
	c.active = true
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
		return
	}
	c.selected[id] = struct{}{}
}

func (c *Coordinator) IsSelected(id string) bool {
	_, ok := c.selected[id]
	return ok
}

func (c *Coordinator) Count() int { return len(c.selected) }

// State reports selected ids in the order they appear in msgs.
func (c *Coordinator) State(msgs []models.Message) State {
	st := State{Active: c.active, Forwarding: c.forwarding != nil, Selected: []string{}}
	for _, m := range c.Selected(msgs) {
		st.Selected = append(st.Selected, m.ID)
	}
	return st
}

// Selected returns the selected messages in chat sequence order, not in the
// order they were picked.
func (c *Coordinator) Selected(msgs []models.Message) []models.Message {
	out := make([]models.Message, 0, len(c.selected))
	for _, m := range msgs {
		if _, ok := c.selected[m.ID]; ok {
			out = append(out, m.Clone())
		}
	}
	return out
}

// FormatCopy renders messages as "[timestamp] senderId: text" lines.
func FormatCopy(msgs []models.Message) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", m.Timestamp, m.SenderID, m.Content.Text))
	}
	return strings.Join(lines, "\n")
}

// BulkCopy hands the selected messages to the clipboard and leaves select
// mode. Nothing happens when the selection is empty.
func (c *Coordinator) BulkCopy(msgs []models.Message) (string, error) {
	picked := c.Selected(msgs)
	if len(picked) == 0 {
		return "", nil
	}
	text := FormatCopy(picked)
	if c.clipboard != nil {
		if err := c.clipboard.Copy(text); err != nil {
			return "", fmt.Errorf("copy %d messages: %w", len(picked), err)
		}
	}
	c.Exit()
	return text, nil
}

// BulkDelete runs the soft/hard delete rule over the selection as one batch
// and leaves select mode. The caller stores the returned sequence.
func (c *Coordinator) BulkDelete(msgs []models.Message) ([]models.Message, lifecycle.BatchResult) {
	ids := make([]string, 0, len(c.selected))
	for _, m := range c.Selected(msgs) {
		ids = append(ids, m.ID)
	}
	out, res := c.lifecycle.BulkSoftDelete(msgs, ids)
	c.Exit()
	return out, res
}

// BeginForward captures the selection in chat order for target picking.
// Select mode stays on until the forward runs or is cancelled.
func (c *Coordinator) BeginForward(msgs []models.Message) []models.Message {
	picked := c.Selected(msgs)
	if len(picked) == 0 {
		return nil
	}
	c.forwarding = picked
	return models.CloneMessages(picked)
}

func (c *Coordinator) Pending() []models.Message {
	return models.CloneMessages(c.forwarding)
}

func (c *Coordinator) CancelForward() { c.Exit() }

// Forward materializes the captured messages for every target and leaves
// select mode. A refused forward (nothing captured or no targets) keeps the
// current state and returns nil.
func (c *Coordinator) Forward(targetChatIDs []string) map[string][]models.Message {
	batches := c.Materialize(targetChatIDs, c.forwarding)
	if batches == nil {
		return nil
	}
	c.Exit()
	return batches
}

// Materialize creates one new message per (message, target) pair. Copies get
// a fresh id, the current actor as sender, a fresh timestamp, status sent,
// no reactions and no reply link. Tombstones are not forwarded.
func (c *Coordinator) Materialize(targetChatIDs []string, msgs []models.Message) map[string][]models.Message {
	live := make([]models.Message, 0, len(msgs))
	for _, m := range msgs {
		if !m.IsDeleted {
			live = append(live, m)
		}
	}
	if len(live) == 0 || len(targetChatIDs) == 0 {
		log.Printf("[SELECTION] Forward refused: %d messages, %d targets", len(live), len(targetChatIDs))
		return nil
	}

	batches := make(map[string][]models.Message, len(targetChatIDs))
	for _, target := range targetChatIDs {
		if _, seen := batches[target]; seen {
			continue
		}
		for _, m := range live {
			batches[target] = append(batches[target], c.lifecycle.Compose(m.Content, ""))
		}
	}
	return batches
}
