// Package lifecycle builds, edits and deletes messages in a chat's message
// sequence. It never holds chat state itself: every operation takes the
// current sequence and returns the sequence the caller should store.
package lifecycle

import (
	"log"
	"strings"
	"time"

	"chat-engine/internal/identity"
	"chat-engine/internal/models"

	"github.com/google/uuid"
)

const (
	DefaultEditWindow = 15 * time.Minute
	TimestampLayout   = "15:04"
)

type DeleteOutcome int

const (
	NotFound DeleteOutcome = iota
	SoftDeleted
	HardDeleted
)

type BatchResult struct {
	Soft int
	Hard int
}

type EditStatus struct {
	Editable  bool          `json:"editable"`
	Remaining time.Duration `json:"remaining"`
}

type Manager struct {
	actor      identity.Source
	now        func() time.Time
	newID      func() string
	editWindow time.Duration
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithIDs(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

func WithEditWindow(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.editWindow = d
		}
	}
}

func New(actor identity.Source, opts ...Option) *Manager {
	m := &Manager{
		actor:      actor,
		now:        time.Now,
		newID:      uuid.NewString,
		editWindow: DefaultEditWindow,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Actor() string { return m.actor.CurrentActor() }

func (m *Manager) Now() time.Time { return m.now() }

// Compose builds a fresh outgoing message from the current actor. The caller
// appends it and clears any pending reply state afterwards.
func (m *Manager) Compose(content models.Content, replyToID string) models.Message {
	if content.Kind == "" {
		content.Kind = models.KindText
	}
	now := m.now()
	return models.Message{
		ID:        m.newID(),
		SenderID:  m.actor.CurrentActor(),
		Content:   content,
		Timestamp: now.Format(TimestampLayout),
		CreatedAt: now.UnixMilli(),
		Status:    models.StatusSent,
		ReplyToID: replyToID,
		Reactions: models.Reactions{},
	}
}

// EditableStatus reports whether the actor may still edit msg. Only text
// messages carry editable content.
func (m *Manager) EditableStatus(msg models.Message) EditStatus {
	if msg.IsDeleted || msg.SenderID != m.actor.CurrentActor() {
		return EditStatus{}
	}
	if msg.Content.Kind != "" && msg.Content.Kind != models.KindText {
		return EditStatus{}
	}
	age := m.now().Sub(time.UnixMilli(msg.CreatedAt))
	if age >= m.editWindow {
		return EditStatus{}
	}
	return EditStatus{Editable: true, Remaining: m.editWindow - age}
}

func (m *Manager) CanEdit(msg models.Message) bool {
	return m.EditableStatus(msg).Editable
}

// Edit replaces the text of an editable message and marks it edited. Id,
// timestamp and reactions are left alone. Refusals return the input
// unchanged and false.
func (m *Manager) Edit(msgs []models.Message, messageID, newText string) ([]models.Message, bool) {
	i := models.IndexOf(msgs, messageID)
	if i < 0 {
		return msgs, false
	}
	if strings.TrimSpace(newText) == "" {
		return msgs, false
	}
	if !m.CanEdit(msgs[i]) {
		log.Printf("[LIFECYCLE] Edit refused for message %s", messageID)
		return msgs, false
	}

	out := models.CloneMessages(msgs)
	out[i].Content.Text = newText
	out[i].IsEdited = true
	return out, true
}

// SoftDelete tombstones a live message. Deleting a message that is already a
// tombstone removes it from the sequence.
func (m *Manager) SoftDelete(msgs []models.Message, messageID string) ([]models.Message, DeleteOutcome) {
	i := models.IndexOf(msgs, messageID)
	if i < 0 {
		return msgs, NotFound
	}
	if msgs[i].IsDeleted {
		out := make([]models.Message, 0, len(msgs)-1)
		out = append(out, models.CloneMessages(msgs[:i])...)
		out = append(out, models.CloneMessages(msgs[i+1:])...)
		return out, HardDeleted
	}

	out := models.CloneMessages(msgs)
	tombstone(&out[i])
	return out, SoftDeleted
}

// BulkSoftDelete applies the SoftDelete rule to every id in one pass.
// Unknown and repeated ids are ignored.
func (m *Manager) BulkSoftDelete(msgs []models.Message, ids []string) ([]models.Message, BatchResult) {
	targets := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		targets[id] = struct{}{}
	}

	var res BatchResult
	out := make([]models.Message, 0, len(msgs))
	for _, msg := range msgs {
		if _, ok := targets[msg.ID]; !ok {
			out = append(out, msg.Clone())
			continue
		}
		if msg.IsDeleted {
			res.Hard++
			continue
		}
		msg = msg.Clone()
		tombstone(&msg)
		out = append(out, msg)
		res.Soft++
	}
	return out, res
}

func tombstone(msg *models.Message) {
	msg.Content = models.Content{Kind: models.KindText}
	msg.Reactions = models.Reactions{}
	msg.IsDeleted = true
}
