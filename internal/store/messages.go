package store

import (
	"fmt"
	"log"
	"strings"

	"chat-engine/internal/lifecycle"
	"chat-engine/internal/metrics"
	"chat-engine/internal/models"
	"chat-engine/internal/reaction"
)

// StartReply marks messageID in the active chat as the target of the next
// send.
func (s *Store) StartReply(messageID string) error {
	s.mu.Lock()
	defer s.commit()

	c, err := s.active()
	if err != nil {
		return err
	}
	if models.IndexOf(c.Messages, messageID) < 0 {
		return fmt.Errorf("reply to %s: %w", messageID, ErrMessageNotFound)
	}
	s.replyTo = messageID
	s.dirty = true
	return nil
}

func (s *Store) CancelReply() {
	s.mu.Lock()
	defer s.commit()
	if s.replyTo != "" {
		s.replyTo = ""
		s.dirty = true
	}
}

// SendMessage appends a new message from the current actor. When replyToID
// is empty and chatID is the active chat, the pending reply is used. The
// pending reply is cleared once the message is stored. A reply target that
// is not in the chat is dropped.
func (s *Store) SendMessage(chatID string, content models.Content, replyToID string) (models.Message, error) {
	s.mu.Lock()
	defer s.commit()

	c, err := s.chat(chatID)
	if err != nil {
		return models.Message{}, err
	}
	if isEmpty(content) {
		return models.Message{}, ErrEmptyMessage
	}
	if replyToID == "" && chatID == s.activeID {
		replyToID = s.replyTo
	}
	if replyToID != "" && models.IndexOf(c.Messages, replyToID) < 0 {
		log.Printf("[STORE] Dropping reply link to unknown message %s in chat %s", replyToID, chatID)
		replyToID = ""
	}

	msg := s.lifecycle.Compose(content, replyToID)
	if err := s.appendLocked(chatID, msg); err != nil {
		return models.Message{}, err
	}
	if chatID == s.activeID {
		s.replyTo = ""
	}
	metrics.MessagesSent.Inc()
	return msg.Clone(), nil
}

func isEmpty(c models.Content) bool {
	switch c.Kind {
	case "", models.KindText:
		return strings.TrimSpace(c.Text) == ""
	case models.KindDocument:
		return c.FileName == "" && c.MediaURL == ""
	default:
		return c.MediaURL == ""
	}
}

// EditMessage reports whether the edit was applied. Refusals leave the
// message untouched and are not errors.
func (s *Store) EditMessage(chatID, messageID, text string) (bool, error) {
	s.mu.Lock()
	defer s.commit()

	c, err := s.chat(chatID)
	if err != nil {
		return false, err
	}
	out, ok := s.lifecycle.Edit(c.Messages, messageID, text)
	if !ok {
		metrics.Refusals.WithLabelValues("edit").Inc()
		return false, nil
	}
	if err := s.replaceLocked(chatID, out); err != nil {
		return false, err
	}
	metrics.MessagesEdited.Inc()
	return true, nil
}

// DeleteMessage soft-deletes a live message and hard-deletes a tombstone.
// Unknown ids are a no-op.
func (s *Store) DeleteMessage(chatID, messageID string) (lifecycle.DeleteOutcome, error) {
	s.mu.Lock()
	defer s.commit()

	c, err := s.chat(chatID)
	if err != nil {
		return lifecycle.NotFound, err
	}
	out, outcome := s.lifecycle.SoftDelete(c.Messages, messageID)
	switch outcome {
	case lifecycle.NotFound:
		return outcome, nil
	case lifecycle.SoftDeleted:
		metrics.MessagesDeleted.WithLabelValues("soft").Inc()
	case lifecycle.HardDeleted:
		metrics.MessagesDeleted.WithLabelValues("hard").Inc()
		if s.replyTo == messageID {
			s.replyTo = ""
		}
		s.dropFromSelection(messageID)
	}
	return outcome, s.replaceLocked(chatID, out)
}

func (s *Store) dropFromSelection(messageID string) {
	if s.selection.IsSelected(messageID) {
		s.selection.Toggle(messageID)
	}
}

// ClearChat empties the chat's sequence. It bypasses the two-stage delete
// rule.
func (s *Store) ClearChat(chatID string) error {
	s.mu.Lock()
	defer s.commit()
	return s.clearLocked(chatID)
}

func (s *Store) clearLocked(chatID string) error {
	c, err := s.chat(chatID)
	if err != nil {
		return err
	}
	metrics.MessagesDeleted.WithLabelValues("clear").Add(float64(len(c.Messages)))
	if chatID == s.activeID {
		s.replyTo = ""
		s.selection.Exit()
		s.nav.Reset()
	}
	log.Printf("[STORE] Cleared %d messages from chat %s", len(c.Messages), chatID)
	return s.replaceLocked(chatID, nil)
}

type ReactionResult struct {
	Applied         bool
	PickerRequested bool
}

// ToggleReaction applies emoji for the current actor. The picker sentinel
// only reports that a picker was requested. Tombstones take no reactions.
func (s *Store) ToggleReaction(chatID, messageID, emoji string) (ReactionResult, error) {
	s.mu.Lock()
	defer s.commit()

	c, err := s.chat(chatID)
	if err != nil {
		return ReactionResult{}, err
	}
	i := models.IndexOf(c.Messages, messageID)
	if i < 0 {
		return ReactionResult{}, fmt.Errorf("react to %s: %w", messageID, ErrMessageNotFound)
	}
	target := &c.Messages[i]

	out := reaction.Toggle(target.Reactions, s.lifecycle.Actor(), emoji)
	if out.PickerRequested {
		return ReactionResult{PickerRequested: true}, nil
	}
	if !out.Changed || target.IsDeleted {
		metrics.Refusals.WithLabelValues("react").Inc()
		return ReactionResult{}, nil
	}
	target.Reactions = out.Reactions
	c.RefreshLastMessage()
	s.dirty = true
	metrics.ReactionsToggled.Inc()
	return ReactionResult{Applied: true}, nil
}

// ForwardMessages copies msgs into every target chat. Unknown targets are
// skipped. It returns the number of messages created; zero messages or zero
// targets is a refusal, not an error.
func (s *Store) ForwardMessages(targetChatIDs []string, msgs []models.Message) int {
	s.mu.Lock()
	defer s.commit()
	return s.forwardLocked(targetChatIDs, msgs)
}

func (s *Store) forwardLocked(targetChatIDs []string, msgs []models.Message) int {
	known := make([]string, 0, len(targetChatIDs))
	for _, id := range targetChatIDs {
		if _, err := s.chat(id); err != nil {
			log.Printf("[STORE] Forward: skipping unknown chat %s", id)
			continue
		}
		known = append(known, id)
	}

	batches := s.selection.Materialize(known, msgs)
	if batches == nil {
		metrics.Refusals.WithLabelValues("forward").Inc()
		return 0
	}
	return s.storeBatches(batches)
}

func (s *Store) storeBatches(batches map[string][]models.Message) int {
	n := 0
	for target, copies := range batches {
		if err := s.appendLocked(target, copies...); err != nil {
			log.Printf("[STORE] Forward into %s failed: %v", target, err)
			continue
		}
		n += len(copies)
	}
	metrics.MessagesForwarded.Add(float64(n))
	return n
}
