package store

import (
	"fmt"
	"log"

	"chat-engine/internal/lifecycle"
	"chat-engine/internal/metrics"
	"chat-engine/internal/models"
	"chat-engine/internal/search"
)

func (s *Store) EnterSelectMode() {
	s.mu.Lock()
	defer s.commit()
	s.selection.Enter()
	s.dirty = true
}

func (s *Store) ExitSelectMode() {
	s.mu.Lock()
	defer s.commit()
	s.selection.Exit()
	if s.pending != nil && s.pending.Kind == PendingBulkDelete {
		s.pending = nil
	}
	s.dirty = true
}

// ToggleSelection flips a message of the active chat in or out of the
// selection.
func (s *Store) ToggleSelection(messageID string) error {
	s.mu.Lock()
	defer s.commit()

	c, err := s.active()
	if err != nil {
		return err
	}
	if models.IndexOf(c.Messages, messageID) < 0 {
		return fmt.Errorf("select %s: %w", messageID, ErrMessageNotFound)
	}
	s.selection.Toggle(messageID)
	s.dirty = true
	return nil
}

// BulkCopy sends the selected messages of the active chat to the clipboard
// and returns the copied text.
func (s *Store) BulkCopy() (string, error) {
	s.mu.Lock()
	defer s.commit()

	c, err := s.active()
	if err != nil {
		return "", err
	}
	text, err := s.selection.BulkCopy(c.Messages)
	if err == nil && text != "" {
		s.dirty = true
	}
	return text, err
}

// BulkDelete applies the delete rule to the selection as one batch. Callers
// normally go through RequestBulkDelete and ConfirmPending.
func (s *Store) BulkDelete() (lifecycle.BatchResult, error) {
	s.mu.Lock()
	defer s.commit()
	return s.bulkDeleteLocked()
}

func (s *Store) bulkDeleteLocked() (lifecycle.BatchResult, error) {
	c, err := s.active()
	if err != nil {
		return lifecycle.BatchResult{}, err
	}
	out, res := s.selection.BulkDelete(c.Messages)
	if err := s.replaceLocked(c.ID, out); err != nil {
		return lifecycle.BatchResult{}, err
	}
	if s.replyTo != "" && models.IndexOf(out, s.replyTo) < 0 {
		s.replyTo = ""
	}
	metrics.MessagesDeleted.WithLabelValues("soft").Add(float64(res.Soft))
	metrics.MessagesDeleted.WithLabelValues("hard").Add(float64(res.Hard))
	log.Printf("[STORE] Bulk delete in chat %s: %d soft, %d hard", c.ID, res.Soft, res.Hard)
	return res, nil
}

// BeginBulkForward captures the selection for target picking. Select mode
// stays on until ForwardSelection or CancelForward.
func (s *Store) BeginBulkForward() ([]models.Message, error) {
	s.mu.Lock()
	defer s.commit()

	c, err := s.active()
	if err != nil {
		return nil, err
	}
	captured := s.selection.BeginForward(c.Messages)
	if captured != nil {
		s.dirty = true
	}
	return captured, nil
}

// ForwardSelection forwards the captured selection and leaves select mode.
// A refused forward keeps the capture so the user can pick targets again.
func (s *Store) ForwardSelection(targetChatIDs []string) int {
	s.mu.Lock()
	defer s.commit()

	known := make([]string, 0, len(targetChatIDs))
	for _, id := range targetChatIDs {
		if _, err := s.chat(id); err == nil {
			known = append(known, id)
		}
	}
	batches := s.selection.Forward(known)
	if batches == nil {
		metrics.Refusals.WithLabelValues("forward").Inc()
		return 0
	}
	s.dirty = true
	return s.storeBatches(batches)
}

func (s *Store) CancelForward() {
	s.mu.Lock()
	defer s.commit()
	s.selection.CancelForward()
	s.dirty = true
}

func (s *Store) OpenSearch() {
	s.mu.Lock()
	defer s.commit()
	s.nav.OpenPane()
	s.dirty = true
}

func (s *Store) CloseSearch() {
	s.mu.Lock()
	defer s.commit()
	s.nav.ClosePane()
	s.dirty = true
}

// Search matches the active chat's messages. An empty query yields nothing.
func (s *Store) Search(query string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.commit()

	c, err := s.active()
	if err != nil {
		return nil, err
	}
	s.dirty = true
	return s.nav.Search(c.Messages, query), nil
}

// SelectResult makes messageID the pending scroll target and returns the
// token the surface passes back to ScrolledIntoView.
func (s *Store) SelectResult(messageID string) (search.Token, error) {
	s.mu.Lock()
	defer s.commit()

	c, err := s.active()
	if err != nil {
		return 0, err
	}
	if models.IndexOf(c.Messages, messageID) < 0 {
		return 0, fmt.Errorf("scroll to %s: %w", messageID, ErrMessageNotFound)
	}
	s.dirty = true
	return s.nav.SelectResult(messageID), nil
}

// ScrolledIntoView starts the highlight for tok. Stale tokens are ignored.
func (s *Store) ScrolledIntoView(tok search.Token) bool {
	s.mu.Lock()
	defer s.commit()
	ok := s.nav.Scrolled(tok)
	s.dirty = ok
	return ok
}
