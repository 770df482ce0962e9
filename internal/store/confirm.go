package store

import "log"

type PendingKind string

const (
	PendingBulkDelete PendingKind = "bulk_delete"
	PendingClearChat  PendingKind = "clear_chat"
)

// Pending is a destructive action waiting for the user to confirm it.
type Pending struct {
	Kind   PendingKind `json:"kind"`
	ChatID string      `json:"chatId"`
	Count  int         `json:"count"`
}

// RequestBulkDelete asks for confirmation before deleting the selection.
// An empty selection is a no-op.
func (s *Store) RequestBulkDelete() error {
	s.mu.Lock()
	defer s.commit()

	c, err := s.active()
	if err != nil {
		return err
	}
	n := len(s.selection.Selected(c.Messages))
	if n == 0 {
		return nil
	}
	s.pending = &Pending{Kind: PendingBulkDelete, ChatID: c.ID, Count: n}
	s.dirty = true
	return nil
}

func (s *Store) RequestClearChat(chatID string) error {
	s.mu.Lock()
	defer s.commit()

	c, err := s.chat(chatID)
	if err != nil {
		return err
	}
	s.pending = &Pending{Kind: PendingClearChat, ChatID: c.ID, Count: len(c.Messages)}
	s.dirty = true
	return nil
}

// ConfirmPending runs the action awaiting confirmation.
func (s *Store) ConfirmPending() error {
	s.mu.Lock()
	defer s.commit()

	p := s.pending
	if p == nil {
		return ErrNothingPending
	}
	s.pending = nil
	s.dirty = true
	log.Printf("[STORE] Confirmed %s on chat %s", p.Kind, p.ChatID)

	switch p.Kind {
	case PendingBulkDelete:
		if p.ChatID != s.activeID {
			return ErrNoActiveChat
		}
		_, err := s.bulkDeleteLocked()
		return err
	case PendingClearChat:
		return s.clearLocked(p.ChatID)
	}
	return nil
}

func (s *Store) CancelPending() {
	s.mu.Lock()
	defer s.commit()
	if s.pending != nil {
		s.pending = nil
		s.dirty = true
	}
}

func (s *Store) PendingConfirmation() *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}
