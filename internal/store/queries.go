package store

import (
	"cmp"
	"slices"

	"chat-engine/internal/lifecycle"
	"chat-engine/internal/models"
	"chat-engine/internal/search"
	"chat-engine/internal/selection"
	"chat-engine/internal/sorting"
)

func (s *Store) Actor() string { return s.lifecycle.Actor() }

func (s *Store) Chat(chatID string) (models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.chat(chatID)
	if err != nil {
		return models.Chat{}, err
	}
	return c.Clone(), nil
}

func (s *Store) ActiveChat() (models.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.active()
	if err != nil {
		return models.Chat{}, false
	}
	return c.Clone(), true
}

func (s *Store) ActiveChatMessages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.active()
	if err != nil {
		return []models.Message{}
	}
	return models.CloneMessages(c.Messages)
}

// SortedFilteredChats is the chat list as the user sees it: filtered by the
// current query and category, pinned first. In embedded mode it holds only
// the active chat once one is open.
func (s *Store) SortedFilteredChats() []models.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]models.Chat, 0, len(s.chats))
	for _, c := range s.chats {
		all = append(all, c.Clone())
	}
	f := s.filter
	if f.Embedded {
		f.ChatID = s.activeID
	}
	return sorting.Apply(all, f)
}

func (s *Store) Filter() sorting.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Store) SelectionState() selection.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	var msgs []models.Message
	if c, err := s.active(); err == nil {
		msgs = c.Messages
	}
	return s.selection.State(msgs)
}

func (s *Store) ForwardCandidates() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Pending()
}

func (s *Store) PendingHighlightID() string {
	return s.nav.PendingHighlightID()
}

func (s *Store) SearchView() search.View {
	return s.nav.View()
}

func (s *Store) ReplyTo() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replyTo
}

func (s *Store) EditableStatus(msg models.Message) lifecycle.EditStatus {
	return s.lifecycle.EditableStatus(msg)
}

func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b models.User) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
