// Package store owns the chat collection. It is the only writer of chat and
// message state; every other engine package either computes a new value for
// it to store or keeps presentation state on its behalf.
package store

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"chat-engine/internal/identity"
	"chat-engine/internal/lifecycle"
	"chat-engine/internal/metrics"
	"chat-engine/internal/models"
	"chat-engine/internal/search"
	"chat-engine/internal/selection"
	"chat-engine/internal/sorting"

	"github.com/google/uuid"
)

const DefaultGroupCategory = "groups"

var (
	ErrChatNotFound    = errors.New("chat not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrNoActiveChat    = errors.New("no active chat")
	ErrInvalidGroup    = errors.New("group needs a name and at least one participant")
	ErrEmptyMessage    = errors.New("message has no content")
	ErrNothingPending  = errors.New("nothing awaiting confirmation")
)

type Options struct {
	Actor             identity.Source
	Clock             func() time.Time
	NewID             func() string
	EditWindow        time.Duration
	HighlightDuration time.Duration
	Scheduler         search.Scheduler
	Clipboard         selection.Clipboard
	Embedded          bool
}

type Store struct {
	mu sync.Mutex

	users     map[string]models.User
	chats     []*models.Chat
	activeID  string
	filter    sorting.Filter
	replyTo   string
	pending   *Pending
	dirty     bool
	listeners []func()
	newID     func() string

	lifecycle *lifecycle.Manager
	selection *selection.Coordinator
	nav       *search.Navigator
}

// New builds a store over an already materialized directory. Chats keep the
// order they are given in.
func New(users []models.User, chats []models.Chat, opts Options) *Store {
	if opts.Actor == nil {
		opts.Actor = identity.Static("me")
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	lcOpts := []lifecycle.Option{lifecycle.WithIDs(opts.NewID), lifecycle.WithEditWindow(opts.EditWindow)}
	if opts.Clock != nil {
		lcOpts = append(lcOpts, lifecycle.WithClock(opts.Clock))
	}
	mgr := lifecycle.New(opts.Actor, lcOpts...)

	s := &Store{
		users:     make(map[string]models.User, len(users)),
		chats:     make([]*models.Chat, 0, len(chats)),
		filter:    sorting.Filter{Embedded: opts.Embedded},
		newID:     opts.NewID,
		lifecycle: mgr,
		selection: selection.New(mgr, opts.Clipboard),
		nav:       search.NewNavigator(opts.Scheduler, opts.HighlightDuration),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	for i := range chats {
		c := chats[i].Clone()
		s.chats = append(s.chats, &c)
	}
	s.nav.OnChange(s.notify)

	log.Printf("[STORE] Loaded %d chats and %d users for actor %s", len(s.chats), len(s.users), mgr.Actor())
	return s
}

// OnChange registers f to run after every command and after timer-driven
// changes. f runs without the store lock held and must not block.
func (s *Store) OnChange(f func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, f)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	ls := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, f := range ls {
		f()
	}
}

// commit releases the lock taken by a command and fans out the change.
// Commands that failed or were refused leave dirty unset and notify no one.
func (s *Store) commit() {
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	ls := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, f := range ls {
		f()
	}
}

func (s *Store) chat(id string) (*models.Chat, error) {
	for _, c := range s.chats {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("chat %s: %w", id, ErrChatNotFound)
}

func (s *Store) active() (*models.Chat, error) {
	if s.activeID == "" {
		return nil, ErrNoActiveChat
	}
	return s.chat(s.activeID)
}

// CreateGroup adds a group chat at the top of the collection. Unknown
// participant ids are skipped; the current actor is always a member.
func (s *Store) CreateGroup(name string, participantIDs []string) (models.Chat, error) {
	s.mu.Lock()
	defer s.commit()

	name = strings.TrimSpace(name)
	actor := s.lifecycle.Actor()
	members := make([]models.User, 0, len(participantIDs)+1)
	seen := map[string]bool{}
	add := func(id string) {
		if seen[id] {
			return
		}
		u, ok := s.users[id]
		if !ok {
			if id != actor {
				log.Printf("[STORE] CreateGroup: skipping unknown participant %s", id)
				return
			}
			u = models.User{ID: actor, Name: actor, Role: models.RoleAdmin, Online: true}
		}
		seen[id] = true
		members = append(members, u)
	}
	for _, id := range participantIDs {
		add(id)
	}
	if name == "" || len(members) == 0 {
		return models.Chat{}, ErrInvalidGroup
	}
	add(actor)

	c := &models.Chat{
		ID:           s.newID(),
		Type:         models.ChatGroup,
		Name:         name,
		Participants: members,
		Messages:     []models.Message{},
		Category:     DefaultGroupCategory,
	}
	s.chats = slices.Insert(s.chats, 0, c)
	s.dirty = true
	metrics.ChatsCreated.Inc()
	log.Printf("[STORE] Created group %s (%q) with %d participants", c.ID, c.Name, len(members))
	return c.Clone(), nil
}

func (s *Store) TogglePin(chatID string) error {
	s.mu.Lock()
	defer s.commit()

	c, err := s.chat(chatID)
	if err != nil {
		return err
	}
	c.IsPinned = !c.IsPinned
	s.dirty = true
	return nil
}

func (s *Store) ToggleMute(chatID string) error {
	s.mu.Lock()
	defer s.commit()

	c, err := s.chat(chatID)
	if err != nil {
		return err
	}
	c.IsMuted = !c.IsMuted
	s.dirty = true
	return nil
}

// AppendMessage pushes msg onto the chat's sequence.
func (s *Store) AppendMessage(chatID string, msg models.Message) error {
	s.mu.Lock()
	defer s.commit()
	return s.appendLocked(chatID, msg)
}

func (s *Store) appendLocked(chatID string, msgs ...models.Message) error {
	c, err := s.chat(chatID)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		c.Messages = append(c.Messages, m.Clone())
	}
	c.RefreshLastMessage()
	s.dirty = true
	return nil
}

// ReplaceMessages swaps the chat's whole sequence.
func (s *Store) ReplaceMessages(chatID string, msgs []models.Message) error {
	s.mu.Lock()
	defer s.commit()
	return s.replaceLocked(chatID, msgs)
}

func (s *Store) replaceLocked(chatID string, msgs []models.Message) error {
	c, err := s.chat(chatID)
	if err != nil {
		return err
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	c.Messages = models.CloneMessages(msgs)
	c.RefreshLastMessage()
	s.dirty = true
	return nil
}

// SetActiveChat opens a chat: its unread count drops to zero and all
// per-chat presentation state (selection, reply, search, confirmation) is
// reset.
func (s *Store) SetActiveChat(chatID string) error {
	s.mu.Lock()
	defer s.commit()

	c, err := s.chat(chatID)
	if err != nil {
		return err
	}
	if s.activeID != chatID {
		s.selection.Exit()
		s.replyTo = ""
		s.pending = nil
		s.nav.Reset()
	}
	s.activeID = chatID
	c.UnreadCount = 0
	s.dirty = true
	return nil
}

func (s *Store) SetChatQuery(q string) {
	s.mu.Lock()
	defer s.commit()
	s.filter.Query = q
	s.dirty = true
}

func (s *Store) SetCategory(category string) {
	s.mu.Lock()
	defer s.commit()
	s.filter.Category = category
	s.dirty = true
}
