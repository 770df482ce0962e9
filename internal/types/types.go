package types

import (
	"chat-engine/internal/models"
	"chat-engine/internal/reaction"
	"chat-engine/internal/search"
	"chat-engine/internal/selection"
	"chat-engine/internal/store"
)

type EventType string

const (
	EventState     EventType = "state"
	EventError     EventType = "error"
	EventClipboard EventType = "clipboard"
	EventPicker    EventType = "picker"
	EventResults   EventType = "results"
	EventNavigate  EventType = "navigate"
)

// Event is what the server pushes to clients. State events carry the
// whole view; the others answer a single command.
type Event struct {
	Type            EventType                   `json:"type"`
	Chats           []models.Chat               `json:"chats,omitempty"`
	ActiveChat      string                      `json:"activeChat,omitempty"`
	Messages        []models.Message            `json:"messages,omitempty"`
	Reactions       map[string][]reaction.Group `json:"reactions,omitempty"`
	Editable        []string                    `json:"editable,omitempty"`
	SidebarWidth    int                         `json:"sidebarWidth,omitempty"`
	ReplyTo         string                      `json:"replyTo,omitempty"`
	Selection       *selection.State            `json:"selection,omitempty"`
	Search          *search.View                `json:"search,omitempty"`
	HighlightID     string                      `json:"highlightId,omitempty"`
	ScrollTargetID  string                      `json:"scrollTargetId,omitempty"`
	Token           uint64                      `json:"token,omitempty"`
	Results         []models.Message            `json:"results,omitempty"`
	Pending         *store.Pending              `json:"pending,omitempty"`
	Clipboard       string                      `json:"clipboard,omitempty"`
	PickerRequested bool                        `json:"pickerRequested,omitempty"`
	MessageID       string                      `json:"messageId,omitempty"`
	Error           string                      `json:"error,omitempty"`
}

// Snapshot captures the state a client renders from.
func Snapshot(s *store.Store) Event {
	ev := Event{
		Type:    EventState,
		Chats:   s.SortedFilteredChats(),
		ReplyTo: s.ReplyTo(),
		Pending: s.PendingConfirmation(),
	}
	if c, ok := s.ActiveChat(); ok {
		ev.ActiveChat = c.ID
		ev.Messages = c.Messages
		ev.Reactions = make(map[string][]reaction.Group)
		for _, m := range c.Messages {
			if len(m.Reactions) > 0 {
				ev.Reactions[m.ID] = reaction.Summarize(m.Reactions, s.Actor())
			}
			if s.EditableStatus(m).Editable {
				ev.Editable = append(ev.Editable, m.ID)
			}
		}
	}
	sel := s.SelectionState()
	ev.Selection = &sel
	view := s.SearchView()
	ev.Search = &view
	ev.HighlightID = view.HighlightID
	ev.ScrollTargetID = view.ScrollTargetID
	return ev
}

func ErrorEvent(err error) Event {
	return Event{Type: EventError, Error: err.Error()}
}
