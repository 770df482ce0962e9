package models

import "slices"

type ChatType string

const (
	ChatIndividual ChatType = "individual"
	ChatGroup      ChatType = "group"
)

type Chat struct {
	ID           string    `json:"id" yaml:"id"`
	Type         ChatType  `json:"type" yaml:"type"`
	Name         string    `json:"name" yaml:"name"`
	Participants []User    `json:"participants" yaml:"participants"`
	Messages     []Message `json:"messages" yaml:"messages"`
	LastMessage  *Message  `json:"lastMessage,omitempty" yaml:"-"`
	UnreadCount  int       `json:"unreadCount" yaml:"unread_count"`
	IsPinned     bool      `json:"isPinned" yaml:"is_pinned"`
	IsMuted      bool      `json:"isMuted" yaml:"is_muted"`
	Category     string    `json:"category" yaml:"category"`
}

// RefreshLastMessage points LastMessage at the final element of Messages.
// Every writer calls it after touching the sequence.
func (c *Chat) RefreshLastMessage() {
	if len(c.Messages) == 0 {
		c.LastMessage = nil
		return
	}
	last := c.Messages[len(c.Messages)-1].Clone()
	c.LastMessage = &last
}

func (c *Chat) Clone() Chat {
	out := *c
	out.Participants = slices.Clone(c.Participants)
	out.Messages = CloneMessages(c.Messages)
	out.RefreshLastMessage()
	return out
}

func (c *Chat) HasParticipant(userID string) bool {
	return slices.ContainsFunc(c.Participants, func(u User) bool { return u.ID == userID })
}
